package web

import (
	"bytes"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliasghar-tech/LoToo-Store/internal/catalog"
	"github.com/aliasghar-tech/LoToo-Store/internal/domain"
	"github.com/aliasghar-tech/LoToo-Store/internal/notify"
	"github.com/aliasghar-tech/LoToo-Store/internal/service"
)

const orderPlacedTTL = 1900 * time.Millisecond

// Handler renders the three store screens and applies cart mutations.
// Every GET is a pure projection of current (catalog, cart) state, so
// re-entering a screen always reflects the latest mutations.
type Handler struct {
	catalog  *catalog.Cache
	cart     *service.CartService
	notifier *notify.Notifier
	tmpl     *template.Template
	log      *zap.Logger
}

func NewHandler(cache *catalog.Cache, cart *service.CartService, notifier *notify.Notifier, log *zap.Logger) (*Handler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Handler{
		catalog:  cache,
		cart:     cart,
		notifier: notifier,
		tmpl:     tmpl,
		log:      log,
	}, nil
}

// Page carries the fields every screen needs: the badge count and any
// active popup notifications. Refresh, when set, emits a meta refresh back
// to the home screen after that many seconds.
type Page struct {
	Title         string
	CartCount     int
	Notifications []notify.Notification
	Refresh       string
}

func (h *Handler) newPage(title string) Page {
	return Page{
		Title:         title,
		CartCount:     h.cart.TotalCount(),
		Notifications: h.notifier.Active(),
	}
}

type homeData struct {
	Page
	Products   []domain.Product
	Categories []string
	Selected   catalog.FilterParams
}

type cartData struct {
	Page
	Cart  *domain.Cart
	Total string
}

type checkoutForm struct {
	Name    string
	Email   string
	Address string
	Payment string
}

type checkoutData struct {
	Page
	Cart  *domain.Cart
	Total string
	Form  checkoutForm
	Error string
}

type orderPlacedData struct {
	Page
	OrderID string
}

// Home loads the catalog if it is still empty, then renders the product grid
// narrowed by the filter query parameters.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.catalog.Load(r.Context())

	all := h.catalog.Products()
	params := filterParamsFromQuery(r)

	h.render(w, http.StatusOK, "home", homeData{
		Page:       h.newPage("Home"),
		Products:   catalog.Filter(all, params),
		Categories: catalog.Categories(all),
		Selected:   params,
	})
}

func filterParamsFromQuery(r *http.Request) catalog.FilterParams {
	q := r.URL.Query()

	params := catalog.FilterParams{
		Category: q.Get("category"),
		Sort:     q.Get("sort"),
	}
	if params.Category == "" {
		params.Category = catalog.CategoryAll
	}
	if params.Sort == "" {
		params.Sort = catalog.SortDefault
	}
	if v, err := strconv.ParseFloat(q.Get("max_price"), 64); err == nil {
		params.MaxPrice = v
	}
	return params
}

// AddItem handles the add-to-cart form post. A missing or malformed product
// id is ignored, matching the cart's silent no-op contract.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PostFormValue("product_id"), 10, 64)
	if err != nil {
		h.log.Debug("add ignored, bad product id", zap.String("value", r.PostFormValue("product_id")))
		h.redirectBack(w, r)
		return
	}

	if err := h.cart.Add(r.Context(), id); err != nil {
		h.serverError(w, "add to cart failed", err)
		return
	}
	h.redirectBack(w, r)
}

func (h *Handler) CartPage(w http.ResponseWriter, r *http.Request) {
	cart := h.cart.Cart()
	h.render(w, http.StatusOK, "cart", cartData{
		Page:  h.newPage("Cart"),
		Cart:  cart,
		Total: "$" + cart.TotalPrice().StringFixed(2),
	})
}

func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	delta, err := strconv.Atoi(r.PostFormValue("delta"))
	if err != nil {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	if err := h.cart.ChangeQuantity(r.Context(), id, delta); err != nil {
		h.serverError(w, "quantity update failed", err)
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	if err := h.cart.Remove(r.Context(), id); err != nil {
		h.serverError(w, "remove item failed", err)
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// CheckoutPage renders the order form, or the empty-cart message with no
// form when there is nothing to order.
func (h *Handler) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	cart := h.cart.Cart()
	h.render(w, http.StatusOK, "checkout", checkoutData{
		Page:  h.newPage("Checkout"),
		Cart:  cart,
		Total: "$" + cart.TotalPrice().StringFixed(2),
	})
}

// PlaceOrder validates the order form server-side (the form's required
// attributes are only a first line), clears the cart and shows a terminal
// acknowledgement that returns home after a short delay. No order record is
// persisted or transmitted anywhere.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	cart := h.cart.Cart()
	if cart.IsEmpty() {
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}

	form := checkoutForm{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Email:   strings.TrimSpace(r.PostFormValue("email")),
		Address: strings.TrimSpace(r.PostFormValue("address")),
		Payment: strings.TrimSpace(r.PostFormValue("payment")),
	}
	if form.Name == "" || form.Email == "" || form.Address == "" || form.Payment == "" {
		h.render(w, http.StatusUnprocessableEntity, "checkout", checkoutData{
			Page:  h.newPage("Checkout"),
			Cart:  cart,
			Total: "$" + cart.TotalPrice().StringFixed(2),
			Form:  form,
			Error: "All fields are required.",
		})
		return
	}

	if err := h.cart.Clear(r.Context()); err != nil {
		h.serverError(w, "clear cart failed", err)
		return
	}
	h.notifier.Push("Order placed! 🎉", orderPlacedTTL)

	data := orderPlacedData{
		Page:    h.newPage("Order placed"),
		OrderID: uuid.New().String(),
	}
	data.Refresh = "1"
	h.render(w, http.StatusOK, "order_placed", data)
}

// render executes the template into a buffer first so a template failure
// never leaves a half-written page on the wire.
func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		h.serverError(w, "template render failed", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) serverError(w http.ResponseWriter, msg string, err error) {
	h.log.Error(msg, zap.Error(err))
	http.Error(w, "something went wrong", http.StatusInternalServerError)
}

func (h *Handler) redirectBack(w http.ResponseWriter, r *http.Request) {
	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
