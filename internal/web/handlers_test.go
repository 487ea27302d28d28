package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliasghar-tech/LoToo-Store/internal/catalog"
	"github.com/aliasghar-tech/LoToo-Store/internal/domain"
	"github.com/aliasghar-tech/LoToo-Store/internal/notify"
	"github.com/aliasghar-tech/LoToo-Store/internal/repository"
	"github.com/aliasghar-tech/LoToo-Store/internal/service"
)

type stubFetcher struct {
	products []domain.Product
	err      error
}

func (s stubFetcher) Fetch(context.Context) ([]domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

type memRepository struct {
	m     sync.Mutex
	items []domain.CartLine
	has   bool
}

func (r *memRepository) Load(context.Context) (*domain.Cart, error) {
	r.m.Lock()
	defer r.m.Unlock()
	if !r.has {
		return nil, repository.ErrCartNotFound
	}
	return &domain.Cart{Items: append([]domain.CartLine(nil), r.items...)}, nil
}

func (r *memRepository) Save(_ context.Context, cart *domain.Cart) error {
	r.m.Lock()
	defer r.m.Unlock()
	r.has = true
	r.items = append([]domain.CartLine(nil), cart.Items...)
	return nil
}

func (r *memRepository) Close() error { return nil }

func storeProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Title: "Canvas Backpack", Price: 19.99, Image: "https://img/1.png", Category: "bags"},
		{ID: 2, Title: "4K Monitor", Price: 49.99, Image: "https://img/2.png", Category: "electronics"},
	}
}

func newTestApp(t *testing.T, fetcher catalog.Fetcher) (chi.Router, *service.CartService) {
	t.Helper()

	notifier := notify.NewNotifier()
	t.Cleanup(func() { notifier.Close() })

	cache := catalog.NewCache(fetcher, zap.NewNop())
	cartSvc := service.NewCartService(&memRepository{}, cache, notifier, zap.NewNop())

	handler, err := NewHandler(cache, cartSvc, notifier, zap.NewNop())
	require.NoError(t, err)

	return NewRouter(handler, 5*time.Second), cartSvc
}

func get(t *testing.T, router chi.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func postForm(t *testing.T, router chi.Router, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHome_RendersProducts(t *testing.T) {
	router, _ := newTestApp(t, stubFetcher{products: storeProducts()})

	rec := get(t, router, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Canvas Backpack")
	assert.Contains(t, body, "4K Monitor")
	assert.Contains(t, body, "$19.99")
	assert.Contains(t, body, `value="bags"`)
}

func TestHome_FailedCatalogLoadShowsNoProducts(t *testing.T) {
	router, _ := newTestApp(t, stubFetcher{err: assert.AnError})

	rec := get(t, router, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No products found.")
}

func TestHome_FilterByMaxPrice(t *testing.T) {
	router, _ := newTestApp(t, stubFetcher{products: storeProducts()})

	rec := get(t, router, "/?max_price=20")

	body := rec.Body.String()
	assert.Contains(t, body, "Canvas Backpack")
	assert.NotContains(t, body, "4K Monitor")
}

func TestHome_EscapesHostileTitles(t *testing.T) {
	hostile := []domain.Product{
		{ID: 1, Title: `<script>alert("x")</script>`, Price: 1, Category: "a"},
	}
	router, _ := newTestApp(t, stubFetcher{products: hostile})

	rec := get(t, router, "/")

	body := rec.Body.String()
	assert.NotContains(t, body, `<script>alert`)
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestUnknownRouteRedirectsHome(t *testing.T) {
	router, _ := newTestApp(t, stubFetcher{products: storeProducts()})

	rec := get(t, router, "/no-such-page")

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestAddItem_ThenCartPageShowsLine(t *testing.T) {
	router, cartSvc := newTestApp(t, stubFetcher{products: storeProducts()})
	get(t, router, "/") // populate the catalog

	rec := postForm(t, router, "/cart/items", url.Values{"product_id": {"1"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	assert.Equal(t, 1, cartSvc.TotalCount())

	body := get(t, router, "/cart").Body.String()
	assert.Contains(t, body, "Canvas Backpack")
	assert.Contains(t, body, "Total: $19.99")
}

func TestQuantityControls(t *testing.T) {
	router, cartSvc := newTestApp(t, stubFetcher{products: storeProducts()})
	get(t, router, "/")
	postForm(t, router, "/cart/items", url.Values{"product_id": {"1"}})

	postForm(t, router, "/cart/items/1/quantity", url.Values{"delta": {"1"}})
	assert.Equal(t, 2, cartSvc.TotalCount())

	postForm(t, router, "/cart/items/1/quantity", url.Values{"delta": {"-1"}})
	postForm(t, router, "/cart/items/1/quantity", url.Values{"delta": {"-1"}})
	assert.Equal(t, 0, cartSvc.TotalCount())
}

func TestRemoveItem(t *testing.T) {
	router, cartSvc := newTestApp(t, stubFetcher{products: storeProducts()})
	get(t, router, "/")
	postForm(t, router, "/cart/items", url.Values{"product_id": {"1"}})
	postForm(t, router, "/cart/items", url.Values{"product_id": {"2"}})

	rec := postForm(t, router, "/cart/items/1/remove", nil)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	cart := cartSvc.Cart()
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(2), cart.Items[0].ProductID)
}

func TestCheckout_EmptyCartShowsMessageNotForm(t *testing.T) {
	router, _ := newTestApp(t, stubFetcher{products: storeProducts()})

	rec := get(t, router, "/checkout")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Your cart is empty")
	assert.NotContains(t, body, `id="checkout-form"`)
}

func TestCheckout_NonEmptyCartShowsForm(t *testing.T) {
	router, _ := newTestApp(t, stubFetcher{products: storeProducts()})
	get(t, router, "/")
	postForm(t, router, "/cart/items", url.Values{"product_id": {"1"}})
	postForm(t, router, "/cart/items", url.Values{"product_id": {"1"}})
	postForm(t, router, "/cart/items", url.Values{"product_id": {"2"}})

	rec := get(t, router, "/checkout")

	body := rec.Body.String()
	assert.Contains(t, body, `id="checkout-form"`)
	assert.Contains(t, body, "$89.97")
}

func TestPlaceOrder_ClearsCart(t *testing.T) {
	router, cartSvc := newTestApp(t, stubFetcher{products: storeProducts()})
	get(t, router, "/")
	postForm(t, router, "/cart/items", url.Values{"product_id": {"1"}})

	rec := postForm(t, router, "/checkout", url.Values{
		"name":    {"Ada Lovelace"},
		"email":   {"ada@example.com"},
		"address": {"12 Analytical Row"},
		"payment": {"card"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order placed!")
	assert.Contains(t, rec.Body.String(), `http-equiv="refresh"`)
	assert.Equal(t, 0, cartSvc.TotalCount())
}

func TestPlaceOrder_MissingFieldsRejected(t *testing.T) {
	router, cartSvc := newTestApp(t, stubFetcher{products: storeProducts()})
	get(t, router, "/")
	postForm(t, router, "/cart/items", url.Values{"product_id": {"1"}})

	rec := postForm(t, router, "/checkout", url.Values{
		"name":  {"Ada Lovelace"},
		"email": {""},
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "All fields are required.")
	// cart untouched
	assert.Equal(t, 1, cartSvc.TotalCount())
}

func TestPlaceOrder_EmptyCartRedirects(t *testing.T) {
	router, _ := newTestApp(t, stubFetcher{products: storeProducts()})

	rec := postForm(t, router, "/checkout", url.Values{
		"name":    {"Ada Lovelace"},
		"email":   {"ada@example.com"},
		"address": {"12 Analytical Row"},
		"payment": {"card"},
	})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/checkout", rec.Header().Get("Location"))
}

func TestCartBadgeCount(t *testing.T) {
	router, _ := newTestApp(t, stubFetcher{products: storeProducts()})
	get(t, router, "/")
	postForm(t, router, "/cart/items", url.Values{"product_id": {"1"}})
	postForm(t, router, "/cart/items", url.Values{"product_id": {"1"}})
	postForm(t, router, "/cart/items", url.Values{"product_id": {"2"}})

	body := get(t, router, "/").Body.String()
	assert.Contains(t, body, `<span id="cart-count" class="badge">3</span>`)
}
