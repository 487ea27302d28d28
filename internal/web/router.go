package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the three store screens plus the cart mutation endpoints.
// The browser original routed on URL fragments (#/, #/cart, #/checkout);
// here the same tokens are server paths, and anything unknown falls back to
// the home screen.
func NewRouter(h *Handler, requestTimeout time.Duration) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Get("/", h.Home)
	r.Get("/cart", h.CartPage)
	r.Route("/cart/items", func(r chi.Router) {
		r.Post("/", h.AddItem)
		r.Post("/{productID}/quantity", h.UpdateQuantity)
		r.Post("/{productID}/remove", h.RemoveItem)
	})
	r.Get("/checkout", h.CheckoutPage)
	r.Post("/checkout", h.PlaceOrder)

	r.Handle("/static/*", http.FileServer(http.FS(staticFS)))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusFound)
	})

	return r
}
