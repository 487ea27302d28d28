package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aliasghar-tech/LoToo-Store/internal/domain"
	"github.com/aliasghar-tech/LoToo-Store/internal/notify"
	"github.com/aliasghar-tech/LoToo-Store/internal/repository"
)

// Notification durations for cart events.
const (
	removedTTL = 1300 * time.Millisecond
)

// ProductSource resolves product ids to catalog records. The catalog cache
// implements it.
type ProductSource interface {
	Product(id int64) (domain.Product, bool)
}

// CartService owns the cart: an in-memory working copy mirrored to the
// repository on every mutation. Mutation-then-persist happens under one lock,
// so the persisted value never lags a concurrent read.
type CartService struct {
	repo     repository.CartRepository
	products ProductSource
	notifier *notify.Notifier
	log      *zap.Logger

	mu   sync.Mutex
	cart *domain.Cart
}

func NewCartService(repo repository.CartRepository, products ProductSource, notifier *notify.Notifier, log *zap.Logger) *CartService {
	return &CartService{
		repo:     repo,
		products: products,
		notifier: notifier,
		log:      log,
		cart:     &domain.Cart{},
	}
}

// Restore rehydrates the cart from storage. A missing or corrupt persisted
// value yields an empty cart; nothing here can fail the caller.
func (s *CartService) Restore(ctx context.Context) {
	cart, err := s.repo.Load(ctx)
	switch {
	case err == nil:
		s.mu.Lock()
		s.cart = cart
		s.mu.Unlock()
	case errors.Is(err, repository.ErrCartNotFound):
		// first run, nothing persisted yet
	case errors.Is(err, repository.ErrCartCorrupt):
		s.log.Warn("persisted cart is corrupt, starting empty", zap.Error(err))
	default:
		s.log.Warn("cart load failed, starting empty", zap.Error(err))
	}
}

// Add puts one unit of the product into the cart. An unknown product id is a
// silent no-op. An existing line gets its quantity incremented; otherwise a
// new line is appended with display fields copied from the catalog.
func (s *CartService) Add(ctx context.Context, productID int64) error {
	product, ok := s.products.Product(productID)
	if !ok {
		s.log.Debug("add ignored, unknown product", zap.Int64("product_id", productID))
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if line := s.cart.Find(productID); line != nil {
		line.Quantity++
	} else {
		s.cart.Items = append(s.cart.Items, domain.CartLine{
			ProductID: product.ID,
			Title:     product.Title,
			Price:     product.Price,
			Image:     product.Image,
			Quantity:  1,
		})
	}

	if err := s.repo.Save(ctx, s.cart); err != nil {
		return err
	}

	s.notifier.Push("Added to cart", 0)
	return nil
}

// ChangeQuantity adds delta to the line's quantity. An absent line is a
// no-op. A line whose quantity would drop to zero or below is removed; a
// non-positive quantity is never persisted.
func (s *CartService) ChangeQuantity(ctx context.Context, productID int64, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := s.cart.Find(productID)
	if line == nil {
		return nil
	}

	line.Quantity += delta
	if line.Quantity <= 0 {
		s.removeLocked(productID)
	}

	return s.repo.Save(ctx, s.cart)
}

// Remove drops the line for the given product id, no-op if absent.
func (s *CartService) Remove(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.Find(productID) == nil {
		return nil
	}
	s.removeLocked(productID)

	if err := s.repo.Save(ctx, s.cart); err != nil {
		return err
	}

	s.notifier.Push("Item removed", removedTTL)
	return nil
}

func (s *CartService) removeLocked(productID int64) {
	items := s.cart.Items[:0]
	for _, item := range s.cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	s.cart.Items = items
}

// Clear empties the cart, used after order placement.
func (s *CartService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Items = nil
	return s.repo.Save(ctx, s.cart)
}

// Cart returns a copy of the current cart for rendering.
func (s *CartService) Cart() *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// TotalCount is the badge value: the sum of all quantities.
func (s *CartService) TotalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalCount()
}

// TotalPrice is the exact order total.
func (s *CartService) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalPrice()
}
