package repository

import (
	"context"
	"errors"

	"github.com/aliasghar-tech/LoToo-Store/internal/domain"
)

var (
	// ErrCartNotFound means no cart has ever been persisted.
	ErrCartNotFound = errors.New("cart not found")
	// ErrCartCorrupt means the persisted value exists but does not decode.
	ErrCartCorrupt = errors.New("persisted cart is corrupt")
)

// CartRepository persists the full cart as one value under a well-known key.
type CartRepository interface {
	Load(ctx context.Context) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Close() error
}
