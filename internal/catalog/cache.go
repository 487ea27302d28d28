package catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/aliasghar-tech/LoToo-Store/internal/domain"
)

// Fetcher is the upstream the cache loads from. Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context) ([]domain.Product, error)
}

// Cache holds the product list fetched once from the catalog service.
// Read-only after a successful load. A failed load leaves the cache empty,
// so the next Load attempts the fetch again; there is no automatic retry
// within a single load.
type Cache struct {
	fetcher Fetcher
	log     *zap.Logger

	sfg singleflight.Group // collapses concurrent loads into one fetch

	mu       sync.RWMutex
	products []domain.Product
}

func NewCache(fetcher Fetcher, log *zap.Logger) *Cache {
	return &Cache{fetcher: fetcher, log: log}
}

// Load populates the cache if it is empty. Concurrent callers share a single
// upstream fetch. A network or decode failure is swallowed: the cache stays
// empty and the caller renders "no products"; reloading the page retries.
func (c *Cache) Load(ctx context.Context) {
	if len(c.Products()) > 0 {
		return
	}

	_, _, _ = c.sfg.Do("catalog", func() (interface{}, error) {
		products, err := c.fetcher.Fetch(ctx)
		if err != nil {
			c.log.Warn("catalog load failed, serving empty catalog", zap.Error(err))
			return nil, nil
		}

		c.mu.Lock()
		c.products = products
		c.mu.Unlock()
		return nil, nil
	})
}

// Products returns the cached catalog. Callers must treat it as read-only.
func (c *Cache) Products() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.products
}

// Product looks up a single product by id.
func (c *Cache) Product(id int64) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}
