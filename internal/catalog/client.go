package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/aliasghar-tech/LoToo-Store/internal/domain"
)

// DefaultEndpoint is the public demo catalog the store reads from.
const DefaultEndpoint = "https://fakestoreapi.com/products"

// Client reads the product catalog from a remote JSON endpoint.
// No pagination, no query parameters, no authentication.
type Client struct {
	url     string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]domain.Product]
	log     *zap.Logger
}

func NewClient(url string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		url: url,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: gobreaker.NewCircuitBreaker[[]domain.Product](gobreaker.Settings{
			Name: "catalog",
		}),
		log: log,
	}
}

// Fetch performs a single GET against the catalog endpoint and decodes the
// product list. The call goes through a circuit breaker so that a flapping
// upstream fails fast instead of holding every page render for the full
// client timeout.
func (c *Client) Fetch(ctx context.Context) ([]domain.Product, error) {
	return c.breaker.Execute(func() ([]domain.Product, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
		if err != nil {
			return nil, fmt.Errorf("build catalog request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("catalog request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
		}

		var products []domain.Product
		if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
			return nil, fmt.Errorf("decode catalog response: %w", err)
		}

		c.log.Debug("catalog fetched", zap.Int("products", len(products)))
		return products, nil
	})
}
