package domain

// Product is a catalog record fetched from the remote store API.
// Products are read-only after load and never mutated locally.
type Product struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
}
