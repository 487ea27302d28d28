package domain

import "github.com/shopspring/decimal"

// CartLine is one product-quantity pairing in the cart. Title, Price and
// Image are snapshot copies taken when the product was first added, so the
// cart keeps rendering even if the catalog changes or fails to load later.
type CartLine struct {
	ProductID int64   `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// Subtotal returns price * quantity as an exact decimal.
func (l CartLine) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an ordered sequence of lines, insertion order = order added.
// Invariants: at most one line per product id, quantity always >= 1
// (a line reaching zero is removed, never retained).
type Cart struct {
	Items []CartLine
}

// Find returns a pointer to the line for the given product id, or nil.
func (c *Cart) Find(productID int64) *CartLine {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// TotalCount is the sum of all line quantities, used for the cart badge.
func (c *Cart) TotalCount() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the exact sum of line subtotals.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clone returns a deep copy safe to hand to renderers.
func (c *Cart) Clone() *Cart {
	items := make([]CartLine, len(c.Items))
	copy(items, c.Items)
	return &Cart{Items: items}
}
