package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCart_TotalPriceIsExact(t *testing.T) {
	// float accumulation would give 89.96999... here
	cart := &Cart{Items: []CartLine{
		{ProductID: 1, Price: 19.99, Quantity: 2},
		{ProductID: 2, Price: 49.99, Quantity: 1},
	}}

	assert.Equal(t, "89.97", cart.TotalPrice().StringFixed(2))
	assert.Equal(t, 3, cart.TotalCount())
}

func TestCart_Find(t *testing.T) {
	cart := &Cart{Items: []CartLine{{ProductID: 1, Quantity: 1}}}

	line := cart.Find(1)
	assert.NotNil(t, line)

	line.Quantity = 7
	assert.Equal(t, 7, cart.Items[0].Quantity, "Find returns a pointer into the cart")

	assert.Nil(t, cart.Find(2))
}

func TestCart_CloneIsIndependent(t *testing.T) {
	cart := &Cart{Items: []CartLine{{ProductID: 1, Quantity: 1}}}

	clone := cart.Clone()
	clone.Items[0].Quantity = 99

	assert.Equal(t, 1, cart.Items[0].Quantity)
}
