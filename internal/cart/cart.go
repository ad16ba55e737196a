// Package cart holds the client-local shopping cart. It lives entirely on the
// client: every mutation is written through to the state store so the cart
// survives restarts, and checkout turns the lines into sales-order-line
// creations.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/stockroom-erp/stockroom-cli/internal/api"
	"github.com/stockroom-erp/stockroom-cli/internal/statestore"
)

// Line is one cart entry: a product snapshot plus quantity.
type Line struct {
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unitPrice"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

// Cart is keyed by product id; adding an existing product increments its
// quantity.
type Cart struct {
	mu    sync.Mutex
	store statestore.Store
	lines []Line
	now   func() time.Time
}

// Load reads the persisted cart, starting empty when none is stored.
func Load(ctx context.Context, store statestore.Store) (*Cart, error) {
	c := &Cart{store: store, now: time.Now}
	raw, err := store.Get(ctx, statestore.KeyCart)
	if errors.Is(err, statestore.ErrNotFound) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart: load: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &c.lines); err != nil {
		return nil, fmt.Errorf("cart: decode stored cart: %w", err)
	}
	return c, nil
}

// Add puts the product in the cart, incrementing quantity when present.
func (c *Cart) Add(ctx context.Context, product api.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			c.lines[i].Quantity++
			return c.persist(ctx)
		}
	}
	c.lines = append(c.lines, Line{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  1,
		AddedAt:   c.now(),
	})
	return c.persist(ctx)
}

// SetQuantity sets the line quantity, clamped to a minimum of 1.
func (c *Cart) SetQuantity(ctx context.Context, productID string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = max(1, quantity)
			return c.persist(ctx)
		}
	}
	return fmt.Errorf("cart: product %s not in cart", productID)
}

// Remove drops the line for the product.
func (c *Cart) Remove(ctx context.Context, productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	lines := c.lines[:0]
	for _, line := range c.lines {
		if line.ProductID != productID {
			lines = append(lines, line)
		}
	}
	c.lines = lines
	return c.persist(ctx)
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	return c.persist(ctx)
}

// Lines returns a copy of the cart contents.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Line(nil), c.lines...)
}

// Total sums price times quantity over all lines.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0.0
	for _, line := range c.lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return total
}

// persist must be called with the lock held.
func (c *Cart) persist(ctx context.Context) error {
	raw, err := json.Marshal(c.lines)
	if err != nil {
		return fmt.Errorf("cart: encode: %w", err)
	}
	if err := c.store.Put(ctx, statestore.KeyCart, string(raw)); err != nil {
		return fmt.Errorf("cart: persist: %w", err)
	}
	return nil
}
