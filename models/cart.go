package models

import (
	"context"
	"math"
	"sync"

	"github.com/burgerhub/menu-ordering/storage"
	"github.com/shopspring/decimal"
)

// MaxObservationLength caps the free-text note on a cart line, in runes.
const MaxObservationLength = 280

// CartItem is a snapshot of a product taken when it was first added to the
// cart. Only Quantity and Observation change afterwards.
type CartItem struct {
	Product
	Quantity    int    `json:"quantity"`
	Observation string `json:"observation,omitempty"`
}

// Subtotal is the unit price times the quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart holds at most one line per product id and persists the full snapshot
// after every change.
type Cart struct {
	mu    sync.Mutex
	docs  storage.Documents
	items []CartItem
}

// LoadCart restores the persisted cart, or starts an empty one.
func LoadCart(ctx context.Context, docs storage.Documents) (*Cart, error) {
	items, err := loadCollection[CartItem](ctx, docs, storage.KeyCart)
	if err != nil {
		return nil, err
	}
	return &Cart{docs: docs, items: items}, nil
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total is the sum of every line subtotal.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Count is the number of units in the cart, not the number of lines.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// AddItem adds one unit of product. A product already in the cart keeps the
// name and price captured on its first add.
func (c *Cart) AddItem(ctx context.Context, product Product) error {
	if !product.IsAvailable {
		return ErrProductUnavailable
	}

	return c.mutate(ctx, func(items []CartItem) []CartItem {
		if i := indexOf(items, product.ID); i >= 0 {
			items[i].Quantity++
			return items
		}
		return append(items, CartItem{Product: product, Quantity: 1})
	})
}

// RemoveItem drops the line for productID whatever its quantity.
func (c *Cart) RemoveItem(ctx context.Context, productID string) error {
	return c.mutate(ctx, func(items []CartItem) []CartItem {
		kept, _ := without(items, func(item CartItem) bool { return item.ID == productID })
		return kept
	})
}

// ChangeQuantity adds delta to the line quantity, clamping at zero. A line
// that reaches zero is removed.
func (c *Cart) ChangeQuantity(ctx context.Context, productID string, delta int) error {
	return c.mutate(ctx, func(items []CartItem) []CartItem {
		i := indexOf(items, productID)
		if i < 0 {
			return items
		}
		items[i].Quantity = addQuantity(items[i].Quantity, delta)
		if items[i].Quantity == 0 {
			return append(items[:i], items[i+1:]...)
		}
		return items
	})
}

func (c *Cart) SetObservation(ctx context.Context, productID, text string) error {
	if runes := []rune(text); len(runes) > MaxObservationLength {
		text = string(runes[:MaxObservationLength])
	}

	return c.mutate(ctx, func(items []CartItem) []CartItem {
		if i := indexOf(items, productID); i >= 0 {
			items[i].Observation = text
		}
		return items
	})
}

func (c *Cart) Clear(ctx context.Context) error {
	return c.mutate(ctx, func([]CartItem) []CartItem {
		return []CartItem{}
	})
}

// mutate applies fn to a copy of the lines and commits it only once the new
// snapshot has been persisted.
func (c *Cart) mutate(ctx context.Context, fn func([]CartItem) []CartItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]CartItem, len(c.items))
	copy(next, c.items)
	next = fn(next)

	if err := saveCollection(ctx, c.docs, storage.KeyCart, next); err != nil {
		return err
	}
	c.items = next
	return nil
}

// addQuantity returns max(0, q+delta), saturating at math.MaxInt instead of
// wrapping.
func addQuantity(q, delta int) int {
	if delta > 0 && q > math.MaxInt-delta {
		return math.MaxInt
	}
	return max(0, q+delta)
}

func indexOf(items []CartItem, productID string) int {
	for i := range items {
		if items[i].ID == productID {
			return i
		}
	}
	return -1
}
