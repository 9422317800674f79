package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/simplete/storefront/internal/domain"
)

// Store is the in-memory shopping cart. It holds at most one line item
// per product id and keeps insertion order among distinct products for
// stable display. The cart is deliberately volatile: it lives only for
// the process lifetime and is never persisted.
type Store struct {
	mu    sync.RWMutex
	items map[int64]*domain.LineItem
	order []int64 // product ids in insertion order
}

// New creates an empty cart.
func New() *Store {
	return &Store{
		items: make(map[int64]*domain.LineItem),
	}
}

// Add puts the product into the cart. If the product is already
// present its quantity is incremented; otherwise a new line item with
// quantity 1 is inserted, snapshotting the product's current display
// and pricing fields. Pricing is accepted as-is, zero or negative
// included; correctness is the catalog's responsibility.
func (s *Store) Add(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item, ok := s.items[p.ID]; ok {
		item.Quantity++
		return
	}

	s.items[p.ID] = &domain.LineItem{
		ProductID:    p.ID,
		Name:         p.Name,
		UnitPrice:    p.Price,
		CategoryName: p.CategoryName,
		Quantity:     1,
	}
	s.order = append(s.order, p.ID)
}

// Remove deletes the line item if present. Removing an absent product
// is a no-op, not an error.
func (s *Store) Remove(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
}

// Decrease lowers the line item's quantity by one. Reaching zero
// removes the item. A no-op if the product is absent.
func (s *Store) Decrease(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[productID]
	if !ok {
		return
	}
	item.Quantity--
	if item.Quantity <= 0 {
		s.removeLocked(productID)
	}
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[int64]*domain.LineItem)
	s.order = nil
}

// Items returns the line items in insertion order. The returned slice
// holds copies; mutating it does not affect the cart.
func (s *Store) Items() []domain.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.LineItem, 0, len(s.order))
	for _, id := range s.order {
		if item, ok := s.items[id]; ok {
			result = append(result, *item)
		}
	}
	return result
}

// Total recomputes the cart total, sum of unit price times quantity
// over all items. Zero for an empty cart.
func (s *Store) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Count returns the number of distinct line items, not total units.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) removeLocked(productID int64) {
	if _, ok := s.items[productID]; !ok {
		return
	}
	delete(s.items, productID)
	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
