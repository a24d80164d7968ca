// Package store holds the session-scoped state containers: cart, session
// identity, and notifications. Each store owns its slice of state
// exclusively; cross-store reads happen at the point of use, never cached.
package store

import (
	"fmt"
	"sync"

	"github.com/NahuFed/storefront/internal/core/domain"
)

// NotifyFunc receives a transient UI message. Stores accept it per call so
// callers decide whether a mutation is announced.
type NotifyFunc func(message, severity string)

// CartStore owns the line-item collection and its derived total. One
// instance per storefront session; the mutex serializes handler goroutines
// the way the original single-threaded event loop serialized actions, so
// the total is always consistent with the lines at the end of any action.
type CartStore struct {
	mu    sync.Mutex
	lines []domain.CartLine
	total float64
}

func NewCartStore() *CartStore {
	return &CartStore{}
}

// AddItem inserts a line with quantity 1, or increments the existing line
// for the same product. No stock ceiling is enforced here; oversold carts
// are rejected by the backend at checkout.
func (s *CartStore) AddItem(p domain.Product, notify NotifyFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == p.ID {
			s.lines[i].Quantity++
			s.recomputeTotal()
			if notify != nil {
				notify(fmt.Sprintf("one more unit of %s added", p.Name), domain.SeveritySuccess)
			}
			return
		}
	}

	s.lines = append(s.lines, domain.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImgURL:    p.ImgURL,
		Quantity:  1,
	})
	s.recomputeTotal()
	if notify != nil {
		notify(fmt.Sprintf("%s added to cart", p.Name), domain.SeveritySuccess)
	}
}

// RemoveItem deletes the line for productID if present; absent ids are a
// no-op. The notification names the removed item and is only emitted when
// a line was actually found.
func (s *CartStore) RemoveItem(productID string, notify NotifyFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			name := s.lines[i].Name
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.recomputeTotal()
			if notify != nil {
				notify(fmt.Sprintf("%s removed from cart", name), domain.SeverityInfo)
			}
			return
		}
	}
}

// UpdateQuantity sets the line's quantity. A quantity of zero or less
// behaves exactly like RemoveItem (without a notification).
func (s *CartStore) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(productID, nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity = quantity
			break
		}
	}
	s.recomputeTotal()
}

// ClearCart empties the collection and resets the total.
func (s *CartStore) ClearCart(notify NotifyFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.total = 0
	if notify != nil {
		notify("cart cleared", domain.SeverityInfo)
	}
}

// Lines returns a copy of the current lines in insertion order.
func (s *CartStore) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Total returns the derived cart total.
func (s *CartStore) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// ItemsCount returns the sum of all line quantities.
func (s *CartStore) ItemsCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for i := range s.lines {
		count += s.lines[i].Quantity
	}
	return count
}

// recomputeTotal must be called with the lock held after every mutation.
func (s *CartStore) recomputeTotal() {
	total := 0.0
	for i := range s.lines {
		total += s.lines[i].Subtotal()
	}
	s.total = total
}
