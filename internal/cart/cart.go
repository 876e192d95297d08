// Package cart is the local shopping cart. It has no backend dependency:
// lines live in memory and are mirrored to persistent state on every
// mutation, so a cart survives restarts until checkout clears it.
package cart

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/felixgeelhaar/kopi/internal/api"
	"github.com/felixgeelhaar/kopi/internal/log"
	"github.com/felixgeelhaar/kopi/internal/storage"
)

// Line is one cart entry. It snapshots the menu item at add time, price
// included, so later menu edits don't silently change a cart.
type Line struct {
	MenuID    uint      `json:"menu_id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
	Category  string    `json:"category"`
	ImageURL  string    `json:"image_url"`
	Quantity  int       `json:"quantity"`
	Subtotal  float64   `json:"subtotal"`
	AddedAt   time.Time `json:"added_at"`
}

// Result is the uniform outcome of a cart mutation.
type Result struct {
	Success bool
	Message string
}

// Validation is the answer to a pre-checkout sanity check.
type Validation struct {
	Valid  bool
	Errors []string
}

// Store holds the cart lines and mirrors them to storage.
type Store struct {
	mu      sync.Mutex
	lines   []Line
	storage storage.Store
	logger  *log.Logger
}

// New creates an empty cart over the given persistent state.
func New(st storage.Store, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Store{
		storage: st,
		logger:  logger,
	}
}

// Load hydrates the cart from storage. A missing key means an empty cart;
// a corrupt value is discarded rather than wedging every later mutation.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.storage.Get(storage.KeyCart)
	if err != nil {
		s.lines = nil
		return
	}

	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		s.logger.Warn("discarding corrupt persisted cart", "error", err)
		s.lines = nil
		return
	}
	s.lines = lines
}

// AddItem puts qty units of the menu item in the cart, merging with an
// existing line for the same item.
func (s *Store) AddItem(item *api.MenuItem, qty int) Result {
	if qty <= 0 {
		return Result{Success: false, Message: "quantity must be positive"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].MenuID == item.ID {
			s.lines[i].Quantity += qty
			s.lines[i].Subtotal = s.lines[i].UnitPrice * float64(s.lines[i].Quantity)
			s.persistLocked()
			return Result{Success: true, Message: fmt.Sprintf("%s x%d in cart", item.Name, s.lines[i].Quantity)}
		}
	}

	s.lines = append(s.lines, Line{
		MenuID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.Price,
		Category:  item.Category,
		ImageURL:  item.ImageURL,
		Quantity:  qty,
		Subtotal:  item.Price * float64(qty),
		AddedAt:   time.Now(),
	})
	s.persistLocked()
	return Result{Success: true, Message: fmt.Sprintf("%s added to cart", item.Name)}
}

// UpdateQuantity sets the quantity of a line. A quantity of zero or less
// removes the line.
func (s *Store) UpdateQuantity(menuID uint, qty int) Result {
	if qty <= 0 {
		return s.RemoveItem(menuID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].MenuID == menuID {
			s.lines[i].Quantity = qty
			s.lines[i].Subtotal = s.lines[i].UnitPrice * float64(qty)
			s.persistLocked()
			return Result{Success: true}
		}
	}
	return Result{Success: false, Message: "item is not in the cart"}
}

// RemoveItem drops a line. Removing an absent item leaves the cart
// unchanged and reports failure.
func (s *Store) RemoveItem(menuID uint) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].MenuID == menuID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persistLocked()
			return Result{Success: true}
		}
	}
	return Result{Success: false, Message: "item is not in the cart"}
}

// IncreaseQuantity bumps a line by one.
func (s *Store) IncreaseQuantity(menuID uint) Result {
	if qty, ok := s.quantityOf(menuID); ok {
		return s.UpdateQuantity(menuID, qty+1)
	}
	return Result{Success: false, Message: "item is not in the cart"}
}

// DecreaseQuantity drops a line by one; reaching zero removes it.
func (s *Store) DecreaseQuantity(menuID uint) Result {
	if qty, ok := s.quantityOf(menuID); ok {
		return s.UpdateQuantity(menuID, qty-1)
	}
	return Result{Success: false, Message: "item is not in the cart"}
}

// ClearCart empties the cart.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persistLocked()
}

// ResetCart empties the cart after a successful checkout.
func (s *Store) ResetCart() {
	s.ClearCart()
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Line(nil), s.lines...)
}

// ItemCount is the total unit count across all lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

// TotalPrice is the sum of line subtotals.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, l := range s.lines {
		total += l.Subtotal
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

// OrderLines projects the cart into the checkout submission shape.
func (s *Store) OrderLines() []api.OrderLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]api.OrderLine, 0, len(s.lines))
	for _, l := range s.lines {
		lines = append(lines, api.OrderLine{
			MenuID:    l.MenuID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return lines
}

// Validate checks the cart is submittable.
func (s *Store) Validate() Validation {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []string
	if len(s.lines) == 0 {
		errs = append(errs, "the cart is empty")
	}
	for _, l := range s.lines {
		if l.Quantity <= 0 {
			errs = append(errs, fmt.Sprintf("%s has a non-positive quantity", l.Name))
		}
	}
	return Validation{Valid: len(errs) == 0, Errors: errs}
}

func (s *Store) quantityOf(menuID uint) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.lines {
		if l.MenuID == menuID {
			return l.Quantity, true
		}
	}
	return 0, false
}

// persistLocked mirrors the cart to storage. A write failure is logged and
// swallowed: the mutation already happened in memory and the user should
// not lose their cart interaction over a disk hiccup.
func (s *Store) persistLocked() {
	raw, err := json.Marshal(s.lines)
	if err != nil {
		s.logger.Warn("failed to serialize cart", "error", err)
		return
	}
	if err := s.storage.Put(storage.KeyCart, raw); err != nil {
		s.logger.Warn("failed to persist cart", "error", err)
	}
}
