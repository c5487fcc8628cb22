package services

import (
	"fmt"
	"strings"
	"sync"

	"resto-pos/models"
)

// CartLine is one selected portion; duplicates stay separate lines.
type CartLine struct {
	MenuItemID uint    `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Plate      string  `json:"plate"`
}

type Cart struct {
	lines []CartLine
}

// Add appends the chosen portion of item at its current price.
func (c *Cart) Add(item models.MenuItem, plate string) (CartLine, error) {
	plate = strings.ToLower(strings.TrimSpace(plate))
	if plate == "" {
		plate = models.PlateSingle
	}
	if !item.Available() {
		return CartLine{}, fmt.Errorf("%w: %s", ErrItemUnavailable, item.Name)
	}

	var price float64
	switch plate {
	case models.PlateSingle:
		price = item.PriceSingle
	case models.PlateFull:
		if !item.HasFull() {
			return CartLine{}, fmt.Errorf("%w: %s has no full plate", ErrItemUnavailable, item.Name)
		}
		price = *item.PriceFull
	default:
		return CartLine{}, fmt.Errorf("%w: plate must be single or full", ErrInvalidInput)
	}

	line := CartLine{MenuItemID: item.ID, Name: item.Name, Price: price, Plate: plate}
	c.lines = append(c.lines, line)
	return line, nil
}

func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.lines) {
		return fmt.Errorf("%w: no cart line %d", ErrInvalidInput, index)
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return nil
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart contents.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, l := range c.lines {
		sum += l.Price
	}
	return sum
}

// CartStore holds one in-memory cart per user.
type CartStore struct {
	mu    sync.Mutex
	carts map[uint]*Cart
}

func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[uint]*Cart)}
}

func (s *CartStore) cart(userID uint) *Cart {
	c, ok := s.carts[userID]
	if !ok {
		c = &Cart{}
		s.carts[userID] = c
	}
	return c
}

func (s *CartStore) Add(userID uint, item models.MenuItem, plate string) (CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(userID).Add(item, plate)
}

func (s *CartStore) Remove(userID uint, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(userID).Remove(index)
}

func (s *CartStore) Clear(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

// Take returns the user's lines and empties the cart in one step.
func (s *CartStore) Take(userID uint) []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.cart(userID).Lines()
	delete(s.carts, userID)
	return lines
}

// Restore puts taken lines back ahead of anything added since.
func (s *CartStore) Restore(userID uint, lines []CartLine) {
	if len(lines) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(userID)
	c.lines = append(append([]CartLine(nil), lines...), c.lines...)
}

func (s *CartStore) Lines(userID uint) []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(userID).Lines()
}
