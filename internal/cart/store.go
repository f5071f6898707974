package cart

import (
	"fmt"
	"sync"
	"time"

	"github.com/lucsky/cuid"

	"github.com/chrisdamba/fooddash/internal/models"
)

// Store keeps carts in memory. Every accessor hands out copies.
type Store struct {
	mu    sync.Mutex
	carts map[string]*models.Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*models.Cart)}
}

func (s *Store) Create(now time.Time) *models.Cart {
	c := &models.Cart{ID: cuid.New(), Entries: []models.CartEntry{}, CreatedAt: now, UpdatedAt: now}
	s.mu.Lock()
	s.carts[c.ID] = c
	s.mu.Unlock()
	return c.Clone()
}

func (s *Store) Get(id string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCartNotFound, id)
	}
	return c.Clone(), nil
}

// Update runs fn on a copy of the cart and stores the copy only if fn succeeds.
func (s *Store) Update(id string, fn func(*models.Cart) error) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.carts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCartNotFound, id)
	}
	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	s.carts[id] = next
	return next.Clone(), nil
}

// Take runs fn on the cart and removes the cart when fn succeeds. Only one caller can
// take a given cart.
func (s *Store) Take(id string, fn func(*models.Cart) error) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.carts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCartNotFound, id)
	}
	if err := fn(current.Clone()); err != nil {
		return nil, err
	}
	delete(s.carts, id)
	return current.Clone(), nil
}

// Put stores c unless a cart with the same id already exists.
func (s *Store) Put(c *models.Cart) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[c.ID]; ok {
		return false
	}
	s.carts[c.ID] = c.Clone()
	return true
}
