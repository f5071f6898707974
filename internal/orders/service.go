// Package orders places orders and moves them through the delivery lifecycle.
package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/lucsky/cuid"

	"github.com/chrisdamba/fooddash/internal/cart"
	"github.com/chrisdamba/fooddash/internal/metrics"
	"github.com/chrisdamba/fooddash/internal/models"
	"github.com/chrisdamba/fooddash/internal/repositories"
	"github.com/chrisdamba/fooddash/internal/tracking"
)

var ErrOrderNotFound = errors.New("order not found")

// EventPublisher receives every order change. output.Publisher implements it.
type EventPublisher interface {
	Publish(topic string, order *models.Order, previous models.OrderStatus, at time.Time) error
}

type Service struct {
	repo      repositories.OrderRepository
	schedule  tracking.Schedule
	tick      time.Duration
	publisher EventPublisher
	metrics   *metrics.Metrics
	now       func() time.Time

	// mu serializes read-modify-write cycles on orders.
	mu       sync.Mutex
	trackers sync.WaitGroup
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithPublisher(p EventPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTickInterval sets how often live trackers poll for due transitions.
func WithTickInterval(d time.Duration) Option {
	return func(s *Service) { s.tick = d }
}

func NewService(repo repositories.OrderRepository, schedule tracking.Schedule, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		schedule: schedule,
		tick:     250 * time.Millisecond,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceOrder turns a validated checkout into a new order in the placed state.
func (s *Service) PlaceOrder(ctx context.Context, checkout *cart.Checkout) (*models.Order, error) {
	if checkout == nil || len(checkout.Cart.Entries) == 0 {
		return nil, cart.ErrEmptyCart
	}
	now := s.now()
	items := make([]models.CartEntry, len(checkout.Cart.Entries))
	for i, entry := range checkout.Cart.Entries {
		items[i] = entry.Clone()
	}
	order := &models.Order{
		ID:            cuid.New(),
		RestaurantID:  checkout.Cart.RestaurantID,
		Items:         items,
		Bill:          checkout.Bill,
		Status:        models.OrderStatusPlaced,
		PaymentMethod: checkout.PaymentMethod,
		Address:       checkout.Address,
		PlacedAt:      now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	log.Printf("order placed id=%s restaurant=%s items=%d total=%s", order.ID, order.RestaurantID, len(order.Items), order.Bill.GrandTotal.StringFixed(2))
	s.metrics.OrderPlaced()
	s.publish(models.TopicOrderPlaced, order, "", now)
	return order, nil
}

// Get returns the order with its status brought up to date with the schedule.
func (s *Service) Get(ctx context.Context, id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	target := s.schedule.StatusAt(s.now().Sub(order.PlacedAt))
	if err := s.advance(ctx, order, target); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) load(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	return order, nil
}

// advance moves order forward to target one status at a time, stamping each step with
// its scheduled time, persists it and emits one status event per step. Targets at or
// behind the current status leave the order untouched. Callers hold s.mu.
func (s *Service) advance(ctx context.Context, order *models.Order, target models.OrderStatus) error {
	if target.Rank() <= order.Status.Rank() {
		return nil
	}

	type step struct {
		from, to models.OrderStatus
		at       time.Time
	}
	var steps []step
	for _, status := range models.OrderStatuses[order.Status.Rank()+1 : target.Rank()+1] {
		at := order.PlacedAt.Add(s.schedule.Offset(status))
		from := order.Status
		if _, err := order.Advance(status, at); err != nil {
			return err
		}
		steps = append(steps, step{from: from, to: status, at: at})
	}
	if err := s.repo.Update(ctx, order); err != nil {
		return fmt.Errorf("update order %s: %w", order.ID, err)
	}

	for _, st := range steps {
		snapshot := order.Clone()
		snapshot.Status = st.to
		log.Printf("order status id=%s from=%s to=%s", order.ID, st.from, st.to)
		s.metrics.StatusChanged(string(st.to))
		s.publish(models.TopicOrderStatus, snapshot, st.from, st.at)
	}
	return nil
}

func (s *Service) publish(topic string, order *models.Order, previous models.OrderStatus, at time.Time) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(topic, order, previous, at); err != nil {
		log.Printf("failed to publish event topic=%s order=%s: %v", topic, order.ID, err)
	}
}
