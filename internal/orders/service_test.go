package orders

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chrisdamba/fooddash/internal/cart"
	"github.com/chrisdamba/fooddash/internal/metrics"
	"github.com/chrisdamba/fooddash/internal/models"
	"github.com/chrisdamba/fooddash/internal/repositories/memory"
	"github.com/chrisdamba/fooddash/internal/tracking"
)

type publishedEvent struct {
	topic    string
	status   models.OrderStatus
	previous models.OrderStatus
	at       time.Time
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (r *recordingPublisher) Publish(topic string, order *models.Order, previous models.OrderStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, publishedEvent{topic: topic, status: order.Status, previous: previous, at: at})
	return nil
}

func (r *recordingPublisher) topics(topic string) []publishedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []publishedEvent
	for _, e := range r.events {
		if e.topic == topic {
			out = append(out, e)
		}
	}
	return out
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

var placedAt = time.Date(2026, 5, 1, 19, 30, 0, 0, time.UTC)

func testCheckout() *cart.Checkout {
	return &cart.Checkout{
		Cart: &models.Cart{
			ID:           "cart1",
			RestaurantID: "107",
			Entries: []models.CartEntry{
				{ID: "c1", ItemID: "m1", Name: "Chipotle Chicken Burrito Bowl", Quantity: 1, UnitPrice: decimal.RequireFromString("15.00")},
				{ID: "c2", ItemID: "m6", Name: "Chips & Salsa", Quantity: 1, UnitPrice: decimal.RequireFromString("3.50")},
			},
		},
		Bill:          models.Bill{GrandTotal: decimal.RequireFromString("25.12")},
		PaymentMethod: models.PaymentMethod{ID: "p1", Name: "Apple Pay"},
		Address:       models.Address{ID: "a1", Label: "Home"},
	}
}

func newTestService(t *testing.T) (*Service, *clock, *recordingPublisher) {
	t.Helper()
	c := &clock{now: placedAt}
	pub := &recordingPublisher{}
	s := NewService(memory.NewOrderRepository(), tracking.DefaultSchedule,
		WithClock(c.Now), WithPublisher(pub), WithMetrics(metrics.New()))
	return s, c, pub
}

func TestPlaceOrder(t *testing.T) {
	s, _, pub := newTestService(t)
	order, err := s.PlaceOrder(context.Background(), testCheckout())
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if order.ID == "" || order.Status != models.OrderStatusPlaced || order.RestaurantID != "107" {
		t.Fatalf("order = %+v", order)
	}
	if len(order.Items) != 2 || !order.PlacedAt.Equal(placedAt) {
		t.Fatalf("order items/time = %d %s", len(order.Items), order.PlacedAt)
	}
	if got := pub.topics(models.TopicOrderPlaced); len(got) != 1 {
		t.Fatalf("placed events = %d, want 1", len(got))
	}
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	s, _, _ := newTestService(t)
	checkout := testCheckout()
	checkout.Cart.Entries = nil
	if _, err := s.PlaceOrder(context.Background(), checkout); !errors.Is(err, cart.ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}
}

func TestGetAdvancesWithTime(t *testing.T) {
	s, c, pub := newTestService(t)
	ctx := context.Background()
	order, _ := s.PlaceOrder(ctx, testCheckout())

	c.Set(placedAt.Add(2 * time.Second))
	got, err := s.Get(ctx, order.ID)
	if err != nil || got.Status != models.OrderStatusPlaced {
		t.Fatalf("at +2s = %v, %v", got.Status, err)
	}

	c.Set(placedAt.Add(5 * time.Second))
	got, _ = s.Get(ctx, order.ID)
	if got.Status != models.OrderStatusPreparing {
		t.Fatalf("at +5s status = %s, want preparing", got.Status)
	}

	c.Set(placedAt.Add(30 * time.Second))
	got, _ = s.Get(ctx, order.ID)
	if got.Status != models.OrderStatusDelivered {
		t.Fatalf("at +30s status = %s, want delivered", got.Status)
	}
	if got.DeliveredAt == nil || !got.DeliveredAt.Equal(placedAt.Add(18*time.Second)) {
		t.Fatalf("delivered at = %v, want +18s", got.DeliveredAt)
	}

	events := pub.topics(models.TopicOrderStatus)
	if len(events) != 4 {
		t.Fatalf("got %d status events, want one per transition", len(events))
	}
	prev := models.OrderStatusPlaced
	for i, e := range events {
		if e.previous != prev || e.status != models.OrderStatuses[i+1] {
			t.Fatalf("event %d = %s->%s", i, e.previous, e.status)
		}
		prev = e.status
	}
	if !events[2].at.Equal(placedAt.Add(14 * time.Second)) {
		t.Fatalf("reached event at %s, want +14s", events[2].at)
	}
}

func TestGetNeverMovesBackwards(t *testing.T) {
	s, c, _ := newTestService(t)
	ctx := context.Background()
	order, _ := s.PlaceOrder(ctx, testCheckout())

	c.Set(placedAt.Add(10 * time.Second))
	if got, _ := s.Get(ctx, order.ID); got.Status != models.OrderStatusOutForDelivery {
		t.Fatalf("status = %s, want out_for_delivery", got.Status)
	}
	c.Set(placedAt)
	if got, _ := s.Get(ctx, order.ID); got.Status != models.OrderStatusOutForDelivery {
		t.Fatalf("status went back to %s", got.Status)
	}
}

func TestGetUnknownOrder(t *testing.T) {
	s, _, _ := newTestService(t)
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("err = %v, want ErrOrderNotFound", err)
	}
}

func TestTrackRunsToDelivered(t *testing.T) {
	fast := tracking.Schedule{
		PreparingAfter:      10 * time.Millisecond,
		OutForDeliveryAfter: 20 * time.Millisecond,
		ReachedAfter:        30 * time.Millisecond,
		DeliveredAfter:      40 * time.Millisecond,
	}
	pub := &recordingPublisher{}
	s := NewService(memory.NewOrderRepository(), fast, WithPublisher(pub), WithTickInterval(time.Millisecond))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	order, err := s.PlaceOrder(ctx, testCheckout())
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	var seen []models.OrderStatus
	err = s.Track(ctx, order.ID, func(o *models.Order, tr tracking.Transition) {
		if o.Status.Rank() < tr.To.Rank() {
			t.Errorf("callback order status %s behind transition %s", o.Status, tr.To)
		}
		seen = append(seen, tr.To)
	})
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if len(seen) != 4 || seen[3] != models.OrderStatusDelivered {
		t.Fatalf("transitions = %v", seen)
	}

	final, _ := s.Get(ctx, order.ID)
	if final.Status != models.OrderStatusDelivered {
		t.Fatalf("final status = %s", final.Status)
	}
	if n := len(pub.topics(models.TopicOrderStatus)); n != 4 {
		t.Fatalf("got %d status events, want 4", n)
	}
}

func TestStartTrackingStopsOnCancel(t *testing.T) {
	s := NewService(memory.NewOrderRepository(), tracking.DefaultSchedule, WithTickInterval(time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	order, _ := s.PlaceOrder(ctx, testCheckout())

	s.StartTracking(ctx, order.ID)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("tracker did not stop after cancel")
	}
}

func TestProgress(t *testing.T) {
	s, c, _ := newTestService(t)
	ctx := context.Background()
	order, _ := s.PlaceOrder(ctx, testCheckout())

	c.Set(placedAt.Add(9 * time.Second))
	got, _ := s.Get(ctx, order.ID)
	p := s.Progress(got)
	if p.Fraction != 0.5 {
		t.Fatalf("progress = %v, want 0.5", p.Fraction)
	}
	if p.Info.Title != "Out for delivery" {
		t.Fatalf("info = %+v", p.Info)
	}
	if p.Next != models.OrderStatusReached || p.NextInSeconds != 5 {
		t.Fatalf("next = %s in %vs, want reached in 5s", p.Next, p.NextInSeconds)
	}

	c.Set(placedAt.Add(time.Minute))
	got, _ = s.Get(ctx, order.ID)
	p = s.Progress(got)
	if p.Fraction != 1 || p.Next != "" {
		t.Fatalf("delivered progress = %+v", p)
	}
}
