package orders

import (
	"context"
	"errors"
	"log"

	"github.com/chrisdamba/fooddash/internal/models"
	"github.com/chrisdamba/fooddash/internal/tracking"
)

// Track follows one order in real time until it is delivered or ctx ends. fn sees the
// order after each transition has been stored.
func (s *Service) Track(ctx context.Context, id string, fn func(*models.Order, tracking.Transition)) error {
	order, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if order.Status.Terminal() {
		return nil
	}

	s.metrics.TrackerStarted()
	defer s.metrics.TrackerStopped()

	tracker := tracking.NewTracker(s.schedule, s.tick, tracking.WithClock(s.now))
	return tracker.Run(ctx, id, order.PlacedAt, func(tr tracking.Transition) error {
		updated, err := s.advanceTo(ctx, id, tr.To)
		if err != nil {
			return err
		}
		if fn != nil {
			fn(updated, tr)
		}
		return nil
	})
}

func (s *Service) advanceTo(ctx context.Context, id string, target models.OrderStatus) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.advance(ctx, order, target); err != nil {
		return nil, err
	}
	return order, nil
}

// StartTracking runs Track on its own goroutine. Wait blocks until every tracker
// started this way has returned.
func (s *Service) StartTracking(ctx context.Context, id string) {
	s.trackers.Add(1)
	go func() {
		defer s.trackers.Done()
		err := s.Track(ctx, id, nil)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("tracker stopped order=%s: %v", id, err)
		}
	}()
}

func (s *Service) Wait() {
	s.trackers.Wait()
}

// Progress describes where an order sits in its lifecycle.
type Progress struct {
	Info          tracking.Info      `json:"info"`
	Fraction      float64            `json:"progress"`
	Next          models.OrderStatus `json:"next_status,omitempty"`
	NextInSeconds float64            `json:"next_in_seconds,omitempty"`
}

// Progress reports the display state of order at the service clock. The order should
// come from Get so its status matches the elapsed time.
func (s *Service) Progress(order *models.Order) Progress {
	elapsed := s.now().Sub(order.PlacedAt)
	info, _ := tracking.StatusInfo(order.Status)
	p := Progress{
		Info:     info,
		Fraction: s.schedule.Progress(elapsed),
	}
	if next, in, ok := s.schedule.NextTransition(elapsed); ok {
		p.Next = next
		p.NextInSeconds = in.Seconds()
	}
	return p
}
