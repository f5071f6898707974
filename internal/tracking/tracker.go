package tracking

import (
	"context"
	"time"

	"github.com/chrisdamba/fooddash/internal/models"
)

// Transition is one status change observed by a Tracker.
type Transition struct {
	OrderID string
	From    models.OrderStatus
	To      models.OrderStatus
	At      time.Time // scheduled time of the change
}

// Tracker replays the lifecycle of an order in real time. It sleeps until the next
// transition is due, waking at least every tick so an injected clock is re-read.
type Tracker struct {
	schedule Schedule
	tick     time.Duration
	now      func() time.Time
}

type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func NewTracker(schedule Schedule, tick time.Duration, opts ...Option) *Tracker {
	if tick <= 0 {
		tick = 250 * time.Millisecond
	}
	t := &Tracker{schedule: schedule, tick: tick, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run calls onChange for every transition of an order placed at placedAt, in lifecycle
// order, as each comes due. Transitions already in the past fire on the first pass.
// Run returns nil after delivered, the callback error if it fails, or ctx.Err() when
// the context ends first; pending transitions are dropped in both error cases.
func (t *Tracker) Run(ctx context.Context, orderID string, placedAt time.Time, onChange func(Transition) error) error {
	queue := models.NewEventQueue()
	for _, status := range models.OrderStatuses[1:] {
		queue.Enqueue(&models.Event{
			Time:    placedAt.Add(t.schedule.Offset(status)),
			Type:    models.EventAdvanceStatus,
			OrderID: orderID,
			Status:  status,
		})
	}

	timer := time.NewTimer(t.tick)
	defer timer.Stop()

	last := models.OrderStatusPlaced
	for {
		for _, event := range queue.DequeueDue(t.now()) {
			transition := Transition{OrderID: orderID, From: last, To: event.Status, At: event.Time}
			last = event.Status
			if err := onChange(transition); err != nil {
				queue.Clear()
				return err
			}
			if event.Status.Terminal() {
				return nil
			}
		}

		wait := t.tick
		if next := queue.Peek(); next != nil {
			if until := next.Time.Sub(t.now()); until < wait {
				wait = max(until, 0)
			}
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case <-ctx.Done():
			queue.Clear()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
