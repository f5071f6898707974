package tracking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chrisdamba/fooddash/internal/models"
)

var fastSchedule = Schedule{
	PreparingAfter:      10 * time.Millisecond,
	OutForDeliveryAfter: 20 * time.Millisecond,
	ReachedAfter:        30 * time.Millisecond,
	DeliveredAfter:      40 * time.Millisecond,
}

func TestTrackerRunsFullLifecycle(t *testing.T) {
	tracker := NewTracker(fastSchedule, time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var got []Transition
	err := tracker.Run(ctx, "ord1", time.Now(), func(tr Transition) error {
		got = append(got, tr)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 4 {
		t.Fatalf("got %d transitions, want 4", len(got))
	}
	prev := models.OrderStatusPlaced
	for i, tr := range got {
		want := models.OrderStatuses[i+1]
		if tr.To != want || tr.From != prev {
			t.Fatalf("transition %d = %s->%s, want %s->%s", i, tr.From, tr.To, prev, want)
		}
		prev = tr.To
	}
}

func TestTrackerCatchesUpPastTransitions(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tracker := NewTracker(DefaultSchedule, time.Hour, WithClock(func() time.Time { return now }))

	var got []models.OrderStatus
	err := tracker.Run(context.Background(), "ord1", now.Add(-time.Minute), func(tr Transition) error {
		got = append(got, tr.To)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 || got[3] != models.OrderStatusDelivered {
		t.Fatalf("transitions = %v", got)
	}
}

func TestTrackerStopsOnCancel(t *testing.T) {
	tracker := NewTracker(DefaultSchedule, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	calls := 0
	err := tracker.Run(ctx, "ord1", time.Now(), func(Transition) error {
		calls++
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Fatalf("got %d transitions before cancel, want 0", calls)
	}
}

func TestTrackerReturnsCallbackError(t *testing.T) {
	now := time.Now()
	tracker := NewTracker(fastSchedule, time.Millisecond, WithClock(func() time.Time { return now.Add(time.Hour) }))
	boom := errors.New("boom")

	calls := 0
	err := tracker.Run(context.Background(), "ord1", now, func(Transition) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if calls != 1 {
		t.Fatalf("callback called %d times, want 1", calls)
	}
}

func TestTrackerWakesAtNextTransition(t *testing.T) {
	// The tick outlasts the whole schedule, so each transition fires from its own wake-up.
	tracker := NewTracker(fastSchedule, time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	calls := 0
	err := tracker.Run(ctx, "ord1", start, func(tr Transition) error {
		calls++
		if time.Now().Before(tr.At) {
			t.Errorf("%s fired before it was due", tr.To)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 4 {
		t.Fatalf("got %d transitions, want 4", calls)
	}
}
