package models

import (
	"testing"
	"time"
)

func TestEventQueueOrdersByTime(t *testing.T) {
	base := time.Date(2026, 5, 1, 19, 30, 0, 0, time.UTC)
	q := NewEventQueue()
	if q.Peek() != nil {
		t.Fatalf("empty queue peeked an event")
	}

	q.Enqueue(&Event{Time: base.Add(8 * time.Second), Status: OrderStatusOutForDelivery})
	q.Enqueue(&Event{Time: base.Add(3 * time.Second), Status: OrderStatusPreparing})
	q.Enqueue(&Event{Time: base.Add(14 * time.Second), Status: OrderStatusReached})

	if next := q.Peek(); next.Status != OrderStatusPreparing {
		t.Fatalf("peek = %s, want preparing", next.Status)
	}
	if due := q.DequeueDue(base); len(due) != 0 {
		t.Fatalf("got %d due events at placement, want 0", len(due))
	}

	due := q.DequeueDue(base.Add(10 * time.Second))
	if len(due) != 2 || due[0].Status != OrderStatusPreparing || due[1].Status != OrderStatusOutForDelivery {
		t.Fatalf("due = %+v", due)
	}
	if next := q.Peek(); next.Status != OrderStatusReached {
		t.Fatalf("peek after dequeue = %s, want reached", next.Status)
	}

	q.Clear()
	if q.Peek() != nil {
		t.Fatalf("cleared queue still has events")
	}
}
