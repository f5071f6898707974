package models

import (
	"container/heap"
	"sync"
	"time"
)

const (
	EventAdvanceStatus = "AdvanceStatus"
)

// Event is a scheduled order lifecycle event
type Event struct {
	Time    time.Time
	Type    string
	OrderID string
	Status  OrderStatus
}

// EventQueue is a priority queue of events
type EventQueue struct {
	events []*Event
	mutex  sync.Mutex
}

// eventHeap implements heap.Interface and holds Events
type eventHeap []*Event

func (h eventHeap) Len() int           { return len(h) }
func (h eventHeap) Less(i, j int) bool { return h[i].Time.Before(h[j].Time) }
func (h eventHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(*Event))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// NewEventQueue creates a new EventQueue
func NewEventQueue() *EventQueue {
	return &EventQueue{events: make([]*Event, 0)}
}

// Enqueue adds an event to the queue
func (eq *EventQueue) Enqueue(event *Event) {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	heap.Push((*eventHeap)(&eq.events), event)
}

// Peek returns the earliest event without removing it
func (eq *EventQueue) Peek() *Event {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	if len(eq.events) == 0 {
		return nil
	}
	return eq.events[0]
}

// DequeueDue pops every event scheduled at or before now, earliest first.
func (eq *EventQueue) DequeueDue(now time.Time) []*Event {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()

	var due []*Event
	for len(eq.events) > 0 && !eq.events[0].Time.After(now) {
		due = append(due, heap.Pop((*eventHeap)(&eq.events)).(*Event))
	}
	return due
}

// Clear drops all pending events
func (eq *EventQueue) Clear() {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	eq.events = eq.events[:0]
}
