package models

import (
	"fmt"
	"time"
)

type Order struct {
	ID            string        `json:"id"`
	RestaurantID  string        `json:"restaurant_id"`
	Items         []CartEntry   `json:"items"`
	Bill          Bill          `json:"bill"`
	Status        OrderStatus   `json:"status"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Address       Address       `json:"delivery_address"`
	PlacedAt      time.Time     `json:"placed_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	DeliveredAt   *time.Time    `json:"delivered_at,omitempty"`
	Feedback      *Feedback     `json:"feedback,omitempty"`
}

type Feedback struct {
	Rating      int       `json:"rating"`
	Tip         int64     `json:"tip,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Advance moves the order forward to status. Moving backwards is an error, staying on
// the same status is a no-op.
func (o *Order) Advance(status OrderStatus, at time.Time) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("unknown order status %q", status)
	}
	if status.Rank() < o.Status.Rank() {
		return false, fmt.Errorf("order %s cannot move from %s back to %s", o.ID, o.Status, status)
	}
	if status == o.Status {
		return false, nil
	}
	o.Status = status
	o.UpdatedAt = at
	if status == OrderStatusDelivered {
		delivered := at
		o.DeliveredAt = &delivered
	}
	return true, nil
}

// Clone returns a copy that shares no mutable state with o.
func (o *Order) Clone() *Order {
	c := *o
	c.Items = make([]CartEntry, len(o.Items))
	for i, entry := range o.Items {
		c.Items[i] = entry.Clone()
	}
	if o.DeliveredAt != nil {
		delivered := *o.DeliveredAt
		c.DeliveredAt = &delivered
	}
	if o.Feedback != nil {
		fb := *o.Feedback
		fb.Tags = append([]string(nil), o.Feedback.Tags...)
		c.Feedback = &fb
	}
	return &c
}
