// Package tracking derives the delivery status of an order from the time elapsed since
// it was placed.
package tracking

import (
	"errors"
	"fmt"
	"time"

	"github.com/chrisdamba/fooddash/internal/models"
)

// Schedule holds the offset from order creation at which each status begins.
type Schedule struct {
	PreparingAfter      time.Duration
	OutForDeliveryAfter time.Duration
	ReachedAfter        time.Duration
	DeliveredAfter      time.Duration
}

// DefaultSchedule is the demo-speed lifecycle: 3s, 8s, 14s, 18s.
var DefaultSchedule = Schedule{
	PreparingAfter:      3 * time.Second,
	OutForDeliveryAfter: 8 * time.Second,
	ReachedAfter:        14 * time.Second,
	DeliveredAfter:      18 * time.Second,
}

var ErrInvalidSchedule = errors.New("invalid tracking schedule")

// NewSchedule builds a schedule from config, falling back to the default for zero
// values.
func NewSchedule(cfg models.TrackingConfig) (Schedule, error) {
	s := Schedule{
		PreparingAfter:      cfg.PreparingAfter,
		OutForDeliveryAfter: cfg.OutForDeliveryAfter,
		ReachedAfter:        cfg.ReachedAfter,
		DeliveredAfter:      cfg.DeliveredAfter,
	}
	if s == (Schedule{}) {
		s = DefaultSchedule
	}
	if err := s.Validate(); err != nil {
		return Schedule{}, err
	}
	return s, nil
}

// StatusAt is DefaultSchedule.StatusAt.
func StatusAt(elapsed time.Duration) models.OrderStatus {
	return DefaultSchedule.StatusAt(elapsed)
}

func (s Schedule) Validate() error {
	offsets := s.offsets()
	prev := time.Duration(0)
	for i, d := range offsets {
		if d <= 0 {
			return fmt.Errorf("%w: offset for %s must be positive", ErrInvalidSchedule, models.OrderStatuses[i+1])
		}
		if d <= prev {
			return fmt.Errorf("%w: offset for %s must be after %s", ErrInvalidSchedule, models.OrderStatuses[i+1], prev)
		}
		prev = d
	}
	return nil
}

// offsets returns the start offset of every status after placed, in lifecycle order.
func (s Schedule) offsets() []time.Duration {
	return []time.Duration{s.PreparingAfter, s.OutForDeliveryAfter, s.ReachedAfter, s.DeliveredAfter}
}

// StatusAt returns the status of an order that was placed elapsed ago. Negative
// durations count as zero.
func (s Schedule) StatusAt(elapsed time.Duration) models.OrderStatus {
	status := models.OrderStatusPlaced
	for i, d := range s.offsets() {
		if elapsed < d {
			break
		}
		status = models.OrderStatuses[i+1]
	}
	return status
}

// Offset returns when status begins relative to placement.
func (s Schedule) Offset(status models.OrderStatus) time.Duration {
	rank := status.Rank()
	if rank <= 0 {
		return 0
	}
	return s.offsets()[rank-1]
}

// NextTransition returns the status that follows the one at elapsed and how long until
// it starts. ok is false once the order is delivered.
func (s Schedule) NextTransition(elapsed time.Duration) (next models.OrderStatus, in time.Duration, ok bool) {
	for i, d := range s.offsets() {
		if elapsed < d {
			return models.OrderStatuses[i+1], d - elapsed, true
		}
	}
	return "", 0, false
}

// Progress is the fraction of the whole lifecycle completed at elapsed, in [0, 1].
func (s Schedule) Progress(elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= s.DeliveredAfter {
		return 1
	}
	return float64(elapsed) / float64(s.DeliveredAfter)
}
