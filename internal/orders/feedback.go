package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strconv"

	"github.com/chrisdamba/fooddash/internal/models"
)

var (
	ErrOrderNotDelivered = errors.New("feedback is only accepted for delivered orders")
	ErrFeedbackExists    = errors.New("feedback already submitted")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrInvalidTip        = errors.New("tip must be one of the offered amounts")
	ErrUnknownTag        = errors.New("unknown feedback tag")
)

// FeedbackInput is what the customer submits after delivery. A zero Tip means no tip.
type FeedbackInput struct {
	Rating int      `json:"rating"`
	Tip    int64    `json:"tip"`
	Tags   []string `json:"tags"`
}

func (in FeedbackInput) Validate() error {
	if in.Rating < 1 || in.Rating > 5 {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, in.Rating)
	}
	if in.Tip != 0 && !slices.Contains(models.TipOptions, in.Tip) {
		return fmt.Errorf("%w: got %d", ErrInvalidTip, in.Tip)
	}
	for _, tag := range in.Tags {
		if !slices.Contains(models.FeedbackTags, tag) {
			return fmt.Errorf("%w: %q", ErrUnknownTag, tag)
		}
	}
	return nil
}

// SubmitFeedback stores the customer's rating, tip and tags. The status is never changed.
func (s *Service) SubmitFeedback(ctx context.Context, id string, in FeedbackInput) (*models.Order, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.advance(ctx, order, s.schedule.StatusAt(now.Sub(order.PlacedAt))); err != nil {
		return nil, err
	}
	if !order.Status.Terminal() {
		return nil, fmt.Errorf("%w: order %s is %s", ErrOrderNotDelivered, id, order.Status)
	}
	if order.Feedback != nil {
		return nil, fmt.Errorf("%w: order %s", ErrFeedbackExists, id)
	}

	order.Feedback = &models.Feedback{
		Rating:      in.Rating,
		Tip:         in.Tip,
		Tags:        dedupe(in.Tags),
		SubmittedAt: now,
	}
	order.UpdatedAt = now
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order %s: %w", id, err)
	}

	log.Printf("order feedback id=%s rating=%d tip=%d tags=%d", id, in.Rating, in.Tip, len(order.Feedback.Tags))
	s.metrics.FeedbackReceived(strconv.Itoa(in.Rating))
	s.publish(models.TopicOrderFeedback, order, order.Status, now)
	return order, nil
}

func dedupe(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, tag := range tags {
		if !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}
