package output

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/chrisdamba/fooddash/internal/models"
)

// Publisher turns order changes into OrderEvents on a Destination.
type Publisher struct {
	dest Destination
}

func NewPublisher(dest Destination) *Publisher {
	return &Publisher{dest: dest}
}

func (p *Publisher) Publish(topic string, order *models.Order, previous models.OrderStatus, at time.Time) error {
	msg, err := json.Marshal(NewOrderEvent(topic, order, previous, at))
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}
	if err := p.dest.WriteMessage(topic, msg); err != nil {
		return fmt.Errorf("write %s event for order %s: %w", topic, order.ID, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.dest.Close()
}
