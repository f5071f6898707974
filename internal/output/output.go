// Package output ships order events to files, Kafka, RabbitMQ or stdout.
package output

import (
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/chrisdamba/fooddash/internal/models"
)

// Destination receives serialized events for a topic.
type Destination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// OrderEvent is the record written for every order topic.
type OrderEvent struct {
	EventID        string   `json:"event_id" parquet:"name=event_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Type           string   `json:"event_type" parquet:"name=event_type, type=BYTE_ARRAY, convertedtype=UTF8"`
	OrderID        string   `json:"order_id" parquet:"name=order_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	RestaurantID   string   `json:"restaurant_id" parquet:"name=restaurant_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Status         string   `json:"status" parquet:"name=status, type=BYTE_ARRAY, convertedtype=UTF8"`
	PreviousStatus string   `json:"previous_status" parquet:"name=previous_status, type=BYTE_ARRAY, convertedtype=UTF8"`
	ItemCount      int32    `json:"item_count" parquet:"name=item_count, type=INT32"`
	GrandTotal     float64  `json:"grand_total" parquet:"name=grand_total, type=DOUBLE"`
	PaymentMethod  string   `json:"payment_method" parquet:"name=payment_method, type=BYTE_ARRAY, convertedtype=UTF8"`
	Rating         int32    `json:"rating,omitempty" parquet:"name=rating, type=INT32"`
	Tip            int64    `json:"tip,omitempty" parquet:"name=tip, type=INT64"`
	Tags           []string `json:"tags,omitempty" parquet:"name=tags, type=MAP, convertedtype=LIST, valuetype=BYTE_ARRAY, valueconvertedtype=UTF8"`
	Timestamp      int64    `json:"timestamp" parquet:"name=timestamp, type=INT64"`
}

// NewOrderEvent describes order as it is after the change that produced topic.
func NewOrderEvent(topic string, order *models.Order, previous models.OrderStatus, at time.Time) OrderEvent {
	itemCount := 0
	for _, entry := range order.Items {
		itemCount += entry.Quantity
	}
	event := OrderEvent{
		EventID:        uuid.NewString(),
		Type:           topic,
		OrderID:        order.ID,
		RestaurantID:   order.RestaurantID,
		Status:         string(order.Status),
		PreviousStatus: string(previous),
		ItemCount:      int32(itemCount),
		GrandTotal:     order.Bill.GrandTotal.InexactFloat64(),
		PaymentMethod:  order.PaymentMethod.Name,
		Timestamp:      at.Unix(),
	}
	if order.Feedback != nil {
		event.Rating = int32(order.Feedback.Rating)
		event.Tip = order.Feedback.Tip
		event.Tags = order.Feedback.Tags
	}
	return event
}

func decodeEvent(msg []byte) (OrderEvent, error) {
	var event OrderEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return event, err
	}
	if event.Timestamp == 0 {
		return event, fmt.Errorf("invalid timestamp")
	}
	return event, nil
}

// partitionPath buckets events by the hour they happened in.
func partitionPath(timestamp int64) string {
	eventTime := time.Unix(timestamp, 0).UTC()
	year, month, day := eventTime.Date()
	return fmt.Sprintf("year=%d/month=%02d/day=%02d/hour=%02d", year, month, day, eventTime.Hour())
}

func partitionDir(basePath, folder, topic string, timestamp int64) string {
	return filepath.Join(basePath, folder, topic, filepath.FromSlash(partitionPath(timestamp)))
}

// NewDestination picks the destination configured in cfg. Kafka wins over RabbitMQ,
// which wins over files; with none of them set events go to stdout.
func NewDestination(cfg *models.Config) (Destination, error) {
	switch {
	case cfg.KafkaEnabled:
		return NewKafkaOutput(cfg)
	case cfg.RabbitMQEnabled:
		return NewRabbitMQOutput(cfg.RabbitMQURL, cfg.RabbitMQExchange)
	case cfg.OutputPath != "" || cfg.OutputDestination == "cloud":
		switch cfg.OutputFormat {
		case "parquet":
			return NewParquetOutput(cfg)
		case "json", "":
			return NewJSONOutput(cfg.OutputPath, cfg.OutputFolder), nil
		case "csv":
			return NewCSVOutput(cfg.OutputPath, cfg.OutputFolder), nil
		default:
			return nil, fmt.Errorf("unsupported output format: %s", cfg.OutputFormat)
		}
	}
	log.Printf("no output configured, writing events to stdout")
	return NewConsoleOutput(), nil
}
