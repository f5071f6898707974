package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chrisdamba/fooddash/internal/models"
	"github.com/chrisdamba/fooddash/internal/repositories"
)

// OrderRepository keeps line items, bill, payment, address and feedback as JSONB.
type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

type orderDocuments struct {
	items, bill, payment, address, feedback []byte
}

func encodeOrder(order *models.Order) (*orderDocuments, error) {
	var docs orderDocuments
	var err error
	if docs.items, err = json.Marshal(order.Items); err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	if docs.bill, err = json.Marshal(order.Bill); err != nil {
		return nil, fmt.Errorf("encode bill: %w", err)
	}
	if docs.payment, err = json.Marshal(order.PaymentMethod); err != nil {
		return nil, fmt.Errorf("encode payment method: %w", err)
	}
	if docs.address, err = json.Marshal(order.Address); err != nil {
		return nil, fmt.Errorf("encode address: %w", err)
	}
	if order.Feedback != nil {
		if docs.feedback, err = json.Marshal(order.Feedback); err != nil {
			return nil, fmt.Errorf("encode feedback: %w", err)
		}
	}
	return &docs, nil
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	docs, err := encodeOrder(order)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO orders (
            id, restaurant_id, status, items, bill, payment_method, address,
            feedback, placed_at, updated_at, delivered_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
        )
    `
	_, err = r.pool.Exec(ctx, query,
		order.ID,
		order.RestaurantID,
		string(order.Status),
		docs.items,
		docs.bill,
		docs.payment,
		docs.address,
		docs.feedback,
		order.PlacedAt,
		order.UpdatedAt,
		order.DeliveredAt,
	)
	return err
}

// Update writes the mutable parts of an order: status, feedback and timestamps.
func (r *OrderRepository) Update(ctx context.Context, order *models.Order) error {
	docs, err := encodeOrder(order)
	if err != nil {
		return err
	}
	query := `
        UPDATE orders
        SET status = $2, feedback = $3, updated_at = $4, delivered_at = $5
        WHERE id = $1
    `
	tag, err := r.pool.Exec(ctx, query, order.ID, string(order.Status), docs.feedback, order.UpdatedAt, order.DeliveredAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	query := `
        SELECT
            id, restaurant_id, status, items, bill, payment_method, address,
            feedback, placed_at, updated_at, delivered_at
        FROM orders
        WHERE id = $1
    `
	order := &models.Order{}
	var status string
	var docs orderDocuments
	var deliveredAt *time.Time
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.RestaurantID,
		&status,
		&docs.items,
		&docs.bill,
		&docs.payment,
		&docs.address,
		&docs.feedback,
		&order.PlacedAt,
		&order.UpdatedAt,
		&deliveredAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	order.Status = models.OrderStatus(status)
	order.DeliveredAt = deliveredAt
	if err := json.Unmarshal(docs.items, &order.Items); err != nil {
		return nil, fmt.Errorf("decode items of %s: %w", id, err)
	}
	if err := json.Unmarshal(docs.bill, &order.Bill); err != nil {
		return nil, fmt.Errorf("decode bill of %s: %w", id, err)
	}
	if err := json.Unmarshal(docs.payment, &order.PaymentMethod); err != nil {
		return nil, fmt.Errorf("decode payment method of %s: %w", id, err)
	}
	if err := json.Unmarshal(docs.address, &order.Address); err != nil {
		return nil, fmt.Errorf("decode address of %s: %w", id, err)
	}
	if docs.feedback != nil {
		order.Feedback = &models.Feedback{}
		if err := json.Unmarshal(docs.feedback, order.Feedback); err != nil {
			return nil, fmt.Errorf("decode feedback of %s: %w", id, err)
		}
	}
	return order, nil
}

func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders").Scan(&count)
	return count, err
}

func (r *OrderRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM orders")
	return err
}
