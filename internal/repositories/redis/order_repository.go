// Package redis stores orders as JSON documents in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/chrisdamba/fooddash/internal/models"
	"github.com/chrisdamba/fooddash/internal/repositories"
)

const (
	keyPrefix = "fooddash:order:"
	indexKey  = "fooddash:orders"
)

type OrderRepository struct {
	client *goredis.Client
	ttl    time.Duration // zero keeps orders forever
}

// NewClient connects to cfg.Addr and pings it.
func NewClient(ctx context.Context, cfg models.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to reach redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

func NewOrderRepository(client *goredis.Client, ttl time.Duration) *OrderRepository {
	return &OrderRepository{client: client, ttl: ttl}
}

func orderKey(id string) string { return keyPrefix + id }

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order %s: %w", order.ID, err)
	}
	created, err := r.client.SetNX(ctx, orderKey(order.ID), data, r.ttl).Result()
	if err != nil {
		return err
	}
	if !created {
		return fmt.Errorf("order %s already exists", order.ID)
	}
	return r.client.SAdd(ctx, indexKey, order.ID).Err()
}

func (r *OrderRepository) Update(ctx context.Context, order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order %s: %w", order.ID, err)
	}
	updated, err := r.client.SetXX(ctx, orderKey(order.ID), data, r.ttlOrKeep()).Result()
	if err != nil {
		return err
	}
	if !updated {
		return repositories.ErrNotFound
	}
	return nil
}

// ttlOrKeep preserves the expiry set at creation when updating.
func (r *OrderRepository) ttlOrKeep() time.Duration {
	if r.ttl > 0 {
		return goredis.KeepTTL
	}
	return 0
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	data, err := r.client.Get(ctx, orderKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var order models.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("decode order %s: %w", id, err)
	}
	return &order, nil
}

// Count reports orders still present; expired ones are pruned from the index.
func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, id := range ids {
		exists, err := r.client.Exists(ctx, orderKey(id)).Result()
		if err != nil {
			return 0, err
		}
		if exists == 1 {
			count++
			continue
		}
		r.client.SRem(ctx, indexKey, id)
	}
	return count, nil
}

func (r *OrderRepository) DeleteAll(ctx context.Context) error {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, orderKey(id))
	}
	keys = append(keys, indexKey)
	return r.client.Del(ctx, keys...).Err()
}
