package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/chrisdamba/fooddash/internal/models"
	"github.com/chrisdamba/fooddash/internal/repositories"
)

func newTestRepository(t *testing.T, ttl time.Duration) (*OrderRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewOrderRepository(client, ttl), mr
}

func testOrder(id string) *models.Order {
	now := time.Date(2026, 5, 1, 19, 30, 0, 0, time.UTC)
	return &models.Order{
		ID:           id,
		RestaurantID: "107",
		Status:       models.OrderStatusPlaced,
		Items: []models.CartEntry{{
			ID: "c1", ItemID: "m1", Quantity: 1,
			UnitPrice:  decimal.RequireFromString("15.00"),
			Selections: map[string][]string{"cg1": {"o1"}},
		}},
		Bill:      models.Bill{GrandTotal: decimal.RequireFromString("25.12")},
		PlacedAt:  now,
		UpdatedAt: now,
	}
}

func TestOrderRoundTrip(t *testing.T) {
	repo, _ := newTestRepository(t, 0)
	ctx := context.Background()

	order := testOrder("ord1")
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, order); err == nil {
		t.Fatalf("expected duplicate create to fail")
	}

	if _, err := order.Advance(models.OrderStatusPreparing, order.PlacedAt.Add(3*time.Second)); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if err := repo.Update(ctx, order); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(ctx, "ord1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != models.OrderStatusPreparing {
		t.Fatalf("status = %s, want preparing", got.Status)
	}
	if !got.Bill.GrandTotal.Equal(decimal.RequireFromString("25.12")) {
		t.Fatalf("grand total = %s", got.Bill.GrandTotal)
	}
	if got.Items[0].Selections["cg1"][0] != "o1" {
		t.Fatalf("selections = %v", got.Items[0].Selections)
	}
	if !got.PlacedAt.Equal(order.PlacedAt) {
		t.Fatalf("placed at = %s, want %s", got.PlacedAt, order.PlacedAt)
	}
}

func TestOrderNotFound(t *testing.T) {
	repo, _ := newTestRepository(t, 0)
	ctx := context.Background()
	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := repo.Update(ctx, testOrder("missing")); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCountAndDeleteAll(t *testing.T) {
	repo, mr := newTestRepository(t, time.Hour)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		if err := repo.Create(ctx, testOrder(id)); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	if n, err := repo.Count(ctx); err != nil || n != 3 {
		t.Fatalf("count = %d, %v", n, err)
	}

	mr.FastForward(2 * time.Hour)
	if n, _ := repo.Count(ctx); n != 0 {
		t.Fatalf("count after expiry = %d, want 0", n)
	}

	if err := repo.Create(ctx, testOrder("d")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if n, _ := repo.Count(ctx); n != 0 {
		t.Fatalf("count after delete = %d, want 0", n)
	}
}

func TestUpdateKeepsTTL(t *testing.T) {
	repo, mr := newTestRepository(t, time.Hour)
	ctx := context.Background()
	order := testOrder("ord1")
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create: %v", err)
	}
	mr.FastForward(30 * time.Minute)
	if err := repo.Update(ctx, order); err != nil {
		t.Fatalf("update: %v", err)
	}
	if ttl := mr.TTL(orderKey("ord1")); ttl != 30*time.Minute {
		t.Fatalf("ttl = %s, want 30m", ttl)
	}
}
