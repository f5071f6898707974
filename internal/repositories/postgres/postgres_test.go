package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/chrisdamba/fooddash/internal/models"
)

func TestNumericConversion(t *testing.T) {
	for _, s := range []string{"0", "12.50", "3.5", "25.99", "1000"} {
		d := decimal.RequireFromString(s)
		if got := fromNumeric(toNumeric(d)); !got.Equal(d) {
			t.Fatalf("round trip of %s = %s", s, got)
		}
	}
}

// testPool connects to FOODDASH_TEST_DATABASE_URL, skipping when it is not set.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("FOODDASH_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("FOODDASH_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	if err := EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("schema: %v", err)
	}
	for _, table := range []string{"orders", "menu_items", "restaurants"} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			t.Fatalf("clean %s: %v", table, err)
		}
	}
	return pool
}

func TestCatalogRoundTrip(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	restaurants := NewRestaurantRepository(pool)
	items := NewMenuItemRepository(pool)

	err := restaurants.BulkCreate(ctx, []*models.Restaurant{
		{ID: "107", Name: "Maiz Mexican Kitchen", Tags: []string{"Mexican"}, IsVeg: true},
		{ID: "101", Name: "Pizza Hut"},
	})
	if err != nil {
		t.Fatalf("bulk create restaurants: %v", err)
	}
	err = items.BulkCreate(ctx, []*models.MenuItem{{
		ID: "m1", RestaurantID: "107", Section: "Recommended for you", Name: "Burrito Bowl",
		Price: decimal.RequireFromString("12.50"), Customizable: true,
		CustomizationGroups: []models.CustomizationGroup{{
			ID: "cg1", Title: "Choice of Rice", Type: models.GroupTypeSingle, Required: true,
			Options: []models.Option{{ID: "o1", Name: "White", Price: decimal.Zero, Type: models.FoodTypeVeg}},
		}},
	}})
	if err != nil {
		t.Fatalf("bulk create items: %v", err)
	}

	all, err := restaurants.GetAll(ctx)
	if err != nil || len(all) != 2 || all[0].ID != "107" {
		t.Fatalf("GetAll = %v, %v", all, err)
	}
	item, err := items.GetByID(ctx, "107", "m1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !item.Price.Equal(decimal.RequireFromString("12.50")) || len(item.CustomizationGroups) != 1 {
		t.Fatalf("item = %+v", item)
	}
}

func TestOrderRoundTrip(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewOrderRepository(pool)

	now := time.Now().UTC().Truncate(time.Millisecond)
	order := &models.Order{
		ID: "ord1", RestaurantID: "107", Status: models.OrderStatusPlaced,
		Items:    []models.CartEntry{{ID: "c1", ItemID: "m1", Quantity: 2, UnitPrice: decimal.RequireFromString("15.00")}},
		Bill:     models.Bill{GrandTotal: decimal.RequireFromString("40.17")},
		PlacedAt: now, UpdatedAt: now,
	}
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := order.Advance(models.OrderStatusDelivered, now.Add(18*time.Second)); err != nil {
		t.Fatalf("advance: %v", err)
	}
	order.Feedback = &models.Feedback{Rating: 4, Tip: 5, SubmittedAt: now}
	if err := repo.Update(ctx, order); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(ctx, "ord1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != models.OrderStatusDelivered || got.DeliveredAt == nil || got.Feedback == nil || got.Feedback.Rating != 4 {
		t.Fatalf("order = %+v", got)
	}
	if !got.Bill.GrandTotal.Equal(decimal.RequireFromString("40.17")) || got.Items[0].Quantity != 2 {
		t.Fatalf("bill/items = %+v %+v", got.Bill, got.Items)
	}
}
