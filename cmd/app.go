package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chrisdamba/fooddash/internal/cart"
	"github.com/chrisdamba/fooddash/internal/catalog"
	"github.com/chrisdamba/fooddash/internal/factories"
	"github.com/chrisdamba/fooddash/internal/metrics"
	"github.com/chrisdamba/fooddash/internal/models"
	"github.com/chrisdamba/fooddash/internal/orders"
	"github.com/chrisdamba/fooddash/internal/output"
	"github.com/chrisdamba/fooddash/internal/repositories"
	"github.com/chrisdamba/fooddash/internal/repositories/memory"
	"github.com/chrisdamba/fooddash/internal/repositories/postgres"
	"github.com/chrisdamba/fooddash/internal/repositories/redis"
	"github.com/chrisdamba/fooddash/internal/tracking"
)

// app holds the services shared by the serve and track commands.
type app struct {
	cfg       *models.Config
	catalog   *catalog.Catalog
	carts     *cart.Service
	orders    *orders.Service
	metrics   *metrics.Metrics
	publisher *output.Publisher

	closers []func()
}

func newApp(ctx context.Context, cfg *models.Config) (_ *app, err error) {
	a := &app{cfg: cfg, metrics: metrics.New()}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	var pool *pgxpool.Pool
	if cfg.CatalogStore == "postgres" || cfg.OrderStore == "postgres" {
		pool, err = postgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)
		if err = postgres.EnsureSchema(ctx, pool); err != nil {
			return nil, err
		}
	}

	var restaurants repositories.RestaurantRepository = memory.NewRestaurantRepository()
	var items repositories.MenuItemRepository = memory.NewMenuItemRepository()
	if cfg.CatalogStore == "postgres" {
		restaurants = postgres.NewRestaurantRepository(pool)
		items = postgres.NewMenuItemRepository(pool)
	}
	if err = seedCatalog(ctx, cfg, restaurants, items); err != nil {
		return nil, err
	}
	a.catalog = catalog.New(restaurants, items)
	a.carts = cart.NewService(cart.NewStore(), a.catalog, cfg.Pricing)

	var orderRepo repositories.OrderRepository
	switch cfg.OrderStore {
	case "postgres":
		orderRepo = postgres.NewOrderRepository(pool)
	case "redis":
		client, cerr := redis.NewClient(ctx, cfg.Redis)
		if cerr != nil {
			return nil, cerr
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		orderRepo = redis.NewOrderRepository(client, cfg.Redis.OrderTTL)
	default:
		orderRepo = memory.NewOrderRepository()
	}

	schedule, err := tracking.NewSchedule(cfg.Tracking)
	if err != nil {
		return nil, err
	}

	dest, err := output.NewDestination(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating output destination: %w", err)
	}
	a.publisher = output.NewPublisher(dest)
	a.closers = append(a.closers, func() {
		if err := a.publisher.Close(); err != nil {
			log.Printf("error closing output: %v", err)
		}
	})

	opts := []orders.Option{
		orders.WithPublisher(a.publisher),
		orders.WithMetrics(a.metrics),
	}
	if cfg.Tracking.TickInterval > 0 {
		opts = append(opts, orders.WithTickInterval(cfg.Tracking.TickInterval))
	}
	a.orders = orders.NewService(orderRepo, schedule, opts...)

	log.Printf("app ready catalog_store=%s order_store=%s veg_mode=%t", cfg.CatalogStore, cfg.OrderStore, cfg.Preferences.VegMode)
	return a, nil
}

func seedCatalog(ctx context.Context, cfg *models.Config, restaurants repositories.RestaurantRepository, items repositories.MenuItemRepository) error {
	var extraRestaurants []*models.Restaurant
	var extraItems []*models.MenuItem
	if cfg.GeneratedRestaurants > 0 {
		extraRestaurants, extraItems = factories.Generate(cfg.GeneratedRestaurants, cfg.Seed)
	}
	seeded, err := catalog.Seed(ctx, restaurants, items, extraRestaurants, extraItems)
	if err != nil {
		return err
	}
	if seeded {
		log.Printf("catalog seeded restaurants=%d generated=%d", len(catalog.MockRestaurants())+len(extraRestaurants), len(extraRestaurants))
	}
	return nil
}

// Close releases connections in reverse order of creation.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
