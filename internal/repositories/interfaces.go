package repositories

import (
	"context"
	"errors"

	"github.com/chrisdamba/fooddash/internal/models"
)

// ErrNotFound is returned by every repository when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

type RestaurantRepository interface {
	BulkCreate(ctx context.Context, restaurants []*models.Restaurant) error
	Create(ctx context.Context, restaurant *models.Restaurant) error
	// GetAll returns restaurants in insertion order.
	GetAll(ctx context.Context) ([]*models.Restaurant, error)
	GetByID(ctx context.Context, id string) (*models.Restaurant, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

// MenuItemRepository stores dishes. Item ids are only unique within a restaurant.
type MenuItemRepository interface {
	BulkCreate(ctx context.Context, menuItems []*models.MenuItem) error
	Create(ctx context.Context, menuItem *models.MenuItem) error
	GetAll(ctx context.Context) ([]*models.MenuItem, error)
	GetByRestaurantID(ctx context.Context, restaurantID string) ([]*models.MenuItem, error)
	GetByID(ctx context.Context, restaurantID, itemID string) (*models.MenuItem, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
