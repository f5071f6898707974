package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/chrisdamba/fooddash/internal/models"
	"github.com/chrisdamba/fooddash/internal/repositories"
)

type RestaurantRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*models.Restaurant
}

func NewRestaurantRepository() *RestaurantRepository {
	return &RestaurantRepository{byID: make(map[string]*models.Restaurant)}
}

func (r *RestaurantRepository) BulkCreate(ctx context.Context, restaurants []*models.Restaurant) error {
	for _, restaurant := range restaurants {
		if err := r.Create(ctx, restaurant); err != nil {
			return err
		}
	}
	return nil
}

func (r *RestaurantRepository) Create(_ context.Context, restaurant *models.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[restaurant.ID]; exists {
		return fmt.Errorf("restaurant %s already exists", restaurant.ID)
	}
	r.order = append(r.order, restaurant.ID)
	r.byID[restaurant.ID] = restaurant
	return nil
}

func (r *RestaurantRepository) GetAll(_ context.Context) ([]*models.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	restaurants := make([]*models.Restaurant, 0, len(r.order))
	for _, id := range r.order {
		restaurants = append(restaurants, r.byID[id])
	}
	return restaurants, nil
}

func (r *RestaurantRepository) GetByID(_ context.Context, id string) (*models.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	restaurant, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return restaurant, nil
}

func (r *RestaurantRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order), nil
}

func (r *RestaurantRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = nil
	r.byID = make(map[string]*models.Restaurant)
	return nil
}
