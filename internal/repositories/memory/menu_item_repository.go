package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/chrisdamba/fooddash/internal/models"
	"github.com/chrisdamba/fooddash/internal/repositories"
)

type menuItemKey struct {
	restaurantID string
	itemID       string
}

type MenuItemRepository struct {
	mu    sync.RWMutex
	seq   int
	items map[menuItemKey]*storedMenuItem
}

type storedMenuItem struct {
	seq  int
	item *models.MenuItem
}

func NewMenuItemRepository() *MenuItemRepository {
	return &MenuItemRepository{items: make(map[menuItemKey]*storedMenuItem)}
}

func (r *MenuItemRepository) BulkCreate(ctx context.Context, menuItems []*models.MenuItem) error {
	for _, item := range menuItems {
		if err := r.Create(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (r *MenuItemRepository) Create(_ context.Context, menuItem *models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := menuItemKey{menuItem.RestaurantID, menuItem.ID}
	if _, exists := r.items[key]; exists {
		return fmt.Errorf("menu item %s/%s already exists", menuItem.RestaurantID, menuItem.ID)
	}
	r.seq++
	r.items[key] = &storedMenuItem{seq: r.seq, item: menuItem}
	return nil
}

func (r *MenuItemRepository) GetAll(_ context.Context) ([]*models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(*models.MenuItem) bool { return true }), nil
}

// GetByRestaurantID returns the items of one restaurant ordered by section position.
func (r *MenuItemRepository) GetByRestaurantID(_ context.Context, restaurantID string) ([]*models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := r.collect(func(item *models.MenuItem) bool { return item.RestaurantID == restaurantID })
	sort.SliceStable(items, func(i, j int) bool { return items[i].Position < items[j].Position })
	return items, nil
}

func (r *MenuItemRepository) GetByID(_ context.Context, restaurantID, itemID string) (*models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.items[menuItemKey{restaurantID, itemID}]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return stored.item, nil
}

func (r *MenuItemRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

func (r *MenuItemRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make(map[menuItemKey]*storedMenuItem)
	return nil
}

// collect returns matching items in insertion order. Callers hold the lock.
func (r *MenuItemRepository) collect(match func(*models.MenuItem) bool) []*models.MenuItem {
	stored := make([]*storedMenuItem, 0, len(r.items))
	for _, s := range r.items {
		if match(s.item) {
			stored = append(stored, s)
		}
	}
	sort.Slice(stored, func(i, j int) bool { return stored[i].seq < stored[j].seq })
	items := make([]*models.MenuItem, len(stored))
	for i, s := range stored {
		items[i] = s.item
	}
	return items
}
