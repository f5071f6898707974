package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chrisdamba/fooddash/internal/models"
	"github.com/chrisdamba/fooddash/internal/repositories"
)

type MenuItemRepository struct {
	pool *pgxpool.Pool
}

func NewMenuItemRepository(pool *pgxpool.Pool) *MenuItemRepository {
	return &MenuItemRepository{pool: pool}
}

func menuItemValues(item *models.MenuItem) ([]interface{}, error) {
	groups := item.CustomizationGroups
	if groups == nil {
		groups = []models.CustomizationGroup{}
	}
	groupsJSON, err := json.Marshal(groups)
	if err != nil {
		return nil, fmt.Errorf("encode customization groups of %s: %w", item.ID, err)
	}
	return []interface{}{
		item.RestaurantID,
		item.ID,
		item.Section,
		item.Position,
		item.Name,
		item.Description,
		toNumeric(item.Price),
		item.Image,
		item.IsVeg,
		item.Customizable,
		item.IsBestseller,
		groupsJSON,
	}, nil
}

func (r *MenuItemRepository) BulkCreate(ctx context.Context, menuItems []*models.MenuItem) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"menu_items"},
		[]string{
			"restaurant_id", "id", "section", "position", "name", "description",
			"price", "image", "is_veg", "customizable", "is_bestseller",
			"customization_groups",
		},
		pgx.CopyFromSlice(len(menuItems), func(i int) ([]interface{}, error) {
			return menuItemValues(menuItems[i])
		}),
	)
	return err
}

func (r *MenuItemRepository) Create(ctx context.Context, menuItem *models.MenuItem) error {
	values, err := menuItemValues(menuItem)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO menu_items (
            restaurant_id, id, section, position, name, description, price,
            image, is_veg, customizable, is_bestseller, customization_groups
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
        )
    `
	_, err = r.pool.Exec(ctx, query, values...)
	return err
}

const selectMenuItems = `
    SELECT
        restaurant_id, id, section, position, name, description, price,
        image, is_veg, customizable, is_bestseller, customization_groups
    FROM menu_items
`

func scanMenuItem(row pgx.Row) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	var price pgtype.Numeric
	var groupsJSON []byte
	err := row.Scan(
		&item.RestaurantID,
		&item.ID,
		&item.Section,
		&item.Position,
		&item.Name,
		&item.Description,
		&price,
		&item.Image,
		&item.IsVeg,
		&item.Customizable,
		&item.IsBestseller,
		&groupsJSON,
	)
	if err != nil {
		return nil, err
	}
	item.Price = fromNumeric(price)
	if err := json.Unmarshal(groupsJSON, &item.CustomizationGroups); err != nil {
		return nil, fmt.Errorf("decode customization groups of %s: %w", item.ID, err)
	}
	if len(item.CustomizationGroups) == 0 {
		item.CustomizationGroups = nil
	}
	return item, nil
}

func (r *MenuItemRepository) query(ctx context.Context, sql string, args ...interface{}) ([]*models.MenuItem, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *MenuItemRepository) GetAll(ctx context.Context) ([]*models.MenuItem, error) {
	return r.query(ctx, selectMenuItems+" ORDER BY created_at, restaurant_id, position")
}

func (r *MenuItemRepository) GetByRestaurantID(ctx context.Context, restaurantID string) ([]*models.MenuItem, error) {
	return r.query(ctx, selectMenuItems+" WHERE restaurant_id = $1 ORDER BY position", restaurantID)
}

func (r *MenuItemRepository) GetByID(ctx context.Context, restaurantID, itemID string) (*models.MenuItem, error) {
	item, err := scanMenuItem(r.pool.QueryRow(ctx, selectMenuItems+" WHERE restaurant_id = $1 AND id = $2", restaurantID, itemID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	return item, err
}

func (r *MenuItemRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM menu_items").Scan(&count)
	return count, err
}

func (r *MenuItemRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM menu_items")
	return err
}
