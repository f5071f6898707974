package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chrisdamba/fooddash/internal/models"
	"github.com/chrisdamba/fooddash/internal/repositories"
)

type RestaurantRepository struct {
	pool *pgxpool.Pool
}

func NewRestaurantRepository(pool *pgxpool.Pool) *RestaurantRepository {
	return &RestaurantRepository{pool: pool}
}

var restaurantColumns = []string{
	"id", "name", "rating", "rating_count", "delivery_time", "distance", "offer",
	"offer_count", "address", "tags", "highlights", "featured_dish", "images",
	"promoted", "is_veg", "menu_sections",
}

func restaurantValues(r *models.Restaurant) []interface{} {
	return []interface{}{
		r.ID,
		r.Name,
		r.Rating,
		r.RatingCount,
		r.DeliveryTime,
		r.Distance,
		r.Offer,
		r.OfferCount,
		r.Address,
		nonNil(r.Tags),
		nonNil(r.Highlights),
		r.FeaturedDish,
		nonNil(r.Images),
		r.Promoted,
		r.IsVeg,
		nonNil(r.MenuSections),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// BulkCreate loads restaurants with COPY. The insertion order is kept as the feed order.
func (r *RestaurantRepository) BulkCreate(ctx context.Context, restaurants []*models.Restaurant) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"restaurants"},
		restaurantColumns,
		pgx.CopyFromSlice(len(restaurants), func(i int) ([]interface{}, error) {
			return restaurantValues(restaurants[i]), nil
		}),
	)
	return err
}

func (r *RestaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	query := `
        INSERT INTO restaurants (
            id, name, rating, rating_count, delivery_time, distance, offer,
            offer_count, address, tags, highlights, featured_dish, images,
            promoted, is_veg, menu_sections
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
        )
    `
	_, err := r.pool.Exec(ctx, query, restaurantValues(restaurant)...)
	return err
}

const selectRestaurants = `
    SELECT
        id, name, rating, rating_count, delivery_time, distance, offer,
        offer_count, address, tags, highlights, featured_dish, images,
        promoted, is_veg, menu_sections
    FROM restaurants
`

func scanRestaurant(row pgx.Row) (*models.Restaurant, error) {
	restaurant := &models.Restaurant{}
	err := row.Scan(
		&restaurant.ID,
		&restaurant.Name,
		&restaurant.Rating,
		&restaurant.RatingCount,
		&restaurant.DeliveryTime,
		&restaurant.Distance,
		&restaurant.Offer,
		&restaurant.OfferCount,
		&restaurant.Address,
		&restaurant.Tags,
		&restaurant.Highlights,
		&restaurant.FeaturedDish,
		&restaurant.Images,
		&restaurant.Promoted,
		&restaurant.IsVeg,
		&restaurant.MenuSections,
	)
	return restaurant, err
}

func (r *RestaurantRepository) GetAll(ctx context.Context) ([]*models.Restaurant, error) {
	rows, err := r.pool.Query(ctx, selectRestaurants+" ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []*models.Restaurant
	for rows.Next() {
		restaurant, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, rows.Err()
}

func (r *RestaurantRepository) GetByID(ctx context.Context, id string) (*models.Restaurant, error) {
	restaurant, err := scanRestaurant(r.pool.QueryRow(ctx, selectRestaurants+" WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	return restaurant, err
}

func (r *RestaurantRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM restaurants").Scan(&count)
	return count, err
}

func (r *RestaurantRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM restaurants")
	return err
}
