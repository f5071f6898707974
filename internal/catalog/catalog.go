// Package catalog serves restaurants, categories and menus to the rest of the app.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chrisdamba/fooddash/internal/models"
	"github.com/chrisdamba/fooddash/internal/repositories"
	"github.com/shopspring/decimal"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrItemNotFound       = errors.New("menu item not found")
	ErrPaymentNotFound    = errors.New("payment method not found")
	ErrAddressNotFound    = errors.New("address not found")
)

type Catalog struct {
	restaurants repositories.RestaurantRepository
	items       repositories.MenuItemRepository
}

func New(restaurants repositories.RestaurantRepository, items repositories.MenuItemRepository) *Catalog {
	return &Catalog{restaurants: restaurants, items: items}
}

// Seed loads the static tables, plus any extra generated records, when the
// restaurant store is empty. It reports whether anything was written.
func Seed(ctx context.Context, restaurants repositories.RestaurantRepository, items repositories.MenuItemRepository,
	extraRestaurants []*models.Restaurant, extraItems []*models.MenuItem) (bool, error) {
	count, err := restaurants.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count restaurants: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	allRestaurants := append(MockRestaurants(), extraRestaurants...)
	allItems := append(MockMenuItems(), extraItems...)
	if err := restaurants.BulkCreate(ctx, allRestaurants); err != nil {
		return false, fmt.Errorf("seed restaurants: %w", err)
	}
	if err := items.BulkCreate(ctx, allItems); err != nil {
		return false, fmt.Errorf("seed menu items: %w", err)
	}
	return true, nil
}

// FeedQuery filters the restaurant feed. An empty Category or "All" matches everything.
type FeedQuery struct {
	Category    string
	Preferences models.Preferences
}

// Categories returns the cuisine chips. Veg mode hides non-veg categories.
func (c *Catalog) Categories(prefs models.Preferences) []models.Category {
	result := make([]models.Category, 0, len(categories))
	for _, category := range categories {
		if prefs.VegMode && !category.IsVeg {
			continue
		}
		result = append(result, category)
	}
	return result
}

func (c *Catalog) Feed(ctx context.Context, query FeedQuery) ([]*models.Restaurant, error) {
	all, err := c.restaurants.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}

	filterCategory := query.Category != "" && !strings.EqualFold(query.Category, models.AllCategoryName)
	result := make([]*models.Restaurant, 0, len(all))
	for _, restaurant := range all {
		if filterCategory && !hasTag(restaurant.Tags, query.Category) {
			continue
		}
		if query.Preferences.VegMode && !restaurant.IsVeg {
			continue
		}
		result = append(result, restaurant)
	}
	return result, nil
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if strings.EqualFold(tag, want) {
			return true
		}
	}
	return false
}

func (c *Catalog) Restaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	restaurant, err := c.restaurants.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRestaurantNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get restaurant %s: %w", id, err)
	}
	return restaurant, nil
}

// restaurantItems returns the stored dishes of a restaurant, or the fallback menu when
// it has none.
func (c *Catalog) restaurantItems(ctx context.Context, restaurantID string) ([]*models.MenuItem, error) {
	items, err := c.items.GetByRestaurantID(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list menu of %s: %w", restaurantID, err)
	}
	if len(items) == 0 {
		return FallbackMenu(restaurantID), nil
	}
	return items, nil
}

// Menu groups a restaurant's dishes into sections in display order. In veg mode
// non-veg dishes are dropped, and so are sections left empty.
func (c *Catalog) Menu(ctx context.Context, restaurantID string, prefs models.Preferences) ([]models.MenuSection, error) {
	restaurant, err := c.Restaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	items, err := c.restaurantItems(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var sections []models.MenuSection
	addSection := func(title string) {
		if _, ok := index[title]; !ok {
			index[title] = len(sections)
			sections = append(sections, models.MenuSection{Title: title})
		}
	}
	for _, title := range restaurant.MenuSections {
		addSection(title)
	}
	for _, item := range items {
		addSection(item.Section)
		if prefs.VegMode && !item.IsVeg {
			continue
		}
		i := index[item.Section]
		sections[i].Items = append(sections[i].Items, item)
	}

	result := sections[:0]
	for _, section := range sections {
		if len(section.Items) > 0 {
			result = append(result, section)
		}
	}
	return result, nil
}

func (c *Catalog) Item(ctx context.Context, restaurantID, itemID string) (*models.MenuItem, error) {
	if _, err := c.Restaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	items, err := c.restaurantItems(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == itemID {
			return item, nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrItemNotFound, restaurantID, itemID)
}

// ItemsUnder lists stored dishes priced at or below limit.
func (c *Catalog) ItemsUnder(ctx context.Context, limit decimal.Decimal, prefs models.Preferences) ([]*models.MenuItem, error) {
	all, err := c.items.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	var result []*models.MenuItem
	for _, item := range all {
		if item.Price.GreaterThan(limit) {
			continue
		}
		if prefs.VegMode && !item.IsVeg {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

func (c *Catalog) PaymentMethods() []models.PaymentMethod {
	return append([]models.PaymentMethod(nil), paymentMethods...)
}

func (c *Catalog) PaymentMethod(id string) (models.PaymentMethod, error) {
	for _, method := range paymentMethods {
		if method.ID == id {
			return method, nil
		}
	}
	return models.PaymentMethod{}, fmt.Errorf("%w: %s", ErrPaymentNotFound, id)
}

func (c *Catalog) Addresses() []models.Address {
	return append([]models.Address(nil), savedAddresses...)
}

// Address looks up a saved address. An empty id selects the first one.
func (c *Catalog) Address(id string) (models.Address, error) {
	if id == "" {
		return savedAddresses[0], nil
	}
	for _, address := range savedAddresses {
		if address.ID == id {
			return address, nil
		}
	}
	return models.Address{}, fmt.Errorf("%w: %s", ErrAddressNotFound, id)
}
