package factories

import "github.com/chrisdamba/fooddash/internal/models"

// Generate creates n restaurants with their menus. The same seed yields the same
// names, prices and menus; ids are always fresh.
func Generate(n int, seed int64) ([]*models.Restaurant, []*models.MenuItem) {
	rf := NewRestaurantFactory(seed)
	mf := NewMenuItemFactory(seed + 1)

	restaurants := make([]*models.Restaurant, 0, n)
	var items []*models.MenuItem
	for i := 0; i < n; i++ {
		restaurant := rf.CreateRestaurant()
		restaurants = append(restaurants, restaurant)
		items = append(items, mf.CreateMenu(restaurant)...)
	}
	return restaurants, items
}
