package catalog

import (
	"github.com/chrisdamba/fooddash/internal/models"
	"github.com/shopspring/decimal"
)

func usd(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var categories = []models.Category{
	{ID: "1", Name: models.AllCategoryName, Image: "https://images.unsplash.com/photo-1504674900247-0877df9cc836?q=80&w=2070&auto=format&fit=crop", IsVeg: true},
	{ID: "2", Name: "Biryani", Image: "https://images.unsplash.com/photo-1563379091339-03b21ab4a4f8?q=80&w=2000&auto=format&fit=crop", IsVeg: false},
	{ID: "3", Name: "Chicken", Image: "https://images.unsplash.com/photo-1598515214211-89d3c73ae83b?q=80&w=2000&auto=format&fit=crop", IsVeg: false},
	{ID: "4", Name: "Mexican", Image: "https://images.unsplash.com/photo-1565299624946-b28f40a0ae38?q=80&w=1981&auto=format&fit=crop", IsVeg: true},
	{ID: "5", Name: "Bowl", Image: "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?q=80&w=1780&auto=format&fit=crop", IsVeg: true},
	{ID: "6", Name: "Pizza", Image: "https://images.unsplash.com/photo-1513104890138-7c749659a591?q=80&w=2070&auto=format&fit=crop", IsVeg: true},
}

var paymentMethods = []models.PaymentMethod{
	{ID: "p1", Name: "Apple Pay", Icon: "apple", Linked: true},
	{ID: "p2", Name: "Visa ending in 4242", Icon: "credit-card", Linked: true},
	{ID: "p3", Name: "PayPal", Icon: "paypal", Linked: true},
	{ID: "p4", Name: "Cash on Delivery", Icon: "cash", Linked: true},
}

var savedAddresses = []models.Address{
	{ID: "a1", Label: "Home", Address: "123 Broadway, Apt 4B, New York, NY 10001", Phone: "+1 917-555-0123", Distance: "0.5 mi"},
	{ID: "a2", Label: "Work", Address: "Empire State Building, 350 5th Ave, NY 10118", Phone: "+1 212-555-0199", Distance: "1.2 mi"},
}

// Restaurants without a dedicated detail page share these values.
const (
	defaultRatingCount  = "1K+"
	defaultAddress      = "Downtown, New York, NY"
	defaultOfferCount   = 2
	defaultFeaturedDish = "Special Dish"
	fallbackImage       = "https://images.unsplash.com/photo-1552566626-52f8b828add9?q=80&w=2070&auto=format&fit=crop"
)

var defaultHighlights = []string{"Popular", "Highly Rated"}

type feedRow struct {
	id, name, time, distance, offer, image string
	rating                                 float64
	tags                                   []string
	promoted, veg                          bool
}

var feed = []feedRow{
	{"101", "Pizza Hut", "30-35 mins", "2 mi", "50% OFF", "https://images.unsplash.com/photo-1604382354936-07c5d9983bd3?q=80&w=2070&auto=format&fit=crop", 4.0, []string{"Pizza", "Fast Food", "Italian"}, false, true},
	{"102", "Burger King", "15-20 mins", "0.8 mi", "Free Whopper", "https://images.unsplash.com/photo-1571091718767-18b5b1457add?q=80&w=2072&auto=format&fit=crop", 3.9, []string{"Burger", "American", "Chicken", "Fast Food"}, true, false},
	{"103", "Taco Bell", "20-25 mins", "1.5 mi", "", "https://images.unsplash.com/photo-1565299585323-38d6b0865b47?q=80&w=1960&auto=format&fit=crop", 4.2, []string{"Mexican", "Tacos", "Bowl"}, false, true},
	{"104", "Subway", "10-15 mins", "0.5 mi", "Buy 1 Get 1", "https://images.unsplash.com/photo-1626074353765-517a681e40be?q=80&w=1887&auto=format&fit=crop", 4.1, []string{"Sandwich", "Healthy", "Bowl"}, false, true},
	{"105", "Biryani By Kilo", "40-45 mins", "3 mi", "Flat 20% OFF", "https://images.unsplash.com/photo-1563379091339-03b21ab4a4f8?q=80&w=2000&auto=format&fit=crop", 4.4, []string{"Biryani", "North Indian", "Chicken"}, false, false},
	{"106", "Persian Darbar", "35-40 mins", "2.2 mi", "Flat 50% OFF", "https://images.unsplash.com/photo-1589302168068-964664d93dc0?q=80&w=1974&auto=format&fit=crop", 4.1, []string{"Biryani", "Mughlai", "Chicken"}, false, false},
	{"107", "Maiz Mexican Kitchen", "25-30 mins", "1.2 mi", "Flat $100 OFF", "https://images.unsplash.com/photo-1556760544-74068565f05c?q=80&w=1974&auto=format&fit=crop", 4.4, []string{"Mexican", "Bowl", "Healthy"}, false, true},
}

type detail struct {
	ratingCount, distance, address, time, offer, featuredDish string
	offerCount                                                int
	images, highlights, sections                              []string
}

var details = map[string]detail{
	"101": {
		ratingCount:  "5K+",
		distance:     "2.0 mi",
		address:      "123 Main St, New York, NY",
		time:         "30-35 mins",
		offer:        "50% OFF",
		offerCount:   3,
		featuredDish: "Pepperoni Feast",
		images: []string{
			"https://images.unsplash.com/photo-1604382354936-07c5d9983bd3?q=80&w=2070&auto=format&fit=crop",
			"https://images.unsplash.com/photo-1574071318508-1cdbab80d002?q=80&w=2069&auto=format&fit=crop",
		},
		highlights: []string{"Frequently reordered", "1 dish loved by Mike"},
		sections:   []string{"Recommended for you", "Veggie Delights"},
	},
	"107": {
		ratingCount:  "8.2K+",
		distance:     "1.4 km",
		address:      "Andheri Lokhandwala, Andheri West",
		time:         "25-30 mins",
		offer:        "Free delivery above $15",
		offerCount:   5,
		featuredDish: "Fajita Black Bean Burrito",
		images: []string{
			"https://images.unsplash.com/photo-1556760544-74068565f05c?q=80&w=1974&auto=format&fit=crop",
			"https://images.unsplash.com/photo-1626700051175-6818013e1d4f?q=80&w=1964&auto=format&fit=crop",
		},
		highlights: []string{"1 dish loved by nicole", "Frequently reordered"},
		sections:   []string{"Recommended for you", "Burrito Bowls", "Sides & Extras"},
	},
}

// MockRestaurants returns fresh copies of the static restaurant table.
func MockRestaurants() []*models.Restaurant {
	restaurants := make([]*models.Restaurant, 0, len(feed))
	for _, row := range feed {
		r := &models.Restaurant{
			ID:           row.id,
			Name:         row.name,
			Rating:       row.rating,
			RatingCount:  defaultRatingCount,
			DeliveryTime: row.time,
			Distance:     row.distance,
			Offer:        row.offer,
			OfferCount:   defaultOfferCount,
			Address:      defaultAddress,
			Tags:         append([]string(nil), row.tags...),
			Highlights:   append([]string(nil), defaultHighlights...),
			FeaturedDish: defaultFeaturedDish,
			Images:       []string{row.image, fallbackImage},
			Promoted:     row.promoted,
			IsVeg:        row.veg,
		}
		if d, ok := details[row.id]; ok {
			r.RatingCount = d.ratingCount
			r.Distance = d.distance
			r.Address = d.address
			r.DeliveryTime = d.time
			r.Offer = d.offer
			r.OfferCount = d.offerCount
			r.FeaturedDish = d.featuredDish
			r.Images = append([]string(nil), d.images...)
			r.Highlights = append([]string(nil), d.highlights...)
			r.MenuSections = append([]string(nil), d.sections...)
		}
		restaurants = append(restaurants, r)
	}
	return restaurants
}

type itemRow struct {
	id, section, name, price, desc, image string
	veg, customizable, bestseller         bool
	groups                                []models.CustomizationGroup
}

func option(id, name, price string, t models.FoodType) models.Option {
	return models.Option{ID: id, Name: name, Price: usd(price), Type: t}
}

var menus = map[string][]itemRow{
	"101": {
		{"m1", "Recommended for you", "Pepperoni Pizza", "18.00", "Classic pepperoni with mozzarella.", "https://images.unsplash.com/photo-1628840042765-356cda07504e?q=80&w=1780&auto=format&fit=crop", false, true, true,
			[]models.CustomizationGroup{
				{ID: "cg1", Title: "Choose Crust", Type: models.GroupTypeSingle, Required: true, Options: []models.Option{
					option("o1", "Pan Pizza", "0", models.FoodTypeVeg),
					option("o2", "Stuffed Crust", "2.50", models.FoodTypeVeg),
					option("o3", "Thin Crust", "0", models.FoodTypeVeg),
				}},
				{ID: "cg2", Title: "Add Extra Cheese", Type: models.GroupTypeMultiple, Options: []models.Option{
					option("o4", "Mozzarella", "1.50", models.FoodTypeVeg),
					option("o5", "Cheddar", "1.50", models.FoodTypeVeg),
				}},
			}},
		{"m2", "Recommended for you", "Margherita", "15.00", "Fresh basil, mozzarella, and tomato sauce.", "https://images.unsplash.com/photo-1574071318508-1cdbab80d002?q=80&w=2069&auto=format&fit=crop", true, true, false, nil},
		{"m3", "Veggie Delights", "Veggie Supreme", "19.50", "Loaded with bell peppers, onions, and olives.", "https://images.unsplash.com/photo-1513104890138-7c749659a591?q=80&w=2070&auto=format&fit=crop", true, false, false, nil},
		{"m4", "Veggie Delights", "Cheese Sticks", "8.50", "Garlic butter breadsticks with cheese.", "https://images.unsplash.com/photo-1548340748-432e07026f9d?q=80&w=2070&auto=format&fit=crop", true, false, false, nil},
	},
	"107": {
		{"m1", "Recommended for you", "Chipotle Chicken Burrito Bowl", "12.50", "Serves 1 | Chipotle chicken, choice of brown/white rice, beans, salsa.", "https://images.unsplash.com/photo-1626700051175-6818013e1d4f?q=80&w=1964&auto=format&fit=crop", false, true, true,
			[]models.CustomizationGroup{
				{ID: "cg1", Title: "Choice of Rice", Type: models.GroupTypeSingle, Required: true, Options: []models.Option{
					option("o1", "Cilantro Lime Rice (White)", "0", models.FoodTypeVeg),
					option("o2", "Brown Rice", "0", models.FoodTypeVeg),
				}},
				{ID: "cg2", Title: "Choice of Beans", Type: models.GroupTypeSingle, Required: true, Options: []models.Option{
					option("o3", "Black Beans", "0", models.FoodTypeVeg),
					option("o4", "Pinto Beans", "0", models.FoodTypeVeg),
				}},
				{ID: "cg3", Title: "Add Extras", Type: models.GroupTypeMultiple, Options: []models.Option{
					option("o5", "Guacamole", "2.50", models.FoodTypeVeg),
					option("o6", "Sour Cream", "1.00", models.FoodTypeVeg),
					option("o7", "Extra Chicken", "3.50", models.FoodTypeNonVeg),
				}},
			}},
		{"m2", "Recommended for you", "Nachos Supreme", "10.50", "Chips topped with cheese, jalapenos, and sour cream.", "https://images.unsplash.com/photo-1513456852971-30c0b8199d4d?q=80&w=1935&auto=format&fit=crop", true, true, true, nil},
		{"m3", "Burrito Bowls", "Veggie Bean Bowl", "11.00", "Healthy mix of beans, corn, and avocado.", "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?q=80&w=1780&auto=format&fit=crop", true, true, false, nil},
		{"m4", "Burrito Bowls", "Spicy Beef Bowl", "13.50", "Spicy ground beef with rice and veggies.", "https://images.unsplash.com/photo-1599974579688-8dbdd335c77f?q=80&w=1988&auto=format&fit=crop", false, true, false, nil},
		{"m5", "Sides & Extras", "Guacamole", "4.00", "Freshly made guacamole.", "https://images.unsplash.com/photo-1604542031651-522b9a8cf18d?q=80&w=2000&auto=format&fit=crop", true, false, false, nil},
		{"m6", "Sides & Extras", "Chips & Salsa", "3.50", "Crispy corn chips with house salsa.", "https://images.unsplash.com/photo-1623689046286-01d812cc8ba7?q=80&w=2070&auto=format&fit=crop", true, false, false, nil},
	},
}

var fallbackMenu = []itemRow{
	{"m1", "Recommended", "Signature Dish", "15.99", "Chef's special creation.", "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?q=80&w=1780&auto=format&fit=crop", true, true, true, nil},
	{"m2", "Recommended", "Classic Meal", "12.99", "A classic favorite.", "https://images.unsplash.com/photo-1565299624946-b28f40a0ae38?q=80&w=1981&auto=format&fit=crop", false, false, false, nil},
	{"m3", "Mains", "Family Platter", "25.99", "Great for sharing.", "https://images.unsplash.com/photo-1555939594-58d7cb561ad1?q=80&w=1974&auto=format&fit=crop", false, true, false, nil},
}

func buildItems(restaurantID string, rows []itemRow) []*models.MenuItem {
	items := make([]*models.MenuItem, len(rows))
	for i, row := range rows {
		items[i] = &models.MenuItem{
			ID:                  row.id,
			RestaurantID:        restaurantID,
			Section:             row.section,
			Position:            i,
			Name:                row.name,
			Description:         row.desc,
			Price:               usd(row.price),
			Image:               row.image,
			IsVeg:               row.veg,
			Customizable:        row.customizable,
			IsBestseller:        row.bestseller,
			CustomizationGroups: row.groups,
		}
	}
	return items
}

// MockMenuItems returns the dishes of every restaurant that has a dedicated menu.
func MockMenuItems() []*models.MenuItem {
	var items []*models.MenuItem
	for _, row := range feed {
		if rows, ok := menus[row.id]; ok {
			items = append(items, buildItems(row.id, rows)...)
		}
	}
	return items
}

// FallbackMenu is served for restaurants that have no stored dishes.
func FallbackMenu(restaurantID string) []*models.MenuItem {
	return buildItems(restaurantID, fallbackMenu)
}
