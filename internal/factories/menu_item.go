package factories

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/jaswdr/faker"
	"github.com/shopspring/decimal"

	"github.com/chrisdamba/fooddash/internal/models"
)

var menuSections = []string{"Recommended for you", "Mains", "Sides & Extras"}

var dishes = map[string][]string{
	"Pizza":         {"Margherita", "Pepperoni", "Hawaiian", "Veggie Supreme"},
	"Burgers":       {"Classic Cheeseburger", "Veggie Burger", "BBQ Bacon Burger", "Mushroom Swiss Burger"},
	"Bowl":          {"Poke Bowl", "Burrito Bowl", "Buddha Bowl", "Teriyaki Bowl"},
	"Biryani":       {"Chicken Biryani", "Mutton Biryani", "Egg Biryani", "Veg Dum Biryani"},
	"Chicken":       {"Grilled Chicken", "Chicken Wings", "Chicken Tenders", "Roast Chicken"},
	"Italian":       {"Margherita Pizza", "Spaghetti Carbonara", "Lasagna", "Tiramisu"},
	"Indian":        {"Chicken Tikka Masala", "Vegetable Curry", "Naan Bread", "Paneer Butter Masala"},
	"American":      {"Cheeseburger", "Hot Dog", "BBQ Ribs", "Apple Pie"},
	"Japanese":      {"Sushi Roll", "Ramen", "Tempura", "Miso Soup"},
	"Mexican":       {"Tacos", "Burrito", "Guacamole", "Quesadilla"},
	"Chinese":       {"Kung Pao Chicken", "Fried Rice", "Dumplings", "Mapo Tofu"},
	"Thai":          {"Pad Thai", "Green Curry", "Tom Yum Soup", "Mango Sticky Rice"},
	"Greek":         {"Gyros", "Greek Salad", "Moussaka", "Baklava"},
	"French":        {"Coq au Vin", "Beef Bourguignon", "Ratatouille", "Crème Brûlée"},
	"Mediterranean": {"Falafel", "Hummus", "Tabbouleh", "Grilled Halloumi"},
}

var sides = []string{"Fries", "Garlic Bread", "Side Salad", "Onion Rings", "Coleslaw"}

var nonVegWords = []string{"Chicken", "Beef", "Pepperoni", "Bacon", "Mutton", "Egg", "Ribs", "Hot Dog", "Gyros", "Sushi", "Coq", "Moussaka", "Poke", "Tenders", "Wings"}

type MenuItemFactory struct {
	fake faker.Faker
	rand *rand.Rand
}

func NewMenuItemFactory(seed int64) *MenuItemFactory {
	return &MenuItemFactory{
		fake: faker.NewWithSeed(rand.NewSource(seed)),
		rand: rand.New(rand.NewSource(seed)),
	}
}

// CreateMenu builds a three-section menu for restaurant. Ids are local to the
// restaurant, m1 onwards, like the static menus.
func (mf *MenuItemFactory) CreateMenu(restaurant *models.Restaurant) []*models.MenuItem {
	var items []*models.MenuItem
	add := func(section, name string, min, max int) {
		isVeg := !containsAny(name, nonVegWords)
		if restaurant.IsVeg && !isVeg {
			return
		}
		item := &models.MenuItem{
			ID:           fmt.Sprintf("m%d", len(items)+1),
			RestaurantID: restaurant.ID,
			Section:      section,
			Position:     len(items),
			Name:         name,
			Description:  mf.fake.Lorem().Sentence(8),
			Price:        decimal.NewFromFloat(mf.fake.Float64(2, min, max)).Round(2),
			Image:        mf.fake.Internet().URL(),
			IsVeg:        isVeg,
			IsBestseller: mf.rand.Intn(4) == 0,
		}
		if mf.rand.Intn(2) == 0 {
			item.CustomizationGroups = mf.createGroups(restaurant.IsVeg)
			item.Customizable = true
		}
		items = append(items, item)
	}

	for i, cuisine := range restaurant.Tags {
		names := dishes[cuisine]
		if len(names) == 0 {
			continue
		}
		section := menuSections[1]
		if i == 0 {
			section = menuSections[0]
		}
		for _, j := range mf.rand.Perm(len(names))[:2] {
			add(section, names[j], 8, 25)
		}
	}
	add(menuSections[2], sides[mf.rand.Intn(len(sides))], 2, 7)
	return items
}

func (mf *MenuItemFactory) createGroups(vegOnly bool) []models.CustomizationGroup {
	groups := []models.CustomizationGroup{
		{
			ID:       "cg1",
			Title:    "Choose Size",
			Type:     models.GroupTypeSingle,
			Required: true,
			Options: []models.Option{
				{ID: "o1", Name: "Regular", Price: decimal.Zero, Type: models.FoodTypeVeg},
				{ID: "o2", Name: "Large", Price: decimal.NewFromFloat(mf.fake.Float64(2, 1, 4)).Round(2), Type: models.FoodTypeVeg},
			},
		},
		{
			ID:    "cg2",
			Title: "Add Extras",
			Type:  models.GroupTypeMultiple,
			Options: []models.Option{
				{ID: "o3", Name: "Extra Cheese", Price: decimal.RequireFromString("1.50"), Type: models.FoodTypeVeg},
				{ID: "o4", Name: "Extra Sauce", Price: decimal.RequireFromString("0.75"), Type: models.FoodTypeVeg},
			},
		},
	}
	if !vegOnly {
		groups[1].Options = append(groups[1].Options,
			models.Option{ID: "o5", Name: "Add Chicken", Price: decimal.RequireFromString("3.50"), Type: models.FoodTypeNonVeg})
	}
	return groups
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
