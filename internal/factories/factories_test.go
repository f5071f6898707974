package factories

import (
	"testing"

	"github.com/chrisdamba/fooddash/internal/models"
	"github.com/chrisdamba/fooddash/internal/pricing"
)

func TestGenerate(t *testing.T) {
	restaurants, items := Generate(20, 7)
	if len(restaurants) != 20 {
		t.Fatalf("got %d restaurants, want 20", len(restaurants))
	}

	byRestaurant := make(map[string][]*models.MenuItem)
	for _, item := range items {
		byRestaurant[item.RestaurantID] = append(byRestaurant[item.RestaurantID], item)
	}

	names := make(map[string]bool)
	for _, r := range restaurants {
		if names[r.Name] {
			t.Fatalf("duplicate restaurant name %q", r.Name)
		}
		names[r.Name] = true
		if len(r.Tags) == 0 {
			t.Fatalf("restaurant %s has no tags", r.ID)
		}
		menu := byRestaurant[r.ID]
		if len(menu) == 0 {
			t.Fatalf("restaurant %s has no menu", r.ID)
		}
		for _, item := range menu {
			if r.IsVeg && !item.IsVeg {
				t.Fatalf("veg restaurant %s serves non-veg %s", r.Name, item.Name)
			}
			if !item.Price.IsPositive() {
				t.Fatalf("item %s has price %s", item.Name, item.Price)
			}
			if item.Customizable {
				if err := pricing.Validate(item.CustomizationGroups, pricing.NewSelection(item.CustomizationGroups).Selections()); err != nil {
					t.Fatalf("default selection of %s is invalid: %v", item.Name, err)
				}
			}
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, _ := Generate(5, 99)
	b, _ := Generate(5, 99)
	for i := range a {
		if a[i].Name != b[i].Name || a[i].DeliveryTime != b[i].DeliveryTime {
			t.Fatalf("restaurant %d differs: %q vs %q", i, a[i].Name, b[i].Name)
		}
	}
}
