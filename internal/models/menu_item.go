package models

import "github.com/shopspring/decimal"

type MenuItem struct {
	ID                  string               `json:"id"`
	RestaurantID        string               `json:"restaurant_id"`
	Section             string               `json:"section"`
	Position            int                  `json:"position"`
	Name                string               `json:"name"`
	Description         string               `json:"description"`
	Price               decimal.Decimal      `json:"price"`
	Image               string               `json:"image"`
	IsVeg               bool                 `json:"is_veg"`
	Customizable        bool                 `json:"customizable"`
	IsBestseller        bool                 `json:"is_bestseller"`
	CustomizationGroups []CustomizationGroup `json:"customization_groups,omitempty"`
}

// CustomizationGroup is a named set of related options attached to a menu item,
// e.g. "Choose Crust".
type CustomizationGroup struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Type     GroupType `json:"type"`
	Required bool      `json:"required"`
	Options  []Option  `json:"options"`
}

type Option struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"` // delta added to the item base price
	Type  FoodType        `json:"type"`
}

// Group returns the customization group with the given id.
func (m *MenuItem) Group(id string) (*CustomizationGroup, bool) {
	for i := range m.CustomizationGroups {
		if m.CustomizationGroups[i].ID == id {
			return &m.CustomizationGroups[i], true
		}
	}
	return nil, false
}

// Option returns the option with the given id.
func (g *CustomizationGroup) Option(id string) (*Option, bool) {
	for i := range g.Options {
		if g.Options[i].ID == id {
			return &g.Options[i], true
		}
	}
	return nil, false
}
