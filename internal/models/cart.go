package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartEntry keeps the unit price resolved at add time; later menu changes do not
// reprice it.
type CartEntry struct {
	ID            string              `json:"id"`
	RestaurantID  string              `json:"restaurant_id"`
	ItemID        string              `json:"item_id"`
	Name          string              `json:"name"`
	IsVeg         bool                `json:"is_veg"`
	Quantity      int                 `json:"quantity"`
	UnitPrice     decimal.Decimal     `json:"unit_price"`
	Selections    map[string][]string `json:"selections,omitempty"`
	Customization string              `json:"customization"`
}

func (e CartEntry) LineTotal() decimal.Decimal {
	return e.UnitPrice.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

type Bill struct {
	ItemTotal   decimal.Decimal `json:"item_total"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	PlatformFee decimal.Decimal `json:"platform_fee"`
	Tax         decimal.Decimal `json:"tax"`
	Discount    decimal.Decimal `json:"discount"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
}

func (e CartEntry) Clone() CartEntry {
	if e.Selections == nil {
		return e
	}
	selections := make(map[string][]string, len(e.Selections))
	for group, ids := range e.Selections {
		selections[group] = append([]string(nil), ids...)
	}
	e.Selections = selections
	return e
}

// Cart holds entries from a single restaurant until checkout.
type Cart struct {
	ID           string      `json:"id"`
	RestaurantID string      `json:"restaurant_id,omitempty"`
	Entries      []CartEntry `json:"entries"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (c *Cart) Clone() *Cart {
	out := *c
	out.Entries = make([]CartEntry, len(c.Entries))
	for i, entry := range c.Entries {
		out.Entries[i] = entry.Clone()
	}
	return &out
}

// ItemCount is the number of units across all entries.
func (c *Cart) ItemCount() int {
	n := 0
	for _, entry := range c.Entries {
		n += entry.Quantity
	}
	return n
}
