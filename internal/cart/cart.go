// Package cart keeps carts and turns them into checkout requests.
package cart

import (
	"errors"
	"fmt"
	"time"

	"github.com/lucsky/cuid"
	"github.com/shopspring/decimal"

	"github.com/chrisdamba/fooddash/internal/models"
	"github.com/chrisdamba/fooddash/internal/pricing"
)

var (
	ErrCartNotFound          = errors.New("cart not found")
	ErrEntryNotFound         = errors.New("cart entry not found")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrRestaurantMismatch    = errors.New("cart already holds items from another restaurant")
	ErrPaymentMethodRequired = errors.New("please select a payment method")
)

// AddItem prices item with selections and adds quantity units of it to c. An entry with
// the same item and the same resolved choices is merged instead of duplicated. With
// strict set, selections must pass pricing.Validate.
func AddItem(c *models.Cart, item *models.MenuItem, selections pricing.Selections, quantity int, strict bool, now time.Time) (*models.CartEntry, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: got %d", pricing.ErrInvalidQuantity, quantity)
	}
	if c.RestaurantID != "" && len(c.Entries) > 0 && c.RestaurantID != item.RestaurantID {
		return nil, fmt.Errorf("%w: %s", ErrRestaurantMismatch, c.RestaurantID)
	}

	var groups []models.CustomizationGroup
	if item.Customizable {
		groups = item.CustomizationGroups
	} else {
		selections = nil
	}
	if strict {
		if err := pricing.Validate(groups, selections); err != nil {
			return nil, err
		}
	}
	resolved := resolve(groups, selections)
	key := pricing.Key(groups, resolved)

	c.RestaurantID = item.RestaurantID
	c.UpdatedAt = now
	for i := range c.Entries {
		entry := &c.Entries[i]
		if entry.ItemID == item.ID && pricing.Key(groups, entry.Selections) == key {
			entry.Quantity += quantity
			return entry, nil
		}
	}

	c.Entries = append(c.Entries, models.CartEntry{
		ID:            cuid.New(),
		RestaurantID:  item.RestaurantID,
		ItemID:        item.ID,
		Name:          item.Name,
		IsVeg:         item.IsVeg,
		Quantity:      quantity,
		UnitPrice:     pricing.UnitPrice(item.Price, groups, resolved),
		Selections:    resolved,
		Customization: pricing.Describe(groups, resolved),
	})
	return &c.Entries[len(c.Entries)-1], nil
}

// resolve materializes default choices so the stored entry lists exactly what was priced.
func resolve(groups []models.CustomizationGroup, selections pricing.Selections) pricing.Selections {
	if len(groups) == 0 {
		return nil
	}
	out := make(pricing.Selections, len(groups))
	for _, group := range groups {
		if ids := selections.Resolve(group); len(ids) > 0 {
			out[group.ID] = append([]string(nil), ids...)
		}
	}
	return out
}

// UpdateQuantity adds delta to an entry. Entries that reach zero are removed.
func UpdateQuantity(c *models.Cart, entryID string, delta int, now time.Time) error {
	for i := range c.Entries {
		if c.Entries[i].ID != entryID {
			continue
		}
		c.UpdatedAt = now
		if q := c.Entries[i].Quantity + delta; q > 0 {
			c.Entries[i].Quantity = q
			return nil
		}
		c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
		if len(c.Entries) == 0 {
			c.RestaurantID = ""
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrEntryNotFound, entryID)
}

// ComputeBill prices a list of entries. An empty list has an all-zero bill.
func ComputeBill(entries []models.CartEntry, cfg models.PricingConfig) models.Bill {
	if len(entries) == 0 {
		return models.Bill{}
	}
	itemTotal := decimal.Zero
	for _, entry := range entries {
		itemTotal = itemTotal.Add(entry.LineTotal())
	}
	bill := models.Bill{
		ItemTotal:   itemTotal,
		DeliveryFee: decimal.NewFromFloat(cfg.DeliveryFee),
		PlatformFee: decimal.NewFromFloat(cfg.PlatformFee),
		Tax:         itemTotal.Mul(decimal.NewFromFloat(cfg.TaxRate)).Round(2),
		Discount:    decimal.NewFromFloat(cfg.Discount),
	}
	bill.GrandTotal = bill.ItemTotal.
		Add(bill.DeliveryFee).
		Add(bill.PlatformFee).
		Add(bill.Tax).
		Sub(bill.Discount)
	if bill.GrandTotal.IsNegative() {
		bill.GrandTotal = decimal.Zero
	}
	return bill
}

// Quote is the price of a customization before it is added to a cart.
type Quote struct {
	ItemID        string          `json:"item_id"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Total         decimal.Decimal `json:"total"`
	Customization string          `json:"customization"`
}
