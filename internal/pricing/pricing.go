// Package pricing computes the price of a customized menu item.
package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chrisdamba/fooddash/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrUnknownGroup    = errors.New("unknown customization group")
	ErrUnknownOption   = errors.New("unknown customization option")
	ErrTooManyOptions  = errors.New("single choice group has more than one option selected")
	ErrMissingRequired = errors.New("required customization group has no selection")
	ErrDuplicateOption = errors.New("customization option selected more than once")
)

// Selections maps a customization group id to the option ids chosen in it.
type Selections map[string][]string

// Resolve returns the option ids that count for group. A required single group that is
// absent from s falls back to its first option; every other absent group is empty.
// Repeated ids count once.
func (s Selections) Resolve(group models.CustomizationGroup) []string {
	if ids, ok := s[group.ID]; ok {
		return unique(ids)
	}
	if group.Required && group.Type == models.GroupTypeSingle && len(group.Options) > 0 {
		return []string{group.Options[0].ID}
	}
	return nil
}

func unique(ids []string) []string {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// ComputeTotal returns (basePrice + sum of selected option deltas) * quantity.
// Option ids that do not belong to their group contribute nothing.
func ComputeTotal(basePrice decimal.Decimal, groups []models.CustomizationGroup, selections Selections, quantity int) (decimal.Decimal, error) {
	if quantity < 1 {
		return decimal.Zero, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	return UnitPrice(basePrice, groups, selections).Mul(decimal.NewFromInt(int64(quantity))), nil
}

// UnitPrice is the price of a single customized item.
func UnitPrice(basePrice decimal.Decimal, groups []models.CustomizationGroup, selections Selections) decimal.Decimal {
	total := basePrice
	for _, group := range groups {
		for _, id := range selections.Resolve(group) {
			if option, ok := group.Option(id); ok {
				total = total.Add(option.Price)
			}
		}
	}
	return total
}

// Validate checks selections against groups. Resolution defaults apply first, so a
// required single group is only missing when it has no options at all.
func Validate(groups []models.CustomizationGroup, selections Selections) error {
	known := make(map[string]bool, len(groups))
	for _, group := range groups {
		known[group.ID] = true

		if raw := selections[group.ID]; len(unique(raw)) != len(raw) {
			return fmt.Errorf("%w: %s", ErrDuplicateOption, group.Title)
		}
		ids := selections.Resolve(group)
		if group.Type == models.GroupTypeSingle && len(ids) > 1 {
			return fmt.Errorf("%w: %s", ErrTooManyOptions, group.Title)
		}
		if group.Required && len(ids) == 0 {
			return fmt.Errorf("%w: %s", ErrMissingRequired, group.Title)
		}
		for _, id := range ids {
			if _, ok := group.Option(id); !ok {
				return fmt.Errorf("%w: %s in %s", ErrUnknownOption, id, group.Title)
			}
		}
	}
	for id := range selections {
		if !known[id] {
			return fmt.Errorf("%w: %s", ErrUnknownGroup, id)
		}
	}
	return nil
}

// Describe renders the chosen option names in group order, e.g.
// "Cilantro Lime Rice (White), Black Beans, Guacamole".
func Describe(groups []models.CustomizationGroup, selections Selections) string {
	var names []string
	for _, group := range groups {
		for _, id := range selections.Resolve(group) {
			if option, ok := group.Option(id); ok {
				names = append(names, option.Name)
			}
		}
	}
	return strings.Join(names, ", ")
}
