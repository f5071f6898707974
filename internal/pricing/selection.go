package pricing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chrisdamba/fooddash/internal/models"
)

// Selection tracks the options a customer picks for one menu item.
type Selection struct {
	groups     []models.CustomizationGroup
	selections Selections
}

// NewSelection starts a selection for groups with every required single group set to
// its first option. Multiple groups start empty.
func NewSelection(groups []models.CustomizationGroup) *Selection {
	s := &Selection{groups: groups, selections: make(Selections)}
	for _, group := range groups {
		if group.Required && group.Type == models.GroupTypeSingle && len(group.Options) > 0 {
			s.selections[group.ID] = []string{group.Options[0].ID}
		}
	}
	return s
}

// Choose applies a tap on optionID: single groups replace their choice, multiple
// groups toggle membership.
func (s *Selection) Choose(groupID, optionID string) error {
	group, ok := s.group(groupID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGroup, groupID)
	}
	if _, ok := group.Option(optionID); !ok {
		return fmt.Errorf("%w: %s in %s", ErrUnknownOption, optionID, group.Title)
	}

	if group.Type == models.GroupTypeSingle {
		s.selections[groupID] = []string{optionID}
		return nil
	}

	current := s.selections[groupID]
	for i, id := range current {
		if id == optionID {
			s.selections[groupID] = append(current[:i:i], current[i+1:]...)
			return nil
		}
	}
	s.selections[groupID] = append(current, optionID)
	return nil
}

// Selections returns a copy of the current choices.
func (s *Selection) Selections() Selections {
	out := make(Selections, len(s.selections))
	for k, v := range s.selections {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func (s *Selection) group(id string) (*models.CustomizationGroup, bool) {
	for i := range s.groups {
		if s.groups[i].ID == id {
			return &s.groups[i], true
		}
	}
	return nil, false
}

// Key is a stable representation of the resolved selections, used to merge identical
// cart lines.
func Key(groups []models.CustomizationGroup, selections Selections) string {
	parts := make([]string, 0, len(groups))
	for _, group := range groups {
		ids := append([]string(nil), selections.Resolve(group)...)
		if len(ids) == 0 {
			continue
		}
		sort.Strings(ids)
		parts = append(parts, group.ID+"="+strings.Join(ids, "+"))
	}
	return strings.Join(parts, ";")
}
