package models

type Address struct {
	ID       string `json:"id"`
	Label    string `json:"label"` // Home, Work
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Distance string `json:"distance"`
}

type PaymentMethod struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Linked bool   `json:"linked"`
}

// Preferences replaces the ambient veg-mode/theme state of the app: callers pass it
// explicitly to every catalog query.
type Preferences struct {
	VegMode bool  `json:"veg_mode" mapstructure:"veg_mode"`
	Theme   Theme `json:"theme" mapstructure:"theme"`
}
