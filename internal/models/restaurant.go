package models

type Restaurant struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Rating       float64  `json:"rating"`
	RatingCount  string   `json:"rating_count"`
	DeliveryTime string   `json:"delivery_time"`
	Distance     string   `json:"distance"`
	Offer        string   `json:"offer"`
	OfferCount   int      `json:"offer_count"`
	Address      string   `json:"address"`
	Tags         []string `json:"tags"`
	Highlights   []string `json:"highlights"`
	FeaturedDish string   `json:"featured_dish"`
	Images       []string `json:"images"`
	Promoted     bool     `json:"promoted"`
	IsVeg        bool     `json:"is_veg"`
	MenuSections []string `json:"menu_sections"` // section titles in display order
}

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
	IsVeg bool   `json:"is_veg"`
}

// MenuSection is one titled block of a restaurant menu.
type MenuSection struct {
	Title string      `json:"title"`
	Items []*MenuItem `json:"items"`
}
