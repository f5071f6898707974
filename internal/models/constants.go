package models

// OrderStatus is one of the five fixed delivery states. The order of the constants is
// the order of the lifecycle.
type OrderStatus string

const (
	OrderStatusPlaced         OrderStatus = "placed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusReached        OrderStatus = "reached"
	OrderStatusDelivered      OrderStatus = "delivered"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusPlaced,
	OrderStatusPreparing,
	OrderStatusOutForDelivery,
	OrderStatusReached,
	OrderStatusDelivered,
}

// Rank returns the position of the status in the lifecycle, or -1 for unknown values.
func (s OrderStatus) Rank() int {
	for i, st := range OrderStatuses {
		if st == s {
			return i
		}
	}
	return -1
}

func (s OrderStatus) Valid() bool { return s.Rank() >= 0 }

// Terminal reports whether no further transition can happen.
func (s OrderStatus) Terminal() bool { return s == OrderStatusDelivered }

type GroupType string

const (
	GroupTypeSingle   GroupType = "single"
	GroupTypeMultiple GroupType = "multiple"
)

type FoodType string

const (
	FoodTypeVeg    FoodType = "veg"
	FoodTypeNonVeg FoodType = "non-veg"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

const (
	TopicOrderPlaced   = "order_placed_events"
	TopicOrderStatus   = "order_status_events"
	TopicOrderFeedback = "order_feedback_events"
)

// AllCategoryName disables category filtering.
const AllCategoryName = "All"

var (
	// TipOptions are the only tip amounts a customer can pick after delivery.
	TipOptions = []int64{3, 5, 7}

	FeedbackTags = []string{
		"Fast delivery",
		"Polite attitude",
		"Location awareness",
		"Responsive",
		"Neat & Clean",
		"Food handling",
		"Minimal calling",
	}
)
