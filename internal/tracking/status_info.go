package tracking

import "github.com/chrisdamba/fooddash/internal/models"

// Info is the display copy shown for a status.
type Info struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Icon     string `json:"icon"`
}

var statusInfo = map[models.OrderStatus]Info{
	models.OrderStatusPlaced: {
		Title:    "Order placed",
		Subtitle: "Food preparation will begin shortly",
		Icon:     "receipt-outline",
	},
	models.OrderStatusPreparing: {
		Title:    "Preparing your order",
		Subtitle: "Arriving in 20 mins • On time",
		Icon:     "restaurant-outline",
	},
	models.OrderStatusOutForDelivery: {
		Title:    "Out for delivery",
		Subtitle: "Arriving in 12 mins",
		Icon:     "bicycle-outline",
	},
	models.OrderStatusReached: {
		Title:    "Reached your location",
		Subtitle: "Coming to your doorstep",
		Icon:     "location-outline",
	},
	models.OrderStatusDelivered: {
		Title:    "Delivered",
		Subtitle: "Enjoy your meal!",
		Icon:     "checkmark-circle-outline",
	},
}

func StatusInfo(status models.OrderStatus) (Info, bool) {
	info, ok := statusInfo[status]
	return info, ok
}
