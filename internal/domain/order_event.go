package domain

import "time"

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

type OrderCreatedEvent struct {
	OrderID    uint64    `json:"orderId"`
	PublicCode string    `json:"publicCode"`
	Phone      string    `json:"phone"`
	Total      int64     `json:"total"`
	CreatedAt  time.Time `json:"createdAt"`
}

type OrderStatusChangedEvent struct {
	OrderID        uint64      `json:"orderId"`
	PublicCode     string      `json:"publicCode"`
	Phone          string      `json:"phone"`
	Status         OrderStatus `json:"status"`
	TrackingNumber string      `json:"trackingNumber,omitempty"`
	CourierName    string      `json:"courierName,omitempty"`
	ChangedAt      time.Time   `json:"changedAt"`
}
