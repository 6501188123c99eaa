package domain

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered, StatusCancelled},
	StatusDelivered: {},
	StatusCancelled: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransitionTo reports whether next is reachable from s. Re-applying the
// current status is allowed, so a double-submitted admin form is a no-op
// instead of an error.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID             uint64  `json:"id" gorm:"primaryKey;autoIncrement"`
	PublicCode     string  `json:"publicCode" gorm:"size:24;uniqueIndex;not null"`
	IdempotencyKey *string `json:"-" gorm:"size:64;uniqueIndex"`

	CustomerName string `json:"customerName" gorm:"size:100;not null"`
	Phone        string `json:"phone" gorm:"size:20;not null;index"`
	Province     string `json:"province" gorm:"size:50"`
	District     string `json:"district" gorm:"size:50"`
	Address      string `json:"address" gorm:"size:255"`
	Landmark     string `json:"landmark,omitempty" gorm:"size:255"`
	Notes        string `json:"notes,omitempty" gorm:"size:500"`

	InsideValley   bool        `json:"isInsideValley"`
	Items          []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	Subtotal       int64       `json:"subtotal" gorm:"not null"`
	DeliveryCharge int64       `json:"deliveryCharge" gorm:"not null"`
	Total          int64       `json:"total" gorm:"not null"`

	Status          OrderStatus `json:"status" gorm:"size:20;not null;default:'PENDING';index"`
	ClientIP        string      `json:"-" gorm:"size:45"`
	PaymentReceived bool        `json:"paymentReceived"`
	AdminNotes      string      `json:"adminNotes,omitempty" gorm:"size:500"`
	TrackingNumber  string      `json:"trackingNumber,omitempty" gorm:"size:100"`
	CourierName     string      `json:"courierName,omitempty" gorm:"size:100"`
	RejectReason    string      `json:"rejectReason,omitempty" gorm:"size:255"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// OrderItem snapshots the unit price at purchase time; later catalog price
// changes never rewrite order history.
type OrderItem struct {
	ID          uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID     uint64 `json:"-" gorm:"not null;index"`
	ProductID   uint64 `json:"productId" gorm:"not null;index"`
	ProductName string `json:"productName" gorm:"size:150"`
	Quantity    int    `json:"quantity" gorm:"not null"`
	UnitPrice   int64  `json:"unitPrice" gorm:"not null"`
}

// ItemRequest is one line of an incoming order before products are resolved.
type ItemRequest struct {
	ProductID uint64
	Quantity  int
}

// StatusUpdate carries the fields that stay mutable after creation. Optional
// fields are written only when non-zero.
type StatusUpdate struct {
	Status          OrderStatus
	RejectReason    string
	TrackingNumber  string
	CourierName     string
	AdminNotes      string
	PaymentReceived *bool
}
