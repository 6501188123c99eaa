package http

import "time"

type OrderItemRequest struct {
	ProductID uint64 `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	CustomerName   string             `json:"customerName" binding:"required,max=100"`
	Phone          string             `json:"phone" binding:"required,max=20"`
	Province       string             `json:"province" binding:"required"`
	District       string             `json:"district" binding:"required"`
	Address        string             `json:"address" binding:"required"`
	Landmark       string             `json:"landmark"`
	Notes          string             `json:"notes"`
	IsInsideValley *bool              `json:"isInsideValley" binding:"required"`
	IdempotencyKey string             `json:"idempotencyKey" binding:"max=64"`
	Items          []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdateStatusRequest struct {
	NewStatus       string    `json:"newStatus" binding:"required"`
	LastUpdatedAt   time.Time `json:"lastUpdatedAt" binding:"required"`
	Reason          string    `json:"reason"`
	TrackingNumber  string    `json:"trackingNumber"`
	CourierName     string    `json:"courierName"`
	AdminNotes      string    `json:"adminNotes"`
	PaymentReceived *bool     `json:"paymentReceived"`
}

type UpdateStatusResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type UpdateConfigRequest struct {
	DeliveryChargeInside  *int64     `json:"deliveryChargeInside" binding:"required,min=0"`
	DeliveryChargeOutside *int64     `json:"deliveryChargeOutside" binding:"required,min=0"`
	FreeDeliveryThreshold *int64     `json:"freeDeliveryThreshold" binding:"required,min=0"`
	GlobalDiscountPercent float64    `json:"globalDiscountPercent" binding:"min=0,max=100"`
	GlobalDiscountStart   *time.Time `json:"globalDiscountStart"`
	GlobalDiscountEnd     *time.Time `json:"globalDiscountEnd"`
	AllowStacking         bool       `json:"allowStacking"`
}

type BlockCustomerRequest struct {
	Phone  string `json:"phone" binding:"required,max=20"`
	Reason string `json:"reason" binding:"max=255"`
}
