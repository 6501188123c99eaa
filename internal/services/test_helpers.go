package services

import (
	"time"

	"storefront-service/internal/domain"
)

func newTestConfig() *domain.SiteConfig {
	return &domain.SiteConfig{
		ID:                    1,
		DeliveryChargeInside:  100,
		DeliveryChargeOutside: 150,
		FreeDeliveryThreshold: 5000,
	}
}

func newTestOrder(id uint64, status domain.OrderStatus, updatedAt time.Time) *domain.Order {
	return &domain.Order{
		ID:           id,
		PublicCode:   "ORD-TEST0001",
		CustomerName: "Sita Sharma",
		Phone:        "9841000000",
		Province:     "Bagmati",
		District:     "Kathmandu",
		Address:      "Baneshwor",
		InsideValley: true,
		Subtotal:     2000,
		Total:        2100,
		Status:       status,
		CreatedAt:    updatedAt.Add(-time.Hour),
		UpdatedAt:    updatedAt,
	}
}

func newTestInput() CreateOrderInput {
	return CreateOrderInput{
		CustomerName: "Sita Sharma",
		Phone:        "9841000000",
		Province:     "Bagmati",
		District:     "Kathmandu",
		Address:      "Baneshwor",
		InsideValley: true,
		ClientIP:     "203.0.113.7",
		Items: []domain.ItemRequest{
			{ProductID: 1, Quantity: 2},
		},
	}
}
