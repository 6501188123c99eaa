package domain

import "time"

// Product is the catalog read model consumed by the order engine. The order
// transaction is the only writer of Stock in this service.
type Product struct {
	ID           uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string `json:"name" gorm:"size:150;not null"`
	PriceInside  int64  `json:"priceInside" gorm:"not null"`
	PriceOutside int64  `json:"priceOutside" gorm:"not null"`
	Stock        int64  `json:"stock" gorm:"not null;default:0"`

	DiscountPercent float64    `json:"discountPercent"`
	DiscountFixed   int64      `json:"discountFixed"`
	DiscountStart   *time.Time `json:"discountStart,omitempty"`
	DiscountEnd     *time.Time `json:"discountEnd,omitempty"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (p *Product) ZonePrice(insideValley bool) int64 {
	if insideValley {
		return p.PriceInside
	}
	return p.PriceOutside
}

// DiscountActive reports whether the product discount window covers now.
// Missing bounds are open-ended.
func (p *Product) DiscountActive(now time.Time) bool {
	if p.DiscountPercent <= 0 && p.DiscountFixed <= 0 {
		return false
	}
	if p.DiscountStart != nil && now.Before(*p.DiscountStart) {
		return false
	}
	if p.DiscountEnd != nil && now.After(*p.DiscountEnd) {
		return false
	}
	return true
}

// BlockedCustomer is a phone-number blacklist entry; a hit rejects order
// creation outright.
type BlockedCustomer struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Phone     string    `json:"phone" gorm:"size:20;uniqueIndex;not null"`
	Reason    string    `json:"reason,omitempty" gorm:"size:255"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// SiteConfig is the single-row store configuration: delivery charges, the
// free-delivery threshold and the global discount campaign.
type SiteConfig struct {
	ID                    uint64     `json:"-" gorm:"primaryKey"`
	DeliveryChargeInside  int64      `json:"deliveryChargeInside" gorm:"not null"`
	DeliveryChargeOutside int64      `json:"deliveryChargeOutside" gorm:"not null"`
	FreeDeliveryThreshold int64      `json:"freeDeliveryThreshold" gorm:"not null"`
	GlobalDiscountPercent float64    `json:"globalDiscountPercent"`
	GlobalDiscountStart   *time.Time `json:"globalDiscountStart,omitempty"`
	GlobalDiscountEnd     *time.Time `json:"globalDiscountEnd,omitempty"`
	AllowStacking         bool       `json:"allowStacking"`
	UpdatedAt             time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (c *SiteConfig) GlobalDiscountActive(now time.Time) bool {
	if c.GlobalDiscountPercent <= 0 {
		return false
	}
	if c.GlobalDiscountStart != nil && now.Before(*c.GlobalDiscountStart) {
		return false
	}
	if c.GlobalDiscountEnd != nil && now.After(*c.GlobalDiscountEnd) {
		return false
	}
	return true
}
