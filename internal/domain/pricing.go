package domain

import (
	"math"
	"time"
)

// UnitPrice returns the final per-unit price for a product in the given
// delivery zone. The product discount applies first (fixed amount wins over
// percentage); the global discount applies on top only when stacking is
// allowed or no product discount fired. Prices are rounded to whole rupees
// after each percentage step and never go below zero.
func (c *SiteConfig) UnitPrice(p *Product, insideValley bool, now time.Time) int64 {
	price := p.ZonePrice(insideValley)
	productApplied := false

	if p.DiscountActive(now) {
		if p.DiscountFixed > 0 {
			price -= p.DiscountFixed
		} else {
			price = applyPercent(price, p.DiscountPercent)
		}
		productApplied = true
	}
	if price < 0 {
		price = 0
	}

	if productApplied && !c.AllowStacking {
		return price
	}
	if c.GlobalDiscountActive(now) {
		price = applyPercent(price, c.GlobalDiscountPercent)
	}
	if price < 0 {
		price = 0
	}
	return price
}

// DeliveryCharge returns the zone fee, or zero once the subtotal reaches the
// free-delivery threshold. There are no tiered fees.
func (c *SiteConfig) DeliveryCharge(subtotal int64, insideValley bool) int64 {
	if c.FreeDeliveryThreshold > 0 && subtotal >= c.FreeDeliveryThreshold {
		return 0
	}
	if insideValley {
		return c.DeliveryChargeInside
	}
	return c.DeliveryChargeOutside
}

func applyPercent(price int64, percent float64) int64 {
	return int64(math.Round(float64(price) * (1 - percent/100)))
}
