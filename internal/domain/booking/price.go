package booking

import "time"

type PriceCalculator interface {
	// UnitPriceCents prices a single instance for the window.
	UnitPriceCents(pricePerHourCents int64, window Window) int64
}

// HourlyPriceCalculator bills whole hours: partial hours round up. No
// tiered pricing, discounts, or proration.
type HourlyPriceCalculator struct{}

func NewHourlyPriceCalculator() *HourlyPriceCalculator {
	return &HourlyPriceCalculator{}
}

func (c *HourlyPriceCalculator) UnitPriceCents(pricePerHourCents int64, window Window) int64 {
	return pricePerHourCents * ceilHours(window.Duration())
}

func ceilHours(d time.Duration) int64 {
	hours := d / time.Hour
	if d%time.Hour != 0 {
		hours++
	}
	return int64(hours)
}
