package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillableHours is the number of whole hours in w. Any sub-hour remainder
// is not billed: 09:00-10:30 bills one hour.
func BillableHours(w Window) int64 {
	return int64(w.Duration() / time.Hour)
}

// TotalPrice is pricePerHour times the billable hours of w, rounded to cents.
func TotalPrice(pricePerHour decimal.Decimal, w Window) decimal.Decimal {
	return pricePerHour.Mul(decimal.NewFromInt(BillableHours(w))).Round(2)
}
