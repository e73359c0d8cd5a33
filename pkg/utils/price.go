package utils

import (
	"errors"
	"math"
	"time"
)

// BookingTotal returns pricePerHour multiplied by the rental duration in
// hours. The stored total is the exact product; rounding happens only when
// an amount is formatted for display.
func BookingTotal(pricePerHour float64, start, end time.Time) (float64, error) {
	if !end.After(start) {
		return 0, errors.New("end time must be after start time")
	}
	hours := end.Sub(start).Hours()
	return pricePerHour * hours, nil
}

// RoundCurrency rounds an amount to 2 decimal places for display.
func RoundCurrency(amount float64) float64 {
	return math.Round(amount*100) / 100
}
