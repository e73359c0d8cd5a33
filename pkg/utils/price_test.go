package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingTotal(t *testing.T) {
	start := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

	total, err := BookingTotal(100, start, start.Add(2*time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, 200.0, total)

	total, err = BookingTotal(150, start, start.Add(4*time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, 600.0, total)

	// Partial hours are charged proportionally, not rounded up.
	total, err = BookingTotal(100, start, start.Add(90*time.Minute))
	assert.NoError(t, err)
	assert.Equal(t, 150.0, total)
}

func TestBookingTotalRejectsBadInterval(t *testing.T) {
	start := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

	_, err := BookingTotal(100, start, start)
	assert.Error(t, err)

	_, err = BookingTotal(100, start, start.Add(-time.Hour))
	assert.Error(t, err)
}

func TestRoundCurrency(t *testing.T) {
	assert.Equal(t, 123.46, RoundCurrency(123.456))
	assert.Equal(t, 123.45, RoundCurrency(123.454))
	assert.Equal(t, 200.0, RoundCurrency(200.0))
}
