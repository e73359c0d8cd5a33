package lifecycle

import (
	"testing"

	"github.com/jigmet/ladakh-tourism-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestParseBikeStatus(t *testing.T) {
	for _, valid := range []string{"available", "rented", "under_maintenance"} {
		status, err := ParseBikeStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, models.BikeStatus(valid), status)
	}

	_, err := ParseBikeStatus("broken")
	assert.Error(t, err)
	var statusErr *InvalidStatusError
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "availabilityStatus", statusErr.Field)
	assert.Equal(t, "broken", statusErr.Value)
}

func TestBookingTransitions(t *testing.T) {
	tests := []struct {
		name string
		from models.BookingStatus
		to   models.BookingStatus
		ok   bool
	}{
		{"pending to confirmed", models.BookingStatusPending, models.BookingStatusConfirmed, true},
		{"pending to cancelled", models.BookingStatusPending, models.BookingStatusCancelled, true},
		{"confirmed to completed", models.BookingStatusConfirmed, models.BookingStatusCompleted, true},
		{"confirmed to cancelled", models.BookingStatusConfirmed, models.BookingStatusCancelled, true},
		{"pending to completed", models.BookingStatusPending, models.BookingStatusCompleted, false},
		{"completed is terminal", models.BookingStatusCompleted, models.BookingStatusConfirmed, false},
		{"cancelled is terminal", models.BookingStatusCancelled, models.BookingStatusPending, false},
		{"confirmed back to pending", models.BookingStatusConfirmed, models.BookingStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TransitionBooking(tt.from, tt.to)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				var transErr *InvalidTransitionError
				assert.ErrorAs(t, err, &transErr)
			}
		})
	}
}

func TestTransitionBookingRejectsUnknownTarget(t *testing.T) {
	err := TransitionBooking(models.BookingStatusPending, models.BookingStatus("shipped"))
	var statusErr *InvalidStatusError
	assert.ErrorAs(t, err, &statusErr)
}

func TestConfirmPaymentRepeatedCallback(t *testing.T) {
	apply, err := ConfirmPayment(models.BookingStatusPending)
	assert.NoError(t, err)
	assert.True(t, apply)

	// A second callback on a confirmed booking must not write anything.
	apply, err = ConfirmPayment(models.BookingStatusConfirmed)
	assert.NoError(t, err)
	assert.False(t, apply)

	for _, terminal := range []models.BookingStatus{models.BookingStatusCompleted, models.BookingStatusCancelled} {
		apply, err = ConfirmPayment(terminal)
		assert.False(t, apply)
		var transErr *InvalidTransitionError
		assert.ErrorAs(t, err, &transErr)
	}
}

func TestDecidePermitOneShot(t *testing.T) {
	rules := Rules{}

	assert.NoError(t, DecidePermit(rules, models.PermitStatusPending, models.PermitStatusApproved))
	assert.NoError(t, DecidePermit(rules, models.PermitStatusPending, models.PermitStatusRejected))

	// A decided permit cannot be decided again.
	assert.Error(t, DecidePermit(rules, models.PermitStatusApproved, models.PermitStatusRejected))
	assert.Error(t, DecidePermit(rules, models.PermitStatusRejected, models.PermitStatusApproved))
	assert.Error(t, DecidePermit(rules, models.PermitStatusApproved, models.PermitStatusApproved))

	// A permit can never be moved back to pending.
	assert.Error(t, DecidePermit(rules, models.PermitStatusPending, models.PermitStatusPending))
	assert.Error(t, DecidePermit(rules, models.PermitStatusApproved, models.PermitStatusPending))

	_, parseErr := ParsePermitStatus("maybe")
	assert.Error(t, parseErr)
}

func TestDecidePermitRedecision(t *testing.T) {
	rules := Rules{AllowPermitRedecision: true}

	assert.NoError(t, DecidePermit(rules, models.PermitStatusApproved, models.PermitStatusRejected))
	assert.NoError(t, DecidePermit(rules, models.PermitStatusRejected, models.PermitStatusApproved))

	// Still never back to pending.
	assert.Error(t, DecidePermit(rules, models.PermitStatusApproved, models.PermitStatusPending))
}

func TestTransitionBikeLooseByDefault(t *testing.T) {
	rules := Rules{}

	// Any in-set value is settable regardless of the current one.
	assert.NoError(t, TransitionBike(rules, models.BikeStatusUnderMaintenance, models.BikeStatusRented))
	assert.NoError(t, TransitionBike(rules, models.BikeStatusRented, models.BikeStatusRented))

	// Enum membership is always enforced.
	err := TransitionBike(rules, models.BikeStatusAvailable, models.BikeStatus("broken"))
	var statusErr *InvalidStatusError
	assert.ErrorAs(t, err, &statusErr)
}

func TestTransitionBikeStrictGraph(t *testing.T) {
	rules := Rules{StrictBikeTransitions: true}

	assert.NoError(t, TransitionBike(rules, models.BikeStatusAvailable, models.BikeStatusRented))
	assert.NoError(t, TransitionBike(rules, models.BikeStatusRented, models.BikeStatusAvailable))
	assert.NoError(t, TransitionBike(rules, models.BikeStatusUnderMaintenance, models.BikeStatusAvailable))

	// A bike in the shop cannot go straight out on rent.
	err := TransitionBike(rules, models.BikeStatusUnderMaintenance, models.BikeStatusRented)
	var transErr *InvalidTransitionError
	assert.ErrorAs(t, err, &transErr)

	// Setting the current value again is a no-op even in strict mode.
	assert.NoError(t, TransitionBike(rules, models.BikeStatusRented, models.BikeStatusRented))
}

func TestRulesFromEnv(t *testing.T) {
	t.Setenv("PERMIT_ALLOW_REDECISION", "true")
	t.Setenv("BOOKING_OVERLAP_CHECK", "false")

	rules := RulesFromEnv()
	assert.True(t, rules.AllowPermitRedecision)
	assert.False(t, rules.PreventDoubleBooking)
	assert.False(t, rules.StrictBikeTransitions)
}
