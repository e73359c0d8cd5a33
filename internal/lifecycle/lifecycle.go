// Package lifecycle enforces the allowed status values and transition
// graphs for bikes, bookings and permits. Handlers call into it before
// any write; a failed check leaves the stored record untouched.
package lifecycle

import (
	"fmt"

	"github.com/jigmet/ladakh-tourism-backend/internal/models"
)

// InvalidStatusError reports a value outside the enumerated set for a field.
type InvalidStatusError struct {
	Field string
	Value string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// InvalidTransitionError reports a transition the graph does not allow.
type InvalidTransitionError struct {
	Field string
	From  string
	To    string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition %s from %q to %q", e.Field, e.From, e.To)
}

func ParseBikeStatus(s string) (models.BikeStatus, error) {
	switch models.BikeStatus(s) {
	case models.BikeStatusAvailable, models.BikeStatusRented, models.BikeStatusUnderMaintenance:
		return models.BikeStatus(s), nil
	default:
		return "", &InvalidStatusError{Field: "availabilityStatus", Value: s}
	}
}

func ParseBookingStatus(s string) (models.BookingStatus, error) {
	switch models.BookingStatus(s) {
	case models.BookingStatusPending, models.BookingStatusConfirmed,
		models.BookingStatusCompleted, models.BookingStatusCancelled:
		return models.BookingStatus(s), nil
	default:
		return "", &InvalidStatusError{Field: "status", Value: s}
	}
}

func ParsePermitStatus(s string) (models.PermitStatus, error) {
	switch models.PermitStatus(s) {
	case models.PermitStatusPending, models.PermitStatusApproved, models.PermitStatusRejected:
		return models.PermitStatus(s), nil
	default:
		return "", &InvalidStatusError{Field: "status", Value: s}
	}
}

func ParseSeverity(s string) (models.AlertSeverity, error) {
	switch models.AlertSeverity(s) {
	case models.SeverityLow, models.SeverityMedium, models.SeverityHigh:
		return models.AlertSeverity(s), nil
	default:
		return "", &InvalidStatusError{Field: "severity", Value: s}
	}
}

// completed and cancelled are terminal.
var bookingTransitions = map[models.BookingStatus]map[models.BookingStatus]bool{
	models.BookingStatusPending:   {models.BookingStatusConfirmed: true, models.BookingStatusCancelled: true},
	models.BookingStatusConfirmed: {models.BookingStatusCompleted: true, models.BookingStatusCancelled: true},
	models.BookingStatusCompleted: {},
	models.BookingStatusCancelled: {},
}

func CanTransitionBooking(from, to models.BookingStatus) bool {
	m, ok := bookingTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

// TransitionBooking validates a booking status change against the graph.
func TransitionBooking(from, to models.BookingStatus) error {
	if _, err := ParseBookingStatus(string(to)); err != nil {
		return err
	}
	if !CanTransitionBooking(from, to) {
		return &InvalidTransitionError{Field: "booking status", From: string(from), To: string(to)}
	}
	return nil
}

// ConfirmPayment decides what a payment confirmation does to a booking.
// An already confirmed booking reports apply == false with no error, so a
// repeated payment callback returns the record as-is without a write. Any
// other state must pass the transition graph.
func ConfirmPayment(current models.BookingStatus) (apply bool, err error) {
	if current == models.BookingStatusConfirmed {
		return false, nil
	}
	if err := TransitionBooking(current, models.BookingStatusConfirmed); err != nil {
		return false, err
	}
	return true, nil
}

var bikeTransitions = map[models.BikeStatus]map[models.BikeStatus]bool{
	models.BikeStatusAvailable:        {models.BikeStatusRented: true, models.BikeStatusUnderMaintenance: true},
	models.BikeStatusRented:           {models.BikeStatusAvailable: true, models.BikeStatusUnderMaintenance: true},
	models.BikeStatusUnderMaintenance: {models.BikeStatusAvailable: true},
}

// TransitionBike validates a bike availability change. Enum membership is
// always checked; the transition graph only applies when rules enable it,
// otherwise vendors may set any of the three values directly.
func TransitionBike(rules Rules, from, to models.BikeStatus) error {
	if _, err := ParseBikeStatus(string(to)); err != nil {
		return err
	}
	if !rules.StrictBikeTransitions || from == to {
		return nil
	}
	if !bikeTransitions[from][to] {
		return &InvalidTransitionError{Field: "availabilityStatus", From: string(from), To: string(to)}
	}
	return nil
}

// DecidePermit validates a permit decision. A decision is one-shot: the
// permit must still be pending and the target must be approved or rejected.
// With AllowPermitRedecision a government actor may overwrite an earlier
// decision, but can never move a permit back to pending.
func DecidePermit(rules Rules, current, target models.PermitStatus) error {
	if _, err := ParsePermitStatus(string(target)); err != nil {
		return err
	}
	if target == models.PermitStatusPending {
		return &InvalidTransitionError{Field: "permit status", From: string(current), To: string(target)}
	}
	if current != models.PermitStatusPending && !rules.AllowPermitRedecision {
		return &InvalidTransitionError{Field: "permit status", From: string(current), To: string(target)}
	}
	return nil
}
