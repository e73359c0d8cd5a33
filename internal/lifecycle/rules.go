package lifecycle

import "os"

// Rules holds the behavior toggles that tighten the lifecycle beyond the
// defaults. All default to off so the looser legacy behavior is preserved
// unless explicitly enabled.
type Rules struct {
	// AllowPermitRedecision lets a decided permit be decided again.
	AllowPermitRedecision bool
	// PreventDoubleBooking rejects bookings whose interval overlaps a
	// pending or confirmed booking on the same bike.
	PreventDoubleBooking bool
	// StrictBikeTransitions enforces the bike availability graph instead
	// of plain enum membership.
	StrictBikeTransitions bool
}

func RulesFromEnv() Rules {
	return Rules{
		AllowPermitRedecision: envBool("PERMIT_ALLOW_REDECISION"),
		PreventDoubleBooking:  envBool("BOOKING_OVERLAP_CHECK"),
		StrictBikeTransitions: envBool("BIKE_STRICT_TRANSITIONS"),
	}
}

func envBool(key string) bool {
	return os.Getenv(key) == "true"
}
