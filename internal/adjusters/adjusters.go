// Package adjusters implements the four independent adjustment calculators:
// situational, weather, emotional and injury. Each is a deterministic pure
// function from a fixed input snapshot to a signed point adjustment for one
// team in one game, and none of them ever touches the power-rating store.
// Missing provider data degrades the affected sub-factor to zero and flags
// the result incomplete instead of failing.
package adjusters

import "fmt"

// clamp bounds v to [-limit, limit].
func clamp(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

// note formats one named sub-factor contribution for the audit trail.
func note(name string, points float64) string {
	return fmt.Sprintf("%s:%+.2f", name, points)
}
