// Package market provides odds conversion and key-number line math. It
// normalizes a quoted (spread, price) or moneyline pair into a single
// comparable home-margin number for the edge detector.
package market

import "math"

// StandardVig is the baseline American price both sides of a spread are
// assumed to carry when no price is quoted.
const StandardVig = -110

// AmericanToDecimal converts American odds to decimal odds.
func AmericanToDecimal(american int) float64 {
	if american > 0 {
		return (float64(american) / 100.0) + 1.0
	}
	return (100.0 / float64(-american)) + 1.0
}

// DecimalToAmerican converts decimal odds to American odds.
func DecimalToAmerican(decimal float64) int {
	if decimal >= 2.0 {
		return int(math.Round((decimal - 1.0) * 100))
	}
	return int(math.Round(-100.0 / (decimal - 1.0)))
}

// ImpliedProbability calculates the vig-inclusive implied probability from
// American odds.
func ImpliedProbability(american int) float64 {
	return 1.0 / AmericanToDecimal(american)
}

// RemoveVig2 converts a two-way American price pair into fair probabilities
// by stripping the bookmaker's overround.
func RemoveVig2(a, b int) (float64, float64) {
	rawA := ImpliedProbability(a)
	rawB := ImpliedProbability(b)
	total := rawA + rawB
	if total == 0 {
		return 0.5, 0.5
	}
	return rawA / total, rawB / total
}

// NetOdds returns b, the net fractional payout per unit staked, for American
// odds. Used directly in the Kelly formula.
func NetOdds(american int) float64 {
	return AmericanToDecimal(american) - 1.0
}
