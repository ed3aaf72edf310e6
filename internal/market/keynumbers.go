package market

import (
	"math"
	"sort"

	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/models"
)

// marginFrequency is the historical share of NFL games ending on each final
// margin. Values above keyThreshold mark the key numbers (3, 7, 6, 10, 14).
var marginFrequency = map[int]float64{
	1: 0.041, 2: 0.035, 3: 0.153, 4: 0.046, 5: 0.033,
	6: 0.061, 7: 0.092, 8: 0.031, 9: 0.025, 10: 0.057,
	11: 0.028, 12: 0.019, 13: 0.023, 14: 0.052, 15: 0.016,
	16: 0.021, 17: 0.030, 18: 0.018, 20: 0.019, 21: 0.024,
}

const (
	// defaultFrequency is assumed for margins absent from the table.
	defaultFrequency = 0.015

	// keyThreshold separates key numbers from ordinary margins.
	keyThreshold = 0.05

	// keyMoveWeight scales the frequency bonus when valuing a line move.
	keyMoveWeight = 2.0

	// maxPriceAdjust caps how far off-standard juice can shift a
	// normalized line.
	maxPriceAdjust = 1.5
)

// probSpread maps a fair win probability to the equivalent point spread at
// standard vig. Interpolated linearly between rows.
var probSpread = []struct {
	Prob   float64
	Spread float64
}{
	{0.500, 0.0}, {0.520, 1.0}, {0.535, 1.5}, {0.550, 2.0}, {0.565, 2.5},
	{0.590, 3.0}, {0.610, 3.5}, {0.625, 4.0}, {0.640, 4.5}, {0.655, 5.0},
	{0.670, 5.5}, {0.685, 6.0}, {0.700, 6.5}, {0.720, 7.0}, {0.735, 7.5},
	{0.750, 8.0}, {0.765, 8.5}, {0.775, 9.0}, {0.785, 9.5}, {0.800, 10.0},
	{0.820, 11.0}, {0.840, 12.0}, {0.860, 13.0}, {0.880, 14.0}, {0.900, 15.5},
	{0.920, 17.0}, {0.940, 19.0}, {0.960, 21.5},
}

// KeyNumberTable exposes margin-frequency lookups and line normalization.
type KeyNumberTable struct {
	freq map[int]float64
}

// NewKeyNumberTable returns the table backed by the historical margin
// distribution.
func NewKeyNumberTable() *KeyNumberTable {
	return &KeyNumberTable{freq: marginFrequency}
}

// Frequency returns the historical share of games ending on the given margin.
func (t *KeyNumberTable) Frequency(margin int) float64 {
	if margin < 0 {
		margin = -margin
	}
	if f, ok := t.freq[margin]; ok {
		return f
	}
	return defaultFrequency
}

// IsKeyNumber reports whether a margin occurs disproportionately often.
func (t *KeyNumberTable) IsKeyNumber(margin int) bool {
	return t.Frequency(margin) >= keyThreshold
}

// KeyNumbers returns the key margins in descending frequency order.
func (t *KeyNumberTable) KeyNumbers() []int {
	var keys []int
	for m, f := range t.freq {
		if f >= keyThreshold {
			keys = append(keys, m)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return t.freq[keys[i]] > t.freq[keys[j]] })
	return keys
}

// MoveValue values a line move from one number to another. Every integer
// margin the move crosses or lands on contributes a frequency-weighted bonus,
// so an equal-sized move across a key number is worth strictly more.
func (t *KeyNumberTable) MoveValue(from, to float64) float64 {
	if from == to {
		return 0
	}
	lo, hi := math.Abs(from), math.Abs(to)
	if lo > hi {
		lo, hi = hi, lo
	}
	value := hi - lo
	for n := int(math.Ceil(lo)); n <= int(math.Floor(hi)); n++ {
		if n == 0 {
			continue
		}
		value += t.Frequency(n) * keyMoveWeight
	}
	return value
}

// SpreadFromWinProbability converts a fair win probability into the
// equivalent spread for the favored side.
func SpreadFromWinProbability(p float64) float64 {
	favored := p >= 0.5
	if !favored {
		p = 1.0 - p
	}
	spread := probSpread[len(probSpread)-1].Spread
	for i := 1; i < len(probSpread); i++ {
		if p <= probSpread[i].Prob {
			lo, hi := probSpread[i-1], probSpread[i]
			frac := (p - lo.Prob) / (hi.Prob - lo.Prob)
			spread = lo.Spread + frac*(hi.Spread-lo.Spread)
			break
		}
	}
	if !favored {
		return -spread
	}
	return spread
}

// MoneylineToSpread converts a two-way moneyline quote into the equivalent
// home spread margin (positive means home favored).
func MoneylineToSpread(homeML, awayML int) float64 {
	fairHome, _ := RemoveVig2(homeML, awayML)
	return SpreadFromWinProbability(fairHome)
}

// NormalizedHomeMargin reduces a market snapshot to one comparable number:
// the expected home victory margin. A quoted spread is adjusted for
// off-standard juice using the margin frequency at the nearby number: points
// are dense near 3, so the same shade in juice converts to fewer effective
// points there than near a sparse margin like 9. With no spread quoted, the
// moneyline pair is converted instead.
func (t *KeyNumberTable) NormalizedHomeMargin(line models.MarketLine) float64 {
	if line.Spread == 0 && line.HomeMoneyline != 0 && line.AwayMoneyline != 0 {
		return MoneylineToSpread(line.HomeMoneyline, line.AwayMoneyline)
	}

	margin := line.HomeMargin()
	price := line.SpreadPrice
	if price == 0 || price == StandardVig {
		return margin
	}

	fairHome, _ := RemoveVig2(price, StandardVig)
	density := t.Frequency(int(math.Round(math.Abs(line.Spread)))) / 2.0
	adjust := (fairHome - 0.5) / density
	if adjust > maxPriceAdjust {
		adjust = maxPriceAdjust
	} else if adjust < -maxPriceAdjust {
		adjust = -maxPriceAdjust
	}
	return margin + adjust
}
