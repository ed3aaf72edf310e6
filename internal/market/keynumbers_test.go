package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/models"
)

func TestKeyNumbers(t *testing.T) {
	table := NewKeyNumberTable()

	t.Run("identifies the football key numbers", func(t *testing.T) {
		for _, m := range []int{3, 6, 7, 10, 14} {
			assert.True(t, table.IsKeyNumber(m), "margin %d should be key", m)
		}
		for _, m := range []int{1, 2, 4, 5, 8, 9, 11} {
			assert.False(t, table.IsKeyNumber(m), "margin %d should not be key", m)
		}
	})

	t.Run("frequency ignores sign", func(t *testing.T) {
		assert.Equal(t, table.Frequency(3), table.Frequency(-3))
	})

	t.Run("unknown margins get the tail frequency", func(t *testing.T) {
		assert.InDelta(t, 0.015, table.Frequency(37), 0.0001)
	})

	t.Run("three is the most frequent key number", func(t *testing.T) {
		keys := table.KeyNumbers()
		require.NotEmpty(t, keys)
		assert.Equal(t, 3, keys[0])
	})
}

func TestMoveValue(t *testing.T) {
	table := NewKeyNumberTable()

	t.Run("crossing a key number is worth more than an equal move off-key", func(t *testing.T) {
		acrossThree := table.MoveValue(3.5, 2.5)
		acrossNine := table.MoveValue(9.5, 8.5)
		assert.Greater(t, acrossThree, acrossNine)
	})

	t.Run("direction does not matter", func(t *testing.T) {
		assert.Equal(t, table.MoveValue(2.5, 3.5), table.MoveValue(3.5, 2.5))
	})

	t.Run("no move has no value", func(t *testing.T) {
		assert.Zero(t, table.MoveValue(7.0, 7.0))
	})

	t.Run("landing on the key counts", func(t *testing.T) {
		ontoSeven := table.MoveValue(7.5, 7.0)
		offKey := table.MoveValue(8.0, 7.5)
		assert.Greater(t, ontoSeven, offKey)
	})
}

func TestSpreadFromWinProbability(t *testing.T) {
	assert.InDelta(t, 0.0, SpreadFromWinProbability(0.5), 0.01)
	assert.InDelta(t, 3.0, SpreadFromWinProbability(0.59), 0.01)
	assert.InDelta(t, 7.0, SpreadFromWinProbability(0.72), 0.01)

	t.Run("underdog probability mirrors the favorite spread", func(t *testing.T) {
		assert.InDelta(t, -SpreadFromWinProbability(0.59), SpreadFromWinProbability(0.41), 0.01)
	})

	t.Run("monotone in probability", func(t *testing.T) {
		prev := SpreadFromWinProbability(0.51)
		for p := 0.55; p < 0.95; p += 0.05 {
			cur := SpreadFromWinProbability(p)
			assert.Greater(t, cur, prev, "p=%.2f", p)
			prev = cur
		}
	})
}

func TestNormalizedHomeMargin(t *testing.T) {
	table := NewKeyNumberTable()
	observed := time.Date(2025, 11, 2, 15, 0, 0, 0, time.UTC)

	line := func(spread float64, price int) models.MarketLine {
		return models.MarketLine{GameID: "g1", Spread: spread, SpreadPrice: price, ObservedAt: observed}
	}

	t.Run("standard vig passes the handicap through", func(t *testing.T) {
		assert.InDelta(t, 3.5, table.NormalizedHomeMargin(line(-3.5, -110)), 0.0001)
		assert.InDelta(t, -7.0, table.NormalizedHomeMargin(line(7.0, -110)), 0.0001)
	})

	t.Run("missing price is treated as standard", func(t *testing.T) {
		assert.InDelta(t, 3.5, table.NormalizedHomeMargin(line(-3.5, 0)), 0.0001)
	})

	t.Run("shaded juice shifts the effective line", func(t *testing.T) {
		shifted := table.NormalizedHomeMargin(line(-3.5, -125))
		assert.Greater(t, shifted, 3.5)
		assert.LessOrEqual(t, shifted, 3.5+1.5)
	})

	t.Run("extreme juice is capped", func(t *testing.T) {
		assert.InDelta(t, 3.5+1.5, table.NormalizedHomeMargin(line(-3.5, -250)), 0.0001)
	})

	t.Run("a shade near three converts to fewer points than near nine", func(t *testing.T) {
		nearThree := table.NormalizedHomeMargin(line(-3.0, -120)) - 3.0
		nearNine := table.NormalizedHomeMargin(line(-9.0, -120)) - 9.0
		assert.Greater(t, nearNine, nearThree)
	})

	t.Run("falls back to the moneyline pair", func(t *testing.T) {
		ml := models.MarketLine{GameID: "g1", HomeMoneyline: -180, AwayMoneyline: 160, ObservedAt: observed}
		margin := table.NormalizedHomeMargin(ml)
		assert.Greater(t, margin, 0.0)
		assert.Less(t, margin, 10.0)
	})

	t.Run("moneyline underdog home yields a negative margin", func(t *testing.T) {
		ml := models.MarketLine{GameID: "g1", HomeMoneyline: 160, AwayMoneyline: -180, ObservedAt: observed}
		assert.Less(t, table.NormalizedHomeMargin(ml), 0.0)
	})
}
