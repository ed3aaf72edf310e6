package adjusters

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/config"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/models"
)

func emotional(t *testing.T) *EmotionalAdjuster {
	t.Helper()
	return NewEmotionalAdjuster(config.Default().Adjusters.Emotional)
}

func f64(v float64) *float64 { return &v }
func boolp(v bool) *bool     { return &v }

// fullContext fills every optional field with neutral values so a single
// factor can be isolated per test.
func fullContext() *models.TeamContext {
	return &models.TeamContext{
		RestDays:           7,
		LastMeetingMargin:  f64(3),
		PrevWeekWinMargin:  f64(3),
		PrevOpponentRating: f64(80),
		NextOpponentRating: f64(85),
		InPlayoffRace:      boolp(false),
		Eliminated:         boolp(false),
	}
}

func TestEmotionalNilContextDegrades(t *testing.T) {
	a := emotional(t)
	adj := a.Calculate(nil, 85, 85)
	assert.Zero(t, adj.Points)
	assert.True(t, adj.Incomplete)
}

func TestEmotionalNeutralContextIsZero(t *testing.T) {
	a := emotional(t)
	adj := a.Calculate(fullContext(), 85, 85)
	assert.Zero(t, adj.Points)
	assert.False(t, adj.Incomplete)
}

func TestEmotionalRevenge(t *testing.T) {
	a := emotional(t)

	t.Run("scaled by the size of the prior loss", func(t *testing.T) {
		ctx := fullContext()
		ctx.LastMeetingMargin = f64(-10)
		adj := a.Calculate(ctx, 85, 85)
		assert.InDelta(t, 0.5, adj.Points, 0.0001)
	})

	t.Run("capped for blowout losses", func(t *testing.T) {
		ctx := fullContext()
		ctx.LastMeetingMargin = f64(-35)
		adj := a.Calculate(ctx, 85, 85)
		assert.InDelta(t, 1.0, adj.Points, 0.0001)
	})

	t.Run("a prior win earns nothing", func(t *testing.T) {
		ctx := fullContext()
		ctx.LastMeetingMargin = f64(14)
		adj := a.Calculate(ctx, 85, 85)
		assert.Zero(t, adj.Points)
	})

	t.Run("no meeting history flags incomplete only", func(t *testing.T) {
		ctx := fullContext()
		ctx.LastMeetingMargin = nil
		adj := a.Calculate(ctx, 85, 85)
		assert.Zero(t, adj.Points)
		assert.True(t, adj.Incomplete)
	})
}

func TestEmotionalLookahead(t *testing.T) {
	a := emotional(t)
	ctx := fullContext()
	ctx.NextOpponentRating = f64(92) // marquee game next week

	adj := a.Calculate(ctx, 85, 85) // current opponent rated 85
	assert.InDelta(t, -0.5, adj.Points, 0.0001)

	ctx.NextOpponentRating = f64(88) // gap below the trigger
	adj = a.Calculate(ctx, 85, 85)
	assert.Zero(t, adj.Points)
}

func TestEmotionalLetdown(t *testing.T) {
	a := emotional(t)

	t.Run("blowout over a quality opponent", func(t *testing.T) {
		ctx := fullContext()
		ctx.PrevWeekWinMargin = f64(21)
		ctx.PrevOpponentRating = f64(88)
		adj := a.Calculate(ctx, 85, 85)
		assert.InDelta(t, -0.6, adj.Points, 0.0001)
	})

	t.Run("blowout over a weak opponent is routine", func(t *testing.T) {
		ctx := fullContext()
		ctx.PrevWeekWinMargin = f64(21)
		ctx.PrevOpponentRating = f64(75)
		adj := a.Calculate(ctx, 85, 85)
		assert.Zero(t, adj.Points)
	})
}

func TestEmotionalCoachingChange(t *testing.T) {
	a := emotional(t)

	t.Run("fresh interim hire rallies", func(t *testing.T) {
		ctx := fullContext()
		ctx.Coaching = &models.CoachingChange{Interim: true, WeeksAgo: 1}
		adj := a.Calculate(ctx, 85, 85)
		assert.InDelta(t, 0.5, adj.Points, 0.0001)
	})

	t.Run("the interim bump fades", func(t *testing.T) {
		ctx := fullContext()
		ctx.Coaching = &models.CoachingChange{Interim: true, WeeksAgo: 5}
		adj := a.Calculate(ctx, 85, 85)
		assert.InDelta(t, -0.3, adj.Points, 0.0001)
	})

	t.Run("permanent hires get half the early bump", func(t *testing.T) {
		ctx := fullContext()
		ctx.Coaching = &models.CoachingChange{Interim: false, WeeksAgo: 1}
		adj := a.Calculate(ctx, 85, 85)
		assert.InDelta(t, 0.25, adj.Points, 0.0001)
	})
}

func TestEmotionalPlayoffStakes(t *testing.T) {
	a := emotional(t)

	t.Run("in the race", func(t *testing.T) {
		ctx := fullContext()
		ctx.InPlayoffRace = boolp(true)
		adj := a.Calculate(ctx, 85, 85)
		assert.InDelta(t, 0.5, adj.Points, 0.0001)
	})

	t.Run("eliminated", func(t *testing.T) {
		ctx := fullContext()
		ctx.Eliminated = boolp(true)
		adj := a.Calculate(ctx, 85, 85)
		assert.InDelta(t, -0.75, adj.Points, 0.0001)
	})

	t.Run("no standings feed sits the factor out", func(t *testing.T) {
		ctx := fullContext()
		ctx.InPlayoffRace = nil
		adj := a.Calculate(ctx, 85, 85)
		assert.Zero(t, adj.Points)
		assert.True(t, adj.Incomplete)
	})
}

func TestEmotionalStreaks(t *testing.T) {
	a := emotional(t)

	t.Run("winning streak confidence is capped", func(t *testing.T) {
		ctx := fullContext()
		ctx.WinStreak = 3
		adj := a.Calculate(ctx, 85, 85)
		assert.InDelta(t, 0.3, adj.Points, 0.0001)

		ctx.WinStreak = 9
		adj = a.Calculate(ctx, 85, 85)
		assert.InDelta(t, 0.5, adj.Points, 0.0001)
	})

	t.Run("a short losing streak sharpens effort", func(t *testing.T) {
		ctx := fullContext()
		ctx.LossStreak = 3
		adj := a.Calculate(ctx, 85, 85)
		assert.InDelta(t, 0.4, adj.Points, 0.0001)
	})

	t.Run("a long losing streak reads as collapse", func(t *testing.T) {
		ctx := fullContext()
		ctx.LossStreak = 6
		adj := a.Calculate(ctx, 85, 85)
		assert.InDelta(t, -0.5, adj.Points, 0.0001)
	})
}

func TestEmotionalFactorsSumAndOffset(t *testing.T) {
	a := emotional(t)
	ctx := fullContext()
	ctx.LastMeetingMargin = f64(-10) // +0.5 revenge
	ctx.Eliminated = boolp(true)     // -0.75 stakes

	adj := a.Calculate(ctx, 85, 85)
	assert.InDelta(t, -0.25, adj.Points, 0.0001)
	assert.Len(t, adj.Detail, 2)
}
