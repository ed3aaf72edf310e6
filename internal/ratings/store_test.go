package ratings

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/config"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	cfg := config.Default()
	return NewStore(cfg.Ratings, cfg.Leagues, nil)
}

func nflTeam(id string) models.Team {
	return models.Team{ID: id, Name: id, League: models.LeagueNFL}
}

func TestRatingUnknownTeamFallsBackToLeagueDefault(t *testing.T) {
	s := testStore(t)

	assert.Equal(t, 85.0, s.Rating(nflTeam("KC")))
	assert.Equal(t, 80.0, s.Rating(models.Team{ID: "UGA", League: models.LeagueNCAAF}))
	assert.Zero(t, s.Rating(models.Team{ID: "x", League: "XFL"}))
}

func TestSeedAndRating(t *testing.T) {
	s := testStore(t)
	team := nflTeam("BUF")

	s.Seed(team, 92.5)
	assert.Equal(t, 92.5, s.Rating(team))

	// Seeding never consumes the weekly update.
	after, applied := s.Update(team, 5, 80.0)
	assert.True(t, applied)
	assert.InDelta(t, 0.90*92.5+0.10*80.0, after, 0.0001)
}

func TestUpdateExponentialForm(t *testing.T) {
	s := testStore(t)
	team := nflTeam("PHI")
	s.Seed(team, 90.0)

	after, applied := s.Update(team, 3, 100.0)
	require.True(t, applied)
	assert.InDelta(t, 91.0, after, 0.0001)
	assert.InDelta(t, 91.0, s.Rating(team), 0.0001)
}

func TestUpdateIdempotentPerWeek(t *testing.T) {
	s := testStore(t)
	team := nflTeam("DAL")
	s.Seed(team, 88.0)

	first, applied := s.Update(team, 7, 95.0)
	require.True(t, applied)

	// A duplicate feed for the same week is a no-op, not cumulative.
	second, applied := s.Update(team, 7, 95.0)
	assert.False(t, applied)
	assert.Equal(t, first, second)

	third, applied := s.Update(team, 8, 95.0)
	assert.True(t, applied)
	assert.NotEqual(t, second, third)
}

func TestUpdateSeedsUnknownTeamFromPerformance(t *testing.T) {
	s := testStore(t)
	team := nflTeam("DET")

	after, applied := s.Update(team, 1, 87.0)
	assert.True(t, applied)
	assert.Equal(t, 87.0, after)

	// The seeding call consumed week 1.
	_, applied = s.Update(team, 1, 95.0)
	assert.False(t, applied)
}

func TestEnhance(t *testing.T) {
	s := testStore(t)
	team := nflTeam("BAL")
	s.Seed(team, 90.0)

	t.Run("nil stats yield the base rating", func(t *testing.T) {
		assert.Equal(t, 90.0, s.Enhance(team, nil))
	})

	t.Run("efficiency layers on without mutating the base", func(t *testing.T) {
		stats := &models.SeasonStats{
			TeamID:         "BAL",
			PointsPerGame:  28.0, // +6 vs league average 22
			PointsAllowed:  18.0, // -4 vs league average 22
			TurnoverMargin: 0.5,
		}
		enhanced := s.Enhance(team, stats)
		assert.InDelta(t, 90.0+0.15*6.0+0.15*4.0+0.30*0.5, enhanced, 0.0001)
		assert.Equal(t, 90.0, s.Rating(team))
	})

	t.Run("league-average stats change nothing", func(t *testing.T) {
		stats := &models.SeasonStats{PointsPerGame: 22.0, PointsAllowed: 22.0}
		assert.InDelta(t, 90.0, s.Enhance(team, stats), 0.0001)
	})
}

func TestSnapshot(t *testing.T) {
	s := testStore(t)
	s.Seed(nflTeam("KC"), 95.0)
	s.Seed(nflTeam("NYJ"), 78.0)

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, 95.0, snap["KC"])

	// The snapshot is a copy.
	snap["KC"] = 0
	assert.Equal(t, 95.0, s.Rating(nflTeam("KC")))
}

func TestConcurrentUpdatesHoldTheWeeklyInvariant(t *testing.T) {
	s := testStore(t)
	team := nflTeam("SF")
	s.Seed(team, 90.0)

	var wg sync.WaitGroup
	appliedCount := make(chan bool, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, applied := s.Update(team, 4, 100.0)
			appliedCount <- applied
		}()
	}
	wg.Wait()
	close(appliedCount)

	applied := 0
	for a := range appliedCount {
		if a {
			applied++
		}
	}
	assert.Equal(t, 1, applied)
	assert.InDelta(t, 91.0, s.Rating(team), 0.0001)
}
