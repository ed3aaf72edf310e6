package staking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/config"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/logger"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/metrics"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/models"
)

func testSizer(t *testing.T) (*Sizer, *ExposureTracker) {
	t.Helper()
	cfg := config.Default()
	tracker := NewExposureTracker()
	return NewSizer(cfg.Staking, cfg.Detector.Bands, tracker, nil), tracker
}

func classifiedEdge(gameID string, week int, points float64, class models.Classification) models.Edge {
	return models.Edge{
		ID:             uuid.NewSHA1(uuid.NameSpaceOID, []byte(gameID)),
		Game:           models.Game{ID: gameID, League: models.LeagueNFL, Week: week},
		Market:         models.MarketLine{GameID: gameID, Spread: -3.5, SpreadPrice: -110, ObservedAt: time.Now()},
		EdgePoints:     points,
		Classification: class,
		Side:           models.SideFavorite,
	}
}

func TestSizeNoPlayGetsNoStake(t *testing.T) {
	s, _ := testSizer(t)
	d := s.Size(classifiedEdge("g1", 1, 12.0, models.ClassNoPlay), decimal.NewFromInt(10000))
	assert.True(t, d.Stake.IsZero())
	assert.Equal(t, "no_play", d.Reason)
}

func TestSizeUsesTheBandWinRate(t *testing.T) {
	s, _ := testSizer(t)
	d := s.Size(classifiedEdge("g1", 1, 2.0, models.ClassLean), decimal.NewFromInt(10000))

	assert.Equal(t, 0.54, d.WinProbability)
	assert.InDelta(t, FullKelly(-110, 0.54), d.FullKelly, 0.0001)
	assert.True(t, d.Stake.IsPositive())
}

func TestSizePerBetCap(t *testing.T) {
	s, _ := testSizer(t)
	bankroll := decimal.NewFromInt(10000)

	// A MAX_BET edge wants far more than 3% of bankroll at quarter-ish
	// fractions; the per-bet ceiling clamps it.
	d := s.Size(classifiedEdge("g1", 1, 6.0, models.ClassMaxBet), bankroll)

	assert.True(t, d.Clamped)
	assert.Equal(t, "per_bet_cap", d.Reason)
	assert.True(t, d.Stake.Equal(decimal.NewFromInt(300)), "stake %s", d.Stake)
	assert.InDelta(t, 0.03, d.Fraction, 0.0001)
}

func TestSizePerBetClampLeavesAnAuditTrail(t *testing.T) {
	cfg := config.Default()
	base, hook := logtest.NewNullLogger()
	s := NewSizer(cfg.Staking, cfg.Detector.Bands, NewExposureTracker(), logger.NewAuditLogger(base))

	before := testutil.ToFloat64(metrics.StakeClampsTotal.WithLabelValues("per_bet_cap"))
	d := s.Size(classifiedEdge("g1", 1, 6.0, models.ClassMaxBet), decimal.NewFromInt(10000))

	require.True(t, d.Clamped)
	require.Equal(t, "per_bet_cap", d.Reason)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.StakeClampsTotal.WithLabelValues("per_bet_cap")))

	require.NotEmpty(t, hook.Entries)
	entry := hook.LastEntry()
	assert.Equal(t, "per_bet_cap", entry.Data["reason"])
	assert.Equal(t, 300.0, entry.Data["granted"])
}

func TestSizeWeeklyCapClampsNotRejects(t *testing.T) {
	s, tracker := testSizer(t)
	bankroll := decimal.NewFromInt(10000) // weekly cap 1500, per-bet 300

	var total decimal.Decimal
	for i := 0; i < 4; i++ {
		d := s.Size(classifiedEdge(string(rune('a'+i)), 3, 6.0, models.ClassMaxBet), bankroll)
		require.True(t, d.Stake.Equal(decimal.NewFromInt(300)))
		total = total.Add(d.Stake)
	}

	// Fifth bet takes the last full allowance; sixth gets nothing.
	fifth := s.Size(classifiedEdge("e", 3, 6.0, models.ClassMaxBet), bankroll)
	assert.True(t, fifth.Stake.Equal(decimal.NewFromInt(300)))
	total = total.Add(fifth.Stake)

	sixth := s.Size(classifiedEdge("f", 3, 6.0, models.ClassMaxBet), bankroll)
	assert.True(t, sixth.Stake.IsZero())
	assert.True(t, sixth.Clamped)

	assert.True(t, total.Equal(decimal.NewFromInt(1500)))
	assert.True(t, tracker.Reserved(3).Equal(decimal.NewFromInt(1500)))
}

func TestSizePartialGrantNearTheWeeklyCap(t *testing.T) {
	s, tracker := testSizer(t)
	bankroll := decimal.NewFromInt(10000)

	// Pre-commit most of the week's allowance.
	tracker.Reserve(5, decimal.NewFromInt(1400), decimal.NewFromInt(1500))

	d := s.Size(classifiedEdge("g1", 5, 6.0, models.ClassMaxBet), bankroll)
	assert.True(t, d.Clamped)
	assert.Equal(t, "weekly_cap", d.Reason)
	assert.True(t, d.Stake.Equal(decimal.NewFromInt(100)), "stake %s", d.Stake)
}

func TestSizeBelowMinStakeReleasesTheReservation(t *testing.T) {
	s, tracker := testSizer(t)
	bankroll := decimal.NewFromInt(10000)

	granted := tracker.Reserve(6, decimal.NewFromFloat(1499.80), decimal.NewFromInt(1500))
	require.True(t, granted.Equal(decimal.NewFromFloat(1499.80)))

	d := s.Size(classifiedEdge("g1", 6, 6.0, models.ClassMaxBet), bankroll)
	assert.True(t, d.Stake.IsZero())
	assert.Equal(t, "below_min_stake", d.Reason)

	// The sliver went back to the weekly allowance.
	assert.True(t, tracker.Reserved(6).Equal(decimal.NewFromFloat(1499.80)))
}

func TestSizeEachWeekHasItsOwnAllowance(t *testing.T) {
	s, tracker := testSizer(t)
	bankroll := decimal.NewFromInt(10000)

	for i := 0; i < 5; i++ {
		s.Size(classifiedEdge(string(rune('a'+i)), 7, 6.0, models.ClassMaxBet), bankroll)
	}
	require.True(t, tracker.Reserved(7).Equal(decimal.NewFromInt(1500)))

	d := s.Size(classifiedEdge("z", 8, 6.0, models.ClassMaxBet), bankroll)
	assert.True(t, d.Stake.Equal(decimal.NewFromInt(300)))
}

func TestSizeInterleavedWeeksKeepTheirCaps(t *testing.T) {
	s, tracker := testSizer(t)
	bankroll := decimal.NewFromInt(10000) // weekly cap 1500, per-bet 300

	var week10 decimal.Decimal
	for i := 0; i < 5; i++ {
		d := s.Size(classifiedEdge(string(rune('a'+i)), 10, 6.0, models.ClassMaxBet), bankroll)
		week10 = week10.Add(d.Stake)
	}
	require.True(t, tracker.Reserved(10).Equal(decimal.NewFromInt(1500)))

	// A bet in the following week draws on its own allowance and must not
	// reopen week 10's.
	next := s.Size(classifiedEdge("next", 11, 6.0, models.ClassMaxBet), bankroll)
	assert.True(t, next.Stake.Equal(decimal.NewFromInt(300)))

	for i := 0; i < 5; i++ {
		d := s.Size(classifiedEdge(string(rune('p'+i)), 10, 6.0, models.ClassMaxBet), bankroll)
		week10 = week10.Add(d.Stake)
		assert.True(t, d.Stake.IsZero(), "stake %s", d.Stake)
	}

	assert.True(t, week10.Equal(decimal.NewFromInt(1500)), "week 10 accepted %s", week10)
	assert.True(t, tracker.Reserved(10).Equal(decimal.NewFromInt(1500)))
	assert.True(t, tracker.Reserved(11).Equal(decimal.NewFromInt(300)))
}

func TestSizeSlateSpanningWeeksHonorsEachWeeklyCap(t *testing.T) {
	s, tracker := testSizer(t)
	bankroll := decimal.NewFromInt(10000)

	// Strength ordering interleaves the two weeks, so the sizer sees them
	// out of week order.
	var edges []models.Edge
	for i := 0; i < 6; i++ {
		edges = append(edges, classifiedEdge(string(rune('a'+i)), 10, 9.0-float64(i), models.ClassMaxBet))
	}
	edges = append(edges,
		classifiedEdge("x", 11, 8.5, models.ClassMaxBet),
		classifiedEdge("y", 11, 6.5, models.ClassMaxBet),
	)

	totals := map[int]decimal.Decimal{}
	for _, d := range s.SizeSlate(edges, bankroll) {
		totals[d.Edge.Game.Week] = totals[d.Edge.Game.Week].Add(d.Stake)
	}

	assert.True(t, totals[10].Equal(decimal.NewFromInt(1500)), "week 10 total %s", totals[10])
	assert.True(t, totals[11].Equal(decimal.NewFromInt(600)), "week 11 total %s", totals[11])
	assert.True(t, tracker.Reserved(10).Equal(decimal.NewFromInt(1500)))
	assert.True(t, tracker.Reserved(11).Equal(decimal.NewFromInt(600)))
}

func TestSizeSlateOrdersByEdgeStrength(t *testing.T) {
	s, _ := testSizer(t)
	bankroll := decimal.NewFromInt(10000)

	edges := []models.Edge{
		classifiedEdge("weak", 2, 2.0, models.ClassLean),
		classifiedEdge("strongest", 2, -6.0, models.ClassMaxBet),
		classifiedEdge("middle", 2, 4.5, models.ClassStrong),
	}

	decisions := s.SizeSlate(edges, bankroll)
	require.Len(t, decisions, 3)
	assert.Equal(t, "strongest", decisions[0].Edge.Game.ID)
	assert.Equal(t, "middle", decisions[1].Edge.Game.ID)
	assert.Equal(t, "weak", decisions[2].Edge.Game.ID)
}

func TestSizeSlateTieBreaksOnGameID(t *testing.T) {
	s, _ := testSizer(t)
	bankroll := decimal.NewFromInt(10000)

	edges := []models.Edge{
		classifiedEdge("bbb", 2, 4.5, models.ClassStrong),
		classifiedEdge("aaa", 2, -4.5, models.ClassStrong),
	}

	first := s.SizeSlate(edges, bankroll)
	second := s.SizeSlate([]models.Edge{edges[1], edges[0]}, bankroll)
	assert.Equal(t, "aaa", first[0].Edge.Game.ID)
	assert.Equal(t, "aaa", second[0].Edge.Game.ID)
}

func TestSizeSlateStrongestNeverStarved(t *testing.T) {
	s, _ := testSizer(t)
	bankroll := decimal.NewFromInt(10000)

	// Six max-size candidates arrive weakest-first; the weekly cap still
	// goes to the strongest five.
	var edges []models.Edge
	for i := 0; i < 6; i++ {
		edges = append(edges, classifiedEdge(string(rune('a'+i)), 4, 6.0+float64(i), models.ClassMaxBet))
	}

	decisions := s.SizeSlate(edges, bankroll)
	require.Len(t, decisions, 6)
	for i := 0; i < 5; i++ {
		assert.True(t, decisions[i].Stake.IsPositive(), "decision %d", i)
	}
	assert.True(t, decisions[5].Stake.IsZero())
	assert.Equal(t, "a", decisions[5].Edge.Game.ID)
}

func TestFullKelly(t *testing.T) {
	// b = 10/11 at -110: f = (b*p - q)/b.
	assert.InDelta(t, 0.045, FullKelly(-110, 0.545), 0.0005)
	assert.InDelta(t, 0.10, FullKelly(100, 0.55), 0.0001)
	assert.Negative(t, FullKelly(-110, 0.50))
}

func TestSizeNegativeKellySitsOut(t *testing.T) {
	cfg := config.Default()
	bands := []config.BandConfig{{MinEdge: 1.5, Label: "LEAN", WinRate: 0.51, KellyFraction: 0.25}}
	s := NewSizer(cfg.Staking, bands, NewExposureTracker(), nil)

	// 51% at -110 loses to the vig.
	d := s.Size(classifiedEdge("g1", 1, 2.0, models.ClassLean), decimal.NewFromInt(10000))
	assert.True(t, d.Stake.IsZero())
	assert.Equal(t, "negative_kelly", d.Reason)
}
