// Package staking sizes classified edges with fractional Kelly under
// per-bet and weekly exposure caps. Caps clamp rather than reject: partial
// participation beats silently discarding a profitable opportunity.
package staking

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/config"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/logger"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/market"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/metrics"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/models"
)

// Decision is the sized outcome for one edge.
type Decision struct {
	Edge           models.Edge     `json:"edge"`
	WinProbability float64         `json:"win_probability"`
	FullKelly      float64         `json:"full_kelly"`
	Stake          decimal.Decimal `json:"stake"`
	Fraction       float64         `json:"fraction"` // stake as a share of bankroll
	Clamped        bool            `json:"clamped"`
	Reason         string          `json:"reason,omitempty"`
}

// Sizer converts classified edges into stakes.
type Sizer struct {
	cfg     config.StakingConfig
	bands   []config.BandConfig
	tracker *ExposureTracker
	audit   *logger.AuditLogger
}

// NewSizer creates a sizer sharing one exposure tracker per bankroll scope.
// audit may be nil.
func NewSizer(cfg config.StakingConfig, bands []config.BandConfig, tracker *ExposureTracker, audit *logger.AuditLogger) *Sizer {
	return &Sizer{cfg: cfg, bands: bands, tracker: tracker, audit: audit}
}

// Size computes the recommended stake for one edge against the bankroll.
// The win probability comes from the classification band's empirical table;
// the payout uses the quoted spread price when available, standard vig
// otherwise. The result honors the per-bet cap and the weekly cumulative
// cap in that order.
func (s *Sizer) Size(edge models.Edge, bankroll decimal.Decimal) Decision {
	d := Decision{Edge: edge, Stake: decimal.Zero}

	if !edge.Playable() {
		d.Reason = "no_play"
		return d
	}

	band, ok := s.band(edge.Classification)
	if !ok {
		d.Reason = "unknown_band"
		return d
	}
	d.WinProbability = band.WinRate

	price := edge.Market.SpreadPrice
	if price == 0 {
		price = market.StandardVig
	}
	b := market.NetOdds(price)
	p := band.WinRate
	q := 1.0 - p

	full := (b*p - q) / b
	d.FullKelly = full
	if full <= 0 {
		d.Reason = "negative_kelly"
		return d
	}

	fraction := band.KellyFraction
	if fraction == 0 {
		fraction = s.cfg.KellyFraction
	}

	stake := bankroll.Mul(decimal.NewFromFloat(full * fraction))

	// Per-bet cap.
	perBetCap := bankroll.Mul(decimal.NewFromFloat(s.cfg.PerBetCapPct))
	if stake.GreaterThan(perBetCap) {
		d.Clamped = true
		d.Reason = "per_bet_cap"
		if s.audit != nil {
			s.audit.LogStakeClamp(edge.ID.String(), stake.InexactFloat64(), perBetCap.InexactFloat64(), d.Reason)
		}
		metrics.RecordStakeClamp(d.Reason)
		stake = perBetCap
	}

	// Weekly cumulative cap, compare-and-cap-then-commit.
	weeklyCap := bankroll.Mul(decimal.NewFromFloat(s.cfg.WeeklyCapPct))
	granted := s.tracker.Reserve(edge.Game.Week, stake, weeklyCap)
	if granted.LessThan(stake) {
		d.Clamped = true
		d.Reason = "weekly_cap"
		if s.audit != nil {
			s.audit.LogStakeClamp(edge.ID.String(), stake.InexactFloat64(), granted.InexactFloat64(), d.Reason)
		}
		metrics.RecordStakeClamp(d.Reason)
		stake = granted
	}

	if stake.LessThan(decimal.NewFromFloat(s.cfg.MinStake)) {
		s.tracker.Release(edge.Game.Week, stake)
		d.Stake = decimal.Zero
		d.Reason = "below_min_stake"
		return d
	}

	d.Stake = stake.Round(2)
	if bankroll.IsPositive() {
		d.Fraction = d.Stake.Div(bankroll).InexactFloat64()
	}
	return d
}

// SizeSlate sizes multiple simultaneous candidates in deterministic
// descending edge-strength order, so the strongest plays are never starved
// of weekly allowance by arrival order. Ties break on game ID.
func (s *Sizer) SizeSlate(edges []models.Edge, bankroll decimal.Decimal) []Decision {
	ordered := make([]models.Edge, len(edges))
	copy(ordered, edges)
	sort.SliceStable(ordered, func(i, j int) bool {
		ei, ej := math.Abs(ordered[i].EdgePoints), math.Abs(ordered[j].EdgePoints)
		if ei != ej {
			return ei > ej
		}
		return ordered[i].Game.ID < ordered[j].Game.ID
	})

	decisions := make([]Decision, 0, len(ordered))
	for _, e := range ordered {
		decisions = append(decisions, s.Size(e, bankroll))
	}
	return decisions
}

// FullKelly computes the raw Kelly fraction (b·p − q)/b for quoted American
// odds and a win probability.
func FullKelly(price int, p float64) float64 {
	b := market.NetOdds(price)
	if b == 0 {
		return 0
	}
	return (b*p - (1.0 - p)) / b
}

func (s *Sizer) band(class models.Classification) (config.BandConfig, bool) {
	for _, b := range s.bands {
		if b.Label == string(class) {
			return b, true
		}
	}
	return config.BandConfig{}, false
}
