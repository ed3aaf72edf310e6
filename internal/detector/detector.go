// Package detector composes power ratings, the four adjustment layers and
// the home-field constant into a predicted line, compares it against the
// normalized market line, and classifies the result into strength bands.
package detector

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/config"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/logger"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/market"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/models"
)

// edgeNamespace seeds deterministic edge IDs so identical inputs always
// produce an identical Edge.
var edgeNamespace = uuid.MustParse("60d3c1ff-5dbb-4f2a-9df0-7a2c08f2f3a1")

// Input is one (game, market snapshot) evaluation request. Powers are the
// enhanced ratings; the adjustment sets come from the four calculators.
type Input struct {
	Game            models.Game
	Market          models.MarketLine
	HomePower       float64
	AwayPower       float64
	HomeAdjustments models.AdjustmentSet
	AwayAdjustments models.AdjustmentSet
}

// Detector classifies edges. Evaluation is pure and idempotent: identical
// inputs always yield an identical Edge.
type Detector struct {
	cfg     config.DetectorConfig
	leagues map[string]config.LeagueConfig
	keys    *market.KeyNumberTable
	log     *logger.EdgeLogger
}

// New creates a detector. log may be nil.
func New(cfg config.DetectorConfig, leagues map[string]config.LeagueConfig, keys *market.KeyNumberTable, log *logger.EdgeLogger) *Detector {
	return &Detector{cfg: cfg, leagues: leagues, keys: keys, log: log}
}

// Evaluate computes and classifies the edge for one game against one market
// snapshot. The returned Edge is stamped with the snapshot's observation
// time, never cached, and carries the full per-component adjustment audit
// trail.
func (d *Detector) Evaluate(in Input) (models.Edge, error) {
	lc, ok := d.leagues[string(in.Game.League)]
	if !ok {
		return models.Edge{}, fmt.Errorf("evaluate game %s: %w: %s", in.Game.ID, models.ErrUnknownLeague, in.Game.League)
	}
	if in.Market.GameID == "" {
		return models.Edge{}, fmt.Errorf("evaluate game %s: %w", in.Game.ID, models.ErrMissingMarket)
	}

	predicted := (in.HomePower + in.HomeAdjustments.Total()) -
		(in.AwayPower + in.AwayAdjustments.Total()) +
		lc.HomeFieldConstant
	marketMargin := d.keys.NormalizedHomeMargin(in.Market)
	edgePoints := predicted - marketMargin

	e := models.Edge{
		ID:              deterministicID(in.Game.ID, in.Market),
		Game:            in.Game,
		Market:          in.Market,
		PredictedLine:   predicted,
		MarketLine:      marketMargin,
		EdgePoints:      edgePoints,
		HomeAdjustments: in.HomeAdjustments,
		AwayAdjustments: in.AwayAdjustments,
		DataIncomplete:  in.HomeAdjustments.Incomplete() || in.AwayAdjustments.Incomplete(),
		EvaluatedAt:     in.Market.ObservedAt,
	}

	e.Side, e.SideTeam = resolveSide(in.Game, marketMargin, edgePoints)
	e.Classification = d.classify(lc, edgePoints)

	// Market-respect guard: a disagreement this large more likely means a
	// bad input than a real opportunity.
	if math.Abs(edgePoints) > d.cfg.MarketRespectCeiling {
		e.Classification = models.ClassNoPlay
		e.Warnings = append(e.Warnings, fmt.Sprintf(
			"edge %.1f exceeds market-respect ceiling %.1f; likely data error",
			edgePoints, d.cfg.MarketRespectCeiling))
		if d.log != nil {
			d.log.LogImplausibleEdge(in.Game.ID, edgePoints, d.cfg.MarketRespectCeiling)
		}
	}

	if d.log != nil {
		d.log.LogEdgeDetection(in.Game.ID, string(in.Game.League), string(e.Side),
			predicted, marketMargin, edgePoints, string(e.Classification), e.DataIncomplete)
	}
	return e, nil
}

// Band returns the configured band row for a classification label, used by
// the stake sizer for empirical win rates.
func (d *Detector) Band(class models.Classification) (config.BandConfig, bool) {
	for _, b := range d.cfg.Bands {
		if b.Label == string(class) {
			return b, true
		}
	}
	return config.BandConfig{}, false
}

// classify walks the ordered band table: the strongest band whose lower
// bound the absolute edge clears wins, subject to the per-league minimum.
func (d *Detector) classify(lc config.LeagueConfig, edgePoints float64) models.Classification {
	abs := math.Abs(edgePoints)
	if abs < lc.MinEdgeThreshold {
		return models.ClassNoPlay
	}
	class := models.ClassNoPlay
	for _, b := range d.cfg.Bands {
		if abs >= b.MinEdge {
			class = models.Classification(b.Label)
		}
	}
	return class
}

// resolveSide maps the edge sign onto the market favorite or underdog and
// names the team the recommendation backs.
func resolveSide(game models.Game, marketMargin, edgePoints float64) (models.BetSide, string) {
	homeIsFavorite := marketMargin > 0 || (marketMargin == 0 && edgePoints > 0)

	if edgePoints > 0 {
		// Model likes the home side more than the market does.
		if homeIsFavorite {
			return models.SideFavorite, game.Home.ID
		}
		return models.SideUnderdog, game.Home.ID
	}
	if homeIsFavorite {
		return models.SideUnderdog, game.Away.ID
	}
	return models.SideFavorite, game.Away.ID
}

func deterministicID(gameID string, line models.MarketLine) uuid.UUID {
	seed := fmt.Sprintf("%s|%.2f|%d|%d|%d|%d", gameID, line.Spread, line.SpreadPrice,
		line.HomeMoneyline, line.AwayMoneyline, line.ObservedAt.UnixNano())
	return uuid.NewSHA1(edgeNamespace, []byte(seed))
}
