// Package analyzer orchestrates the handicapping pipeline: power ratings
// plus the four adjustment layers feed the edge detector, classified edges
// feed the Kelly sizer, and accepted bets feed the CLV tracker. Evaluation
// across games is embarrassingly parallel; everything here reads pre-fetched
// snapshots and performs no I/O.
package analyzer

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/adjusters"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/clv"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/config"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/detector"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/logger"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/market"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/metrics"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/models"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/providers"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/ratings"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/staking"
)

// Analyzer wires the full pipeline for one bankroll scope.
type Analyzer struct {
	cfg         *config.Config
	ratings     *ratings.Store
	bundle      providers.Bundle
	situational *adjusters.SituationalAdjuster
	weather     *adjusters.WeatherAdjuster
	emotional   *adjusters.EmotionalAdjuster
	injury      *adjusters.InjuryImpactCalculator
	detector    *detector.Detector
	sizer       *staking.Sizer
	exposure    *staking.ExposureTracker
	clv         *clv.Tracker
	log         *logrus.Logger
	edgeLog     *logger.EdgeLogger
	audit       *logger.AuditLogger
}

// New assembles an analyzer from configuration, a rating store and a
// provider bundle.
func New(cfg *config.Config, store *ratings.Store, bundle providers.Bundle, log *logrus.Logger) *Analyzer {
	edgeLog := logger.NewEdgeLogger(log)
	audit := logger.NewAuditLogger(log)
	keys := market.NewKeyNumberTable()
	exposure := staking.NewExposureTracker()

	return &Analyzer{
		cfg:         cfg,
		ratings:     store,
		bundle:      bundle,
		situational: adjusters.NewSituationalAdjuster(cfg.Adjusters.Situational),
		weather:     adjusters.NewWeatherAdjuster(cfg.Adjusters.Weather),
		emotional:   adjusters.NewEmotionalAdjuster(cfg.Adjusters.Emotional),
		injury:      adjusters.NewInjuryImpactCalculator(cfg.Adjusters.Injury),
		detector:    detector.New(cfg.Detector, cfg.Leagues, keys, edgeLog),
		sizer:       staking.NewSizer(cfg.Staking, cfg.Detector.Bands, exposure, audit),
		exposure:    exposure,
		clv:         clv.NewTracker(keys, audit),
		log:         log,
		edgeLog:     edgeLog,
		audit:       audit,
	}
}

// CLV exposes the tracker for reporting consumers.
func (a *Analyzer) CLV() *clv.Tracker {
	return a.clv
}

// EvaluateGame computes a fresh Edge for one game against its latest market
// snapshot. Missing optional provider data degrades the affected layers to
// zero; a missing market snapshot is the one input there is no edge without.
func (a *Analyzer) EvaluateGame(game models.Game) (models.Edge, error) {
	line, ok := a.bundle.MarketLine(game.ID)
	if !ok {
		return models.Edge{}, fmt.Errorf("game %s: %w", game.ID, models.ErrMissingMarket)
	}

	lc, err := a.cfg.League(string(game.League))
	if err != nil {
		return models.Edge{}, err
	}

	homeStats, _ := a.bundle.SeasonStats(game.Home.ID)
	awayStats, _ := a.bundle.SeasonStats(game.Away.ID)
	homePower := a.ratings.Enhance(game.Home, homeStats)
	awayPower := a.ratings.Enhance(game.Away, awayStats)

	homeAdj := a.adjustmentsFor(game, game.Home, true, homePower, awayPower, lc)
	awayAdj := a.adjustmentsFor(game, game.Away, false, awayPower, homePower, lc)

	edge, err := a.detector.Evaluate(detector.Input{
		Game:            game,
		Market:          *line,
		HomePower:       homePower,
		AwayPower:       awayPower,
		HomeAdjustments: homeAdj,
		AwayAdjustments: awayAdj,
	})
	if err != nil {
		return models.Edge{}, err
	}

	metrics.RecordEdge(string(game.League), string(edge.Classification), edge.EdgePoints, edge.DataIncomplete)
	if len(edge.Warnings) > 0 {
		metrics.RecordImplausibleEdge()
	}
	return edge, nil
}

// EvaluateSlate evaluates a week's games and sizes the playable edges in
// deterministic descending edge-strength order against one bankroll.
func (a *Analyzer) EvaluateSlate(games []models.Game, bankroll decimal.Decimal) []staking.Decision {
	var edges []models.Edge
	for _, game := range games {
		edge, err := a.EvaluateGame(game)
		if err != nil {
			a.log.WithError(err).WithField("game_id", game.ID).Warn("Skipping game")
			continue
		}
		edges = append(edges, edge)
	}

	decisions := a.sizer.SizeSlate(edges, bankroll)

	metrics.CurrentBankroll.Set(bankroll.InexactFloat64())
	if len(games) > 0 {
		metrics.WeeklyExposure.Set(a.exposure.Reserved(games[0].Week).InexactFloat64())
	}
	return decisions
}

// PlaceBet materializes a sized decision into a Bet and registers it with
// the CLV tracker. Returns nil when the decision carries no stake.
func (a *Analyzer) PlaceBet(d staking.Decision, now time.Time) *models.Bet {
	if d.Stake.IsZero() {
		return nil
	}

	openingOdds := d.Edge.Market.SpreadPrice
	if openingOdds == 0 {
		openingOdds = market.StandardVig
	}

	bet := &models.Bet{
		ID:          uuid.New(),
		Edge:        d.Edge,
		Side:        d.Edge.Side,
		Stake:       d.Stake,
		OpeningLine: favoriteHandicap(d.Edge.Market),
		OpeningOdds: openingOdds,
		Result:      models.ResultPending,
		PlacedAt:    now,
	}
	a.clv.Open(bet)

	a.audit.LogBetPlacement(bet.ID.String(), bet.Edge.Game.ID, string(bet.Side),
		string(bet.Edge.Classification), bet.Stake.InexactFloat64(), bet.OpeningLine, bet.OpeningOdds, now)
	metrics.RecordBetPlaced(d.Fraction)
	return bet
}

// CloseBet captures the closing line for a placed bet from a late market
// snapshot.
func (a *Analyzer) CloseBet(bet *models.Bet, closing models.MarketLine, now time.Time) error {
	line := favoriteHandicap(closing)
	odds := closing.SpreadPrice
	if odds == 0 {
		odds = market.StandardVig
	}

	bet.ClosingLine = &line
	bet.ClosingOdds = &odds
	bet.ClosedAt = &now
	return a.clv.Close(bet.ID, line, odds, now)
}

// SettleBet grades a bet and records profit or loss. Winning bets pay at
// the opening odds; pushes return the stake.
func (a *Analyzer) SettleBet(bet *models.Bet, result models.BetResult, now time.Time) error {
	if bet.IsSettled() {
		return fmt.Errorf("settle %s: %w", bet.ID, models.ErrBetAlreadySettled)
	}

	var pl decimal.Decimal
	switch result {
	case models.ResultWin:
		pl = bet.Stake.Mul(decimal.NewFromFloat(market.NetOdds(bet.OpeningOdds)))
	case models.ResultLoss:
		pl = bet.Stake.Neg()
	case models.ResultPush:
		pl = decimal.Zero
	default:
		return fmt.Errorf("settle %s: invalid result %q", bet.ID, result)
	}

	bet.Result = result
	bet.ProfitLoss = &pl
	bet.SettledAt = &now

	if err := a.clv.Settle(bet.ID, result, pl); err != nil {
		return err
	}
	metrics.RecordBetSettled()
	metrics.MeanCLV.Set(a.clv.Summarize().MeanCLV)
	return nil
}

// UpdateRating applies the weekly power-rating update through the keyed
// store, preserving its once-per-week idempotence.
func (a *Analyzer) UpdateRating(team models.Team, week int, performance float64) (float64, bool) {
	before := a.ratings.Rating(team)
	after, applied := a.ratings.Update(team, week, performance)
	a.audit.LogRatingUpdate(team.ID, week, before, performance, after, applied)
	if applied {
		metrics.RecordRatingUpdate()
	}
	return after, applied
}

// adjustmentsFor runs the four calculators for one team in one game,
// degrading each layer to a zero signal when its provider snapshot is
// absent.
func (a *Analyzer) adjustmentsFor(game models.Game, team models.Team, isHome bool, teamPower, oppPower float64, lc config.LeagueConfig) models.AdjustmentSet {
	teamCtx, haveCtx := a.bundle.TeamContext(team.ID)
	var oppID string
	if isHome {
		oppID = game.Away.ID
	} else {
		oppID = game.Home.ID
	}
	oppCtx, _ := a.bundle.TeamContext(oppID)
	forecast, haveForecast := a.bundle.Forecast(game.ID)
	report, haveReport := a.bundle.InjuryReport(team.ID)

	if !haveCtx {
		a.edgeLog.LogMissingData(game.ID, team.ID, "standings")
	}
	if !haveForecast {
		a.edgeLog.LogMissingData(game.ID, team.ID, "weather")
	}
	if !haveReport {
		a.edgeLog.LogMissingData(game.ID, team.ID, "injury")
	}

	var qbSensitivity *float64
	if teamCtx != nil {
		qbSensitivity = teamCtx.QBWeatherSensitivity
	}

	set := models.AdjustmentSet{
		Situational: a.situational.Calculate(game, team, isHome, teamCtx, oppCtx, oppPower, lc.DefaultRating),
		Weather:     a.weather.Calculate(game, team, isHome, forecast, qbSensitivity),
		Emotional:   a.emotional.Calculate(teamCtx, teamPower, oppPower),
		Injury:      a.injury.Calculate(report),
	}

	a.edgeLog.LogAdjustmentBreakdown(game.ID, team.ID,
		set.Situational.Points, set.Weather.Points, set.Emotional.Points, set.Injury.Points,
		set.AllDetail())
	return set
}

// favoriteHandicap reduces a market snapshot to the favorite's quoted
// handicap (a non-positive number), the convention CLV records lines in so
// one move reads with opposite signs for the two sides.
func favoriteHandicap(line models.MarketLine) float64 {
	return -math.Abs(line.HomeMargin())
}
