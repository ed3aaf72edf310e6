package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BetSide identifies which side of the spread a classified edge points at.
type BetSide string

const (
	SideFavorite BetSide = "FAVORITE"
	SideUnderdog BetSide = "UNDERDOG"
)

// Classification is the strength band assigned to an edge.
type Classification string

const (
	ClassNoPlay   Classification = "NO_PLAY"
	ClassLean     Classification = "LEAN"
	ClassModerate Classification = "MODERATE"
	ClassStrong   Classification = "STRONG"
	ClassMaxBet   Classification = "MAX_BET"
)

// Edge is a derived comparison of the model's predicted line against one
// market snapshot. Edges are recomputed fresh for every (game, snapshot)
// pair and never cached or persisted standalone.
type Edge struct {
	ID              uuid.UUID       `json:"id"`
	Game            Game            `json:"game"`
	Market          MarketLine      `json:"market"`
	Side            BetSide         `json:"side"`
	SideTeam        string          `json:"side_team"` // team ID the recommendation backs
	PredictedLine   float64         `json:"predicted_line"` // expected home margin
	MarketLine      float64         `json:"market_line"`    // normalized home margin
	EdgePoints      float64         `json:"edge_points"`
	Classification  Classification  `json:"classification"`
	RecommendedStake decimal.Decimal `json:"recommended_stake"`
	HomeAdjustments AdjustmentSet   `json:"home_adjustments"`
	AwayAdjustments AdjustmentSet   `json:"away_adjustments"`
	DataIncomplete  bool            `json:"data_incomplete"`
	Warnings        []string        `json:"warnings,omitempty"`
	EvaluatedAt     time.Time       `json:"evaluated_at"`
}

// Playable reports whether the edge cleared classification.
func (e *Edge) Playable() bool {
	return e.Classification != ClassNoPlay
}
