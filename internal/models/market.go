package models

import "time"

// MarketLine is one observation of the quoted market for a game. A line is
// immutable once captured; a fresh quote is a new MarketLine, which is what
// preserves the opening/closing distinction downstream.
//
// Spread is the quoted home handicap: -3.5 means the home team is a
// 3.5-point favorite. Prices and moneylines are American odds.
type MarketLine struct {
	GameID        string    `json:"game_id" validate:"required"`
	Spread        float64   `json:"spread"`
	SpreadPrice   int       `json:"spread_price"`
	Total         float64   `json:"total"`
	HomeMoneyline int       `json:"home_moneyline"`
	AwayMoneyline int       `json:"away_moneyline"`
	ObservedAt    time.Time `json:"observed_at" validate:"required"`
}

// HomeMargin converts the quoted home handicap into an expected home victory
// margin (positive means home favored), the convention used by the predicted
// line.
func (m *MarketLine) HomeMargin() float64 {
	return -m.Spread
}
