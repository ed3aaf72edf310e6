package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BetResult is the settlement outcome of a placed bet.
type BetResult string

const (
	ResultPending BetResult = "pending"
	ResultWin     BetResult = "win"
	ResultLoss    BetResult = "loss"
	ResultPush    BetResult = "push"
)

// Bet materializes a sized edge into a wagering decision. It is mutated
// exactly twice after placement: once when the market closes (closing line
// capture) and once at settlement.
type Bet struct {
	ID          uuid.UUID       `json:"id" validate:"required"`
	Edge        Edge            `json:"edge"`
	Side        BetSide         `json:"side" validate:"required,oneof=FAVORITE UNDERDOG"`
	Stake       decimal.Decimal `json:"stake"`
	OpeningLine float64         `json:"opening_line"`
	OpeningOdds int             `json:"opening_odds"`
	ClosingLine *float64        `json:"closing_line,omitempty"`
	ClosingOdds *int            `json:"closing_odds,omitempty"`
	Result      BetResult       `json:"result"`
	ProfitLoss  *decimal.Decimal `json:"profit_loss,omitempty"`
	PlacedAt    time.Time       `json:"placed_at"`
	ClosedAt    *time.Time      `json:"closed_at,omitempty"`
	SettledAt   *time.Time      `json:"settled_at,omitempty"`
}

// IsSettled reports whether the bet has been graded.
func (b *Bet) IsSettled() bool {
	return b.Result != ResultPending && b.SettledAt != nil
}

// ROI returns profit/loss as a fraction of stake, zero until settled.
func (b *Bet) ROI() decimal.Decimal {
	if b.ProfitLoss == nil || b.Stake.IsZero() {
		return decimal.Zero
	}
	return b.ProfitLoss.Div(b.Stake)
}
