// Package clv tracks closing line value for placed bets. CLV is the primary
// long-run skill signal: it measures line selection independent of
// single-game outcome variance.
package clv

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/logger"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/market"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/models"
)

// Record is the line history for one placed bet.
type Record struct {
	BetID       uuid.UUID       `json:"bet_id"`
	Side        models.BetSide  `json:"side"`
	OpeningLine float64         `json:"opening_line"`
	OpeningOdds int             `json:"opening_odds"`
	ClosingLine *float64        `json:"closing_line,omitempty"`
	ClosingOdds *int            `json:"closing_odds,omitempty"`
	Result      models.BetResult `json:"result"`
	ProfitLoss  decimal.Decimal `json:"profit_loss"`
	PlacedAt    time.Time       `json:"placed_at"`
	ClosedAt    *time.Time      `json:"closed_at,omitempty"`
}

// CLV returns the signed closing line value per the side taken. A favorite
// backed at -3.5 that closes -4.5 beat the market: the line moved toward the
// favorite after the bet. The same move is negative for the underdog bettor.
func (r *Record) CLV() (float64, bool) {
	if r.ClosingLine == nil {
		return 0, false
	}
	move := *r.ClosingLine - r.OpeningLine
	if r.Side == models.SideFavorite {
		return -move, true
	}
	return move, true
}

// Summary aggregates tracked performance.
type Summary struct {
	Bets          int     `json:"bets"`
	Closed        int     `json:"closed"`
	Settled       int     `json:"settled"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Pushes        int     `json:"pushes"`
	MeanCLV       float64 `json:"mean_clv"`
	PositiveCLV   int     `json:"positive_clv"`
	KeyCrossings  int     `json:"key_crossings"` // closes that crossed a key number in the bettor's favor
	TotalProfitLoss decimal.Decimal `json:"total_profit_loss"`
}

// Tracker records opening and closing lines for placed bets. Safe for
// concurrent use.
type Tracker struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Record
	keys    *market.KeyNumberTable
	audit   *logger.AuditLogger
}

// NewTracker creates an empty tracker. audit may be nil.
func NewTracker(keys *market.KeyNumberTable, audit *logger.AuditLogger) *Tracker {
	return &Tracker{
		records: make(map[uuid.UUID]*Record),
		keys:    keys,
		audit:   audit,
	}
}

// Open registers a placed bet with its opening line.
func (t *Tracker) Open(bet *models.Bet) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records[bet.ID] = &Record{
		BetID:       bet.ID,
		Side:        bet.Side,
		OpeningLine: bet.OpeningLine,
		OpeningOdds: bet.OpeningOdds,
		Result:      models.ResultPending,
		PlacedAt:    bet.PlacedAt,
	}
}

// Close records the closing line for a bet at market close.
func (t *Tracker) Close(betID uuid.UUID, closingLine float64, closingOdds int, closedAt time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.records[betID]
	if !ok {
		return fmt.Errorf("close line for %s: %w", betID, models.ErrUnknownBet)
	}
	r.ClosingLine = &closingLine
	r.ClosingOdds = &closingOdds
	r.ClosedAt = &closedAt
	if t.audit != nil {
		clv, _ := r.CLV()
		t.audit.LogLineClose(betID.String(), r.OpeningLine, closingLine, clv)
	}
	return nil
}

// Settle records the graded outcome for a bet.
func (t *Tracker) Settle(betID uuid.UUID, result models.BetResult, profitLoss decimal.Decimal) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.records[betID]
	if !ok {
		return fmt.Errorf("settle %s: %w", betID, models.ErrUnknownBet)
	}
	if r.Result != models.ResultPending {
		return fmt.Errorf("settle %s: %w", betID, models.ErrBetAlreadySettled)
	}
	r.Result = result
	r.ProfitLoss = profitLoss
	if t.audit != nil {
		t.audit.LogSettlement(betID.String(), string(result), profitLoss.InexactFloat64())
	}
	return nil
}

// CLV returns the signed closing line value for one bet.
func (t *Tracker) CLV(betID uuid.UUID) (float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.records[betID]
	if !ok {
		return 0, fmt.Errorf("clv for %s: %w", betID, models.ErrUnknownBet)
	}
	clv, ok := r.CLV()
	if !ok {
		return 0, fmt.Errorf("clv for %s: closing line not yet recorded", betID)
	}
	return clv, nil
}

// Summarize aggregates all tracked records.
func (t *Tracker) Summarize() Summary {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := Summary{TotalProfitLoss: decimal.Zero}
	clvTotal := 0.0
	for _, r := range t.records {
		s.Bets++
		if clv, ok := r.CLV(); ok {
			s.Closed++
			clvTotal += clv
			if clv > 0 {
				s.PositiveCLV++
			}
			if clv > 0 && t.keys != nil && crossesKey(t.keys, r.OpeningLine, *r.ClosingLine) {
				s.KeyCrossings++
			}
		}
		switch r.Result {
		case models.ResultWin:
			s.Settled++
			s.Wins++
		case models.ResultLoss:
			s.Settled++
			s.Losses++
		case models.ResultPush:
			s.Settled++
			s.Pushes++
		}
		s.TotalProfitLoss = s.TotalProfitLoss.Add(r.ProfitLoss)
	}
	if s.Closed > 0 {
		s.MeanCLV = clvTotal / float64(s.Closed)
	}
	return s
}

// crossesKey reports whether the move from open to close passed a key
// margin, which makes the obtained value disproportionately large.
func crossesKey(keys *market.KeyNumberTable, from, to float64) bool {
	lo, hi := math.Abs(from), math.Abs(to)
	if lo > hi {
		lo, hi = hi, lo
	}
	for n := int(math.Ceil(lo)); n <= int(math.Floor(hi)); n++ {
		if keys.IsKeyNumber(n) {
			return true
		}
	}
	return false
}
