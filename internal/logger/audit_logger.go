// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging for the betting
// lifecycle.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogBetPlacement logs a bet placement event.
func (al *AuditLogger) LogBetPlacement(betID, gameID, side, classification string, stake float64, openingLine float64, openingOdds int, placedAt time.Time) {
	al.WithFields(logrus.Fields{
		"bet_id":         betID,
		"game_id":        gameID,
		"side":           side,
		"classification": classification,
		"stake":          stake,
		"opening_line":   openingLine,
		"opening_odds":   openingOdds,
		"placed_at":      placedAt.Unix(),
	}).Info("Bet placement recorded")
}

// LogStakeClamp logs a stake reduced by the per-bet or weekly cap.
func (al *AuditLogger) LogStakeClamp(betID string, requested, granted float64, reason string) {
	al.WithFields(logrus.Fields{
		"bet_id":    betID,
		"requested": requested,
		"granted":   granted,
		"reason":    reason,
	}).Warn("Stake clamped by exposure cap")
}

// LogRatingUpdate logs a weekly power-rating update.
func (al *AuditLogger) LogRatingUpdate(teamID string, week int, oldRating, performance, newRating float64, applied bool) {
	al.WithFields(logrus.Fields{
		"team_id":     teamID,
		"week":        week,
		"old_rating":  oldRating,
		"performance": performance,
		"new_rating":  newRating,
		"applied":     applied,
	}).Info("Power rating update")
}

// LogLineClose logs the closing-line capture for a bet.
func (al *AuditLogger) LogLineClose(betID string, openingLine, closingLine, clv float64) {
	al.WithFields(logrus.Fields{
		"bet_id":       betID,
		"opening_line": openingLine,
		"closing_line": closingLine,
		"clv":          clv,
	}).Info("Closing line recorded")
}

// LogSettlement logs a bet settlement.
func (al *AuditLogger) LogSettlement(betID, result string, profitLoss float64) {
	al.WithFields(logrus.Fields{
		"bet_id":      betID,
		"result":      result,
		"profit_loss": profitLoss,
	}).Info("Bet settled")
}
