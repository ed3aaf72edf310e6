// Package logger provides edge-pipeline logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// EdgeLogger provides dedicated logging for edge detection.
type EdgeLogger struct {
	*logrus.Entry
}

// NewEdgeLogger creates a new edge logger.
func NewEdgeLogger(baseLogger *logrus.Logger) *EdgeLogger {
	return &EdgeLogger{
		Entry: baseLogger.WithField("component", "edge_detector"),
	}
}

// LogEdgeDetection logs a classified edge.
func (el *EdgeLogger) LogEdgeDetection(gameID, league, side string, predictedLine, marketLine, edgePoints float64, classification string, dataIncomplete bool) {
	el.WithFields(logrus.Fields{
		"game_id":         gameID,
		"league":          league,
		"side":            side,
		"predicted_line":  predictedLine,
		"market_line":     marketLine,
		"edge_points":     edgePoints,
		"classification":  classification,
		"data_incomplete": dataIncomplete,
	}).Info("Edge classified")
}

// LogImplausibleEdge logs a market-respect downgrade. An edge past the
// ceiling signals distrust in the inputs, not a defect, so this warns and
// the evaluation continues as NO_PLAY.
func (el *EdgeLogger) LogImplausibleEdge(gameID string, edgePoints, ceiling float64) {
	el.WithFields(logrus.Fields{
		"game_id":     gameID,
		"edge_points": edgePoints,
		"ceiling":     ceiling,
	}).Warn("Edge exceeds market-respect ceiling, downgraded to NO_PLAY")
}

// LogAdjustmentBreakdown logs the named components behind a team's
// enhancement total, preserving the audit trail.
func (el *EdgeLogger) LogAdjustmentBreakdown(gameID, teamID string, situational, weather, emotional, injury float64, detail []string) {
	el.WithFields(logrus.Fields{
		"game_id":     gameID,
		"team_id":     teamID,
		"situational": situational,
		"weather":     weather,
		"emotional":   emotional,
		"injury":      injury,
		"detail":      detail,
	}).Debug("Adjustment breakdown")
}

// LogMissingData logs a provider input degraded to a zero signal.
func (el *EdgeLogger) LogMissingData(gameID, teamID, provider string) {
	el.WithFields(logrus.Fields{
		"game_id":  gameID,
		"team_id":  teamID,
		"provider": provider,
	}).Debug("Provider data missing, sub-adjustment degraded to zero")
}
