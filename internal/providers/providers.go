// Package providers defines the narrow read-only capability interfaces the
// core reads pre-fetched snapshots through. Every interface tolerates an
// absent result as a valid zero-signal answer; nothing here performs I/O.
package providers

import "github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/models"

// StatsProvider supplies per-team season efficiency numbers.
type StatsProvider interface {
	SeasonStats(teamID string) (*models.SeasonStats, bool)
}

// WeatherProvider supplies per-game forecasts.
type WeatherProvider interface {
	Forecast(gameID string) (*models.WeatherForecast, bool)
}

// InjuryProvider supplies per-team roster status lists.
type InjuryProvider interface {
	InjuryReport(teamID string) (*models.InjuryReport, bool)
}

// ContextProvider supplies schedule/standings context per team.
type ContextProvider interface {
	TeamContext(teamID string) (*models.TeamContext, bool)
}

// LineProvider supplies the latest de-duplicated market snapshot per game.
type LineProvider interface {
	MarketLine(gameID string) (*models.MarketLine, bool)
}

// Bundle groups all provider capabilities for the slate evaluator. Any field
// may be nil; a nil provider is the always-missing provider.
type Bundle struct {
	Stats   StatsProvider
	Weather WeatherProvider
	Injury  InjuryProvider
	Context ContextProvider
	Lines   LineProvider
}

// SeasonStats reads through a possibly-nil provider.
func (b Bundle) SeasonStats(teamID string) (*models.SeasonStats, bool) {
	if b.Stats == nil {
		return nil, false
	}
	return b.Stats.SeasonStats(teamID)
}

// Forecast reads through a possibly-nil provider.
func (b Bundle) Forecast(gameID string) (*models.WeatherForecast, bool) {
	if b.Weather == nil {
		return nil, false
	}
	return b.Weather.Forecast(gameID)
}

// InjuryReport reads through a possibly-nil provider.
func (b Bundle) InjuryReport(teamID string) (*models.InjuryReport, bool) {
	if b.Injury == nil {
		return nil, false
	}
	return b.Injury.InjuryReport(teamID)
}

// TeamContext reads through a possibly-nil provider.
func (b Bundle) TeamContext(teamID string) (*models.TeamContext, bool) {
	if b.Context == nil {
		return nil, false
	}
	return b.Context.TeamContext(teamID)
}

// MarketLine reads through a possibly-nil provider.
func (b Bundle) MarketLine(gameID string) (*models.MarketLine, bool) {
	if b.Lines == nil {
		return nil, false
	}
	return b.Lines.MarketLine(gameID)
}
