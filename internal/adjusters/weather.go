package adjusters

import (
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/config"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/models"
)

// WeatherAdjuster scores game-site weather against a team's home climate and
// offensive style. Indoor venues short-circuit to zero. The output lands
// primarily on the visiting team: the home side only carries a configured
// fraction of the wind and precipitation penalties, and no climate mismatch.
type WeatherAdjuster struct {
	cfg config.WeatherConfig
}

// NewWeatherAdjuster creates a weather adjuster from configuration.
func NewWeatherAdjuster(cfg config.WeatherConfig) *WeatherAdjuster {
	return &WeatherAdjuster{cfg: cfg}
}

// Calculate returns the signed weather adjustment for one team in one game.
// A nil forecast degrades the layer to zero. qbSensitivity, when non-nil,
// scales the wind and precipitation penalties for quarterback-dependent
// offenses (-1..1, positive means more exposed).
func (a *WeatherAdjuster) Calculate(game models.Game, team models.Team, isHome bool, forecast *models.WeatherForecast, qbSensitivity *float64) models.Adjustment {
	if forecast == nil {
		return models.Adjustment{Incomplete: true}
	}
	if forecast.Indoor || game.Venue.Indoor {
		return models.Adjustment{}
	}

	adj := models.Adjustment{}
	weight := 1.0
	if isHome {
		weight = a.cfg.HomeWeight
	}

	// Climate mismatch only punishes the visitor: warm-climate and dome
	// teams playing in genuine cold, scaled by how far below the
	// threshold the forecast sits.
	if !isHome && (team.HomeClimate == models.ClimateWarm || team.HomeClimate == models.ClimateDome) {
		if delta := a.cfg.ColdThresholdF - forecast.TemperatureF; delta > 0 {
			mismatch := -clamp(delta*a.cfg.ClimatePointsPerDeg, a.cfg.ClimateCap)
			adj.Points += mismatch
			adj.Detail = append(adj.Detail, note("climate_mismatch", mismatch))
		}
	}

	sensitivity := 1.0
	if qbSensitivity != nil {
		sensitivity += *qbSensitivity
	}

	// Wind tiers; pass-heavy offenses lose more of their game plan.
	var wind float64
	switch {
	case forecast.WindSpeedMPH > a.cfg.WindTier2MPH:
		wind = a.cfg.WindTier2Points
	case forecast.WindSpeedMPH > a.cfg.WindTier1MPH:
		wind = a.cfg.WindTier1Points
	}
	if wind > 0 {
		if team.OffenseStyle == models.OffensePassHeavy {
			wind += a.cfg.PassHeavyWindExtra
		}
		wind = -wind * weight * sensitivity
		adj.Points += wind
		adj.Detail = append(adj.Detail, note("wind", wind))
	}

	// Precipitation tiers.
	var precip float64
	switch forecast.Precipitation {
	case models.PrecipLight:
		precip = a.cfg.PrecipLightPoints
	case models.PrecipHeavy:
		precip = a.cfg.PrecipHeavyPoints
	case models.PrecipSnow:
		precip = a.cfg.PrecipSnowPoints
	}
	if precip > 0 {
		precip = -precip * weight * sensitivity
		adj.Points += precip
		adj.Detail = append(adj.Detail, note("precipitation", precip))
	}

	return adj
}
