// Package config provides configuration management for the handicapping core.
// Every empirically-asserted constant in the methodology (adjuster tables,
// band cutoffs, Kelly fractions, caps) lives here as tunable configuration.
package config

import "fmt"

// Config represents the complete application configuration.
type Config struct {
	App       AppConfig                `mapstructure:"app" validate:"required"`
	Leagues   map[string]LeagueConfig  `mapstructure:"leagues" validate:"required,min=1,dive"`
	Ratings   RatingsConfig            `mapstructure:"ratings" validate:"required"`
	Adjusters AdjustersConfig          `mapstructure:"adjusters" validate:"required"`
	Detector  DetectorConfig           `mapstructure:"detector" validate:"required"`
	Staking   StakingConfig            `mapstructure:"staking" validate:"required"`
	Snapshots SnapshotsConfig          `mapstructure:"snapshots" validate:"required"`
	Metrics   MetricsConfig            `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration.
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// LeagueConfig carries the per-league constants: each league has its own
// home-field constant, schedule length, scoring baselines and edge threshold.
type LeagueConfig struct {
	HomeFieldConstant float64 `mapstructure:"home_field_constant" validate:"gte=0,lte=10"`
	ScheduleWeeks     int     `mapstructure:"schedule_weeks" validate:"required,gt=0"`
	AvgPointsPerGame  float64 `mapstructure:"avg_points_per_game" validate:"required,gt=0"`
	AvgPointsAllowed  float64 `mapstructure:"avg_points_allowed" validate:"required,gt=0"`
	DefaultRating     float64 `mapstructure:"default_rating" validate:"required,gt=0"`
	MinEdgeThreshold  float64 `mapstructure:"min_edge_threshold" validate:"required,gt=0"`
}

// RatingsConfig controls the power-rating store.
type RatingsConfig struct {
	// Alpha is the retention weight on the prior rating in the weekly
	// exponential update: new = alpha*old + (1-alpha)*performance.
	Alpha          float64 `mapstructure:"alpha" validate:"required,gt=0,lt=1"`
	PPGWeight      float64 `mapstructure:"ppg_weight" validate:"gte=0"`
	PAPGWeight     float64 `mapstructure:"papg_weight" validate:"gte=0"`
	TurnoverWeight float64 `mapstructure:"turnover_weight" validate:"gte=0"`
}

// AdjustersConfig groups the four adjustment-layer tables.
type AdjustersConfig struct {
	Situational SituationalConfig `mapstructure:"situational" validate:"required"`
	Weather     WeatherConfig     `mapstructure:"weather" validate:"required"`
	Emotional   EmotionalConfig   `mapstructure:"emotional" validate:"required"`
	Injury      InjuryConfig      `mapstructure:"injury" validate:"required"`
}

// SituationalConfig holds the schedule-context sub-factor values and caps.
type SituationalConfig struct {
	RestDayPoints      float64 `mapstructure:"rest_day_points" validate:"gte=0"`
	RestDayCap         float64 `mapstructure:"rest_day_cap" validate:"gte=0"`
	DivisionalAwayBoost float64 `mapstructure:"divisional_away_boost" validate:"gte=0"`
	RoadStreakPenalty  float64 `mapstructure:"road_streak_penalty" validate:"gte=0"`
	RoadStreakCap      float64 `mapstructure:"road_streak_cap" validate:"gte=0"`
	TimeZonePenalty    float64 `mapstructure:"time_zone_penalty" validate:"gte=0"`
	TimeZoneCap        float64 `mapstructure:"time_zone_cap" validate:"gte=0"`
	EastwardExtra      float64 `mapstructure:"eastward_extra" validate:"gte=0"`
	ByeWeekBoost       float64 `mapstructure:"bye_week_boost" validate:"gte=0"`
	SurfaceMismatch    float64 `mapstructure:"surface_mismatch" validate:"gte=0"`
}

// WeatherConfig holds the outdoor-weather sub-factor values.
type WeatherConfig struct {
	ColdThresholdF      float64 `mapstructure:"cold_threshold_f"`
	ClimatePointsPerDeg float64 `mapstructure:"climate_points_per_degree" validate:"gte=0"`
	ClimateCap          float64 `mapstructure:"climate_cap" validate:"gte=0"`
	WindTier1MPH        float64 `mapstructure:"wind_tier1_mph" validate:"gte=0"`
	WindTier2MPH        float64 `mapstructure:"wind_tier2_mph" validate:"gte=0"`
	WindTier1Points     float64 `mapstructure:"wind_tier1_points" validate:"gte=0"`
	WindTier2Points     float64 `mapstructure:"wind_tier2_points" validate:"gte=0"`
	PassHeavyWindExtra  float64 `mapstructure:"pass_heavy_wind_extra" validate:"gte=0"`
	PrecipLightPoints   float64 `mapstructure:"precip_light_points" validate:"gte=0"`
	PrecipHeavyPoints   float64 `mapstructure:"precip_heavy_points" validate:"gte=0"`
	PrecipSnowPoints    float64 `mapstructure:"precip_snow_points" validate:"gte=0"`
	HomeWeight          float64 `mapstructure:"home_weight" validate:"gte=0,lte=1"`
}

// EmotionalConfig bounds the seven emotional sub-calculators.
type EmotionalConfig struct {
	RevengePerPoint     float64 `mapstructure:"revenge_per_point" validate:"gte=0"`
	RevengeCap          float64 `mapstructure:"revenge_cap" validate:"gte=0"`
	LookaheadPenalty    float64 `mapstructure:"lookahead_penalty" validate:"gte=0"`
	LookaheadGapPoints  float64 `mapstructure:"lookahead_gap_points" validate:"gte=0"`
	LetdownPenalty      float64 `mapstructure:"letdown_penalty" validate:"gte=0"`
	LetdownMarginMin    float64 `mapstructure:"letdown_margin_min" validate:"gte=0"`
	InterimCoachBoost   float64 `mapstructure:"interim_coach_boost" validate:"gte=0"`
	InterimCoachWeeks   int     `mapstructure:"interim_coach_weeks" validate:"gte=0"`
	InterimCoachFade    float64 `mapstructure:"interim_coach_fade" validate:"gte=0"`
	PlayoffRaceBoost    float64 `mapstructure:"playoff_race_boost" validate:"gte=0"`
	EliminatedPenalty   float64 `mapstructure:"eliminated_penalty" validate:"gte=0"`
	WinStreakPerWin     float64 `mapstructure:"win_streak_per_win" validate:"gte=0"`
	WinStreakCap        float64 `mapstructure:"win_streak_cap" validate:"gte=0"`
	DesperationBoost    float64 `mapstructure:"desperation_boost" validate:"gte=0"`
	CollapsePenalty     float64 `mapstructure:"collapse_penalty" validate:"gte=0"`
	CollapseStreak      int     `mapstructure:"collapse_streak" validate:"gte=0"`
}

// InjuryConfig holds position-tier point values and status multipliers.
type InjuryConfig struct {
	PositionValues    map[string]float64 `mapstructure:"position_values" validate:"required,min=1"`
	StatusMultipliers map[string]float64 `mapstructure:"status_multipliers" validate:"required,min=1"`
	PositionGroups    map[string]string  `mapstructure:"position_groups" validate:"required,min=1"`
	CrisisMultiplier  float64            `mapstructure:"crisis_multiplier" validate:"required,gte=1"`
	CrisisStarterMin  int                `mapstructure:"crisis_starter_min" validate:"required,gt=1"`
}

// BandConfig is one row of the ordered classification table. Bands are data,
// not control flow: tuning a cutoff never touches detector code.
type BandConfig struct {
	MinEdge       float64 `mapstructure:"min_edge" validate:"gte=0"`
	Label         string  `mapstructure:"label" validate:"required"`
	WinRate       float64 `mapstructure:"win_rate" validate:"gt=0.5,lt=1"`
	KellyFraction float64 `mapstructure:"kelly_fraction" validate:"gt=0,lte=1"`
}

// DetectorConfig controls edge classification.
type DetectorConfig struct {
	Bands                []BandConfig `mapstructure:"bands" validate:"required,min=1,dive"`
	MarketRespectCeiling float64      `mapstructure:"market_respect_ceiling" validate:"required,gt=0"`
}

// StakingConfig controls Kelly sizing and exposure caps.
type StakingConfig struct {
	KellyFraction float64 `mapstructure:"kelly_fraction" validate:"required,gt=0,lte=1"`
	PerBetCapPct  float64 `mapstructure:"per_bet_cap_pct" validate:"required,gt=0,lte=1"`
	WeeklyCapPct  float64 `mapstructure:"weekly_cap_pct" validate:"required,gt=0,lte=1"`
	MinStake      float64 `mapstructure:"min_stake" validate:"gte=0"`
}

// SnapshotsConfig controls the provider snapshot store.
type SnapshotsConfig struct {
	TTLSeconds     int `mapstructure:"ttl_seconds" validate:"required,gt=0"`
	SweepSeconds   int `mapstructure:"sweep_seconds" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Path    string `mapstructure:"path"`
}

// League returns the configuration for a league code.
func (c *Config) League(code string) (LeagueConfig, error) {
	lc, ok := c.Leagues[code]
	if !ok {
		return LeagueConfig{}, fmt.Errorf("no configuration for league %q", code)
	}
	return lc, nil
}

// IsDevelopment checks if the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
