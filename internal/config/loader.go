package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment
// variables. Environment variable placeholders in the YAML file (${VAR_NAME})
// are expanded before parsing. Values absent from the file fall back to the
// built-in methodology defaults.
func Load(configPath string) (*Config, error) {
	v := newViper()

	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return unmarshal(v)
}

// LoadWithDefaults loads configuration tolerating a missing file: defaults
// and environment variables alone produce a complete, valid configuration.
func LoadWithDefaults(configPath string) (*Config, error) {
	v := newViper()

	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return unmarshal(v)
}

// Default returns the built-in methodology configuration. Tests and the
// backtesting harness start from here.
func Default() *Config {
	cfg, err := unmarshal(newViper())
	if err != nil {
		// Defaults are static; a failure here is a programming error.
		panic(fmt.Sprintf("config: invalid built-in defaults: %v", err))
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("WALTERS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	// Viper lowercases map keys during unmarshal; league codes are uppercase
	// everywhere else (models.League, validator tags, config files), so
	// restore the authored case.
	leagues := make(map[string]LeagueConfig, len(cfg.Leagues))
	for code, lc := range cfg.Leagues {
		leagues[strings.ToUpper(code)] = lc
	}
	cfg.Leagues = leagues
	return cfg, nil
}

// setDefaults registers the empirical methodology tables. The numbers are
// asserted by the source handicapping material, not derived; treat them as
// tunable, not ground truth.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "walters-analyzer")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("leagues.NFL.home_field_constant", 2.5)
	v.SetDefault("leagues.NFL.schedule_weeks", 18)
	v.SetDefault("leagues.NFL.avg_points_per_game", 22.0)
	v.SetDefault("leagues.NFL.avg_points_allowed", 22.0)
	v.SetDefault("leagues.NFL.default_rating", 85.0)
	v.SetDefault("leagues.NFL.min_edge_threshold", 1.5)

	v.SetDefault("leagues.NCAAF.home_field_constant", 3.0)
	v.SetDefault("leagues.NCAAF.schedule_weeks", 14)
	v.SetDefault("leagues.NCAAF.avg_points_per_game", 28.0)
	v.SetDefault("leagues.NCAAF.avg_points_allowed", 28.0)
	v.SetDefault("leagues.NCAAF.default_rating", 80.0)
	v.SetDefault("leagues.NCAAF.min_edge_threshold", 3.0)

	v.SetDefault("ratings.alpha", 0.90)
	v.SetDefault("ratings.ppg_weight", 0.15)
	v.SetDefault("ratings.papg_weight", 0.15)
	v.SetDefault("ratings.turnover_weight", 0.30)

	v.SetDefault("adjusters.situational.rest_day_points", 0.3)
	v.SetDefault("adjusters.situational.rest_day_cap", 1.5)
	v.SetDefault("adjusters.situational.divisional_away_boost", 0.5)
	v.SetDefault("adjusters.situational.road_streak_penalty", 0.4)
	v.SetDefault("adjusters.situational.road_streak_cap", 2.0)
	v.SetDefault("adjusters.situational.time_zone_penalty", 0.3)
	v.SetDefault("adjusters.situational.time_zone_cap", 1.0)
	v.SetDefault("adjusters.situational.eastward_extra", 0.3)
	v.SetDefault("adjusters.situational.bye_week_boost", 1.0)
	v.SetDefault("adjusters.situational.surface_mismatch", 0.5)

	v.SetDefault("adjusters.weather.cold_threshold_f", 35.0)
	v.SetDefault("adjusters.weather.climate_points_per_degree", 0.05)
	v.SetDefault("adjusters.weather.climate_cap", 2.0)
	v.SetDefault("adjusters.weather.wind_tier1_mph", 15.0)
	v.SetDefault("adjusters.weather.wind_tier2_mph", 20.0)
	v.SetDefault("adjusters.weather.wind_tier1_points", 1.0)
	v.SetDefault("adjusters.weather.wind_tier2_points", 2.0)
	v.SetDefault("adjusters.weather.pass_heavy_wind_extra", 0.5)
	v.SetDefault("adjusters.weather.precip_light_points", 0.5)
	v.SetDefault("adjusters.weather.precip_heavy_points", 1.0)
	v.SetDefault("adjusters.weather.precip_snow_points", 1.5)
	v.SetDefault("adjusters.weather.home_weight", 0.5)

	v.SetDefault("adjusters.emotional.revenge_per_point", 0.05)
	v.SetDefault("adjusters.emotional.revenge_cap", 1.0)
	v.SetDefault("adjusters.emotional.lookahead_penalty", 0.5)
	v.SetDefault("adjusters.emotional.lookahead_gap_points", 5.0)
	v.SetDefault("adjusters.emotional.letdown_penalty", 0.6)
	v.SetDefault("adjusters.emotional.letdown_margin_min", 14.0)
	v.SetDefault("adjusters.emotional.interim_coach_boost", 0.5)
	v.SetDefault("adjusters.emotional.interim_coach_weeks", 2)
	v.SetDefault("adjusters.emotional.interim_coach_fade", 0.3)
	v.SetDefault("adjusters.emotional.playoff_race_boost", 0.5)
	v.SetDefault("adjusters.emotional.eliminated_penalty", 0.75)
	v.SetDefault("adjusters.emotional.win_streak_per_win", 0.1)
	v.SetDefault("adjusters.emotional.win_streak_cap", 0.5)
	v.SetDefault("adjusters.emotional.desperation_boost", 0.4)
	v.SetDefault("adjusters.emotional.collapse_penalty", 0.5)
	v.SetDefault("adjusters.emotional.collapse_streak", 5)

	v.SetDefault("adjusters.injury.position_values", map[string]float64{
		"QB": 4.5, "RB": 1.0, "WR": 1.0, "TE": 0.7, "OL": 0.8,
		"DL": 0.8, "LB": 0.7, "DB": 0.8, "K": 0.3, "P": 0.1,
	})
	v.SetDefault("adjusters.injury.status_multipliers", map[string]float64{
		"out": 1.0, "doubtful": 0.75, "questionable": 0.5, "probable": 0.15,
	})
	v.SetDefault("adjusters.injury.position_groups", map[string]string{
		"QB": "quarterback", "RB": "backfield", "WR": "receivers", "TE": "receivers",
		"OL": "offensive_line", "DL": "defensive_line", "LB": "linebackers",
		"DB": "secondary", "K": "specialists", "P": "specialists",
	})
	v.SetDefault("adjusters.injury.crisis_multiplier", 1.2)
	v.SetDefault("adjusters.injury.crisis_starter_min", 2)

	v.SetDefault("detector.bands", []map[string]interface{}{
		{"min_edge": 1.5, "label": "LEAN", "win_rate": 0.54, "kelly_fraction": 0.15},
		{"min_edge": 2.5, "label": "MODERATE", "win_rate": 0.58, "kelly_fraction": 0.25},
		{"min_edge": 4.0, "label": "STRONG", "win_rate": 0.64, "kelly_fraction": 0.35},
		{"min_edge": 5.5, "label": "MAX_BET", "win_rate": 0.77, "kelly_fraction": 0.50},
	})
	v.SetDefault("detector.market_respect_ceiling", 10.0)

	v.SetDefault("staking.kelly_fraction", 0.25)
	v.SetDefault("staking.per_bet_cap_pct", 0.03)
	v.SetDefault("staking.weekly_cap_pct", 0.15)
	v.SetDefault("staking.min_stake", 1.0)

	v.SetDefault("snapshots.ttl_seconds", 3600)
	v.SetDefault("snapshots.sweep_seconds", 600)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
}
