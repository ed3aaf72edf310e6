package config

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions.
func NewValidator() *CustomValidator {
	v := validator.New()

	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration.
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules.
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

// validateEnvironment validates the environment field.
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field.
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateCrossField performs validations that span multiple fields.
func validateCrossField(cfg *Config) error {
	// Band table must be strictly ascending so classification is a simple
	// ordered scan.
	bands := cfg.Detector.Bands
	if !sort.SliceIsSorted(bands, func(i, j int) bool { return bands[i].MinEdge < bands[j].MinEdge }) {
		return fmt.Errorf("detector bands must be ordered by ascending min_edge")
	}
	for i := 1; i < len(bands); i++ {
		if bands[i].MinEdge == bands[i-1].MinEdge {
			return fmt.Errorf("detector bands %q and %q share min_edge %.2f",
				bands[i-1].Label, bands[i].Label, bands[i].MinEdge)
		}
	}

	for code, lc := range cfg.Leagues {
		if lc.MinEdgeThreshold >= cfg.Detector.MarketRespectCeiling {
			return fmt.Errorf("league %s: min_edge_threshold %.2f must be below market_respect_ceiling %.2f",
				code, lc.MinEdgeThreshold, cfg.Detector.MarketRespectCeiling)
		}
	}

	if cfg.Staking.PerBetCapPct > cfg.Staking.WeeklyCapPct {
		return fmt.Errorf("per_bet_cap_pct %.3f exceeds weekly_cap_pct %.3f",
			cfg.Staking.PerBetCapPct, cfg.Staking.WeeklyCapPct)
	}

	return nil
}

// formatValidationErrors converts validator errors into a readable message.
func formatValidationErrors(errs validator.ValidationErrors) error {
	msg := "configuration validation failed:"
	for _, e := range errs {
		msg += fmt.Sprintf("\n  - field %q failed rule %q", e.Namespace(), e.Tag())
	}
	return fmt.Errorf("%s", msg)
}
