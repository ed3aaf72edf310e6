package models

// Adjustment is the output of one adjustment calculator for one team in one
// game. Detail carries the named sub-factors that produced the points, so
// every number entering the edge computation stays traceable.
type Adjustment struct {
	Points     float64  `json:"points"`
	Detail     []string `json:"detail,omitempty"`
	Incomplete bool     `json:"incomplete,omitempty"`
}

// AdjustmentSet collects the four independent adjustment layers for one team
// in one game. The components never overlap: each calculator owns exactly one
// field.
type AdjustmentSet struct {
	Situational Adjustment `json:"situational"`
	Weather     Adjustment `json:"weather"`
	Emotional   Adjustment `json:"emotional"`
	Injury      Adjustment `json:"injury"`
}

// Total returns the summed point adjustment across all four layers.
func (a *AdjustmentSet) Total() float64 {
	return a.Situational.Points + a.Weather.Points + a.Emotional.Points + a.Injury.Points
}

// Incomplete reports whether any layer was degraded for missing provider data.
func (a *AdjustmentSet) Incomplete() bool {
	return a.Situational.Incomplete || a.Weather.Incomplete || a.Emotional.Incomplete || a.Injury.Incomplete
}

// AllDetail flattens all component detail strings for audit logging.
func (a *AdjustmentSet) AllDetail() []string {
	var out []string
	out = append(out, a.Situational.Detail...)
	out = append(out, a.Weather.Detail...)
	out = append(out, a.Emotional.Detail...)
	out = append(out, a.Injury.Detail...)
	return out
}
