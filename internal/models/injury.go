package models

// InjuryStatus is the official designation on a team's injury report.
type InjuryStatus string

const (
	StatusOut          InjuryStatus = "out"
	StatusDoubtful     InjuryStatus = "doubtful"
	StatusQuestionable InjuryStatus = "questionable"
	StatusProbable     InjuryStatus = "probable"
)

// Position is a roster position code (QB, RB, WR, TE, OL, DL, LB, DB, K, P).
type Position string

// InjuryEntry is one player on a team's injury report. PointValue, when
// non-zero, overrides the position-tier value for players whose individual
// worth is known (an elite quarterback is worth more than the QB tier).
type InjuryEntry struct {
	Player     string       `json:"player"`
	Position   Position     `json:"position"`
	Status     InjuryStatus `json:"status"`
	Starter    bool         `json:"starter"`
	PointValue float64      `json:"point_value,omitempty"`
}

// InjuryReport is the full roster status list for one team entering a game.
type InjuryReport struct {
	TeamID  string        `json:"team_id"`
	Week    int           `json:"week"`
	Entries []InjuryEntry `json:"entries"`
}
