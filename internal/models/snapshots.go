package models

// Precipitation buckets a forecast into the tiers the weather adjuster uses.
type Precipitation string

const (
	PrecipNone  Precipitation = "none"
	PrecipLight Precipitation = "light"
	PrecipHeavy Precipitation = "heavy"
	PrecipSnow  Precipitation = "snow"
)

// WeatherForecast is the pre-fetched game-site forecast for one game.
type WeatherForecast struct {
	GameID        string        `json:"game_id"`
	TemperatureF  float64       `json:"temperature_f"`
	WindSpeedMPH  float64       `json:"wind_speed_mph"`
	Precipitation Precipitation `json:"precipitation"`
	Indoor        bool          `json:"indoor"`
}

// CoachingChange records a midseason change at head coach.
type CoachingChange struct {
	Interim  bool `json:"interim"`
	WeeksAgo int  `json:"weeks_ago"`
}

// TeamContext is the schedule/standings snapshot for one team entering one
// game, supplied by the standings/schedule provider. Any pointer field may be
// nil when the upstream feed lacks it; the affected sub-factor degrades to
// zero.
type TeamContext struct {
	TeamID            string          `json:"team_id"`
	Week              int             `json:"week"`
	RestDays          int             `json:"rest_days"`
	OffBye            bool            `json:"off_bye"`
	RoadGameStreak    int             `json:"road_game_streak"` // consecutive road games including this one
	WinStreak         int             `json:"win_streak"`
	LossStreak        int             `json:"loss_streak"`
	InPlayoffRace     *bool           `json:"in_playoff_race,omitempty"`
	Eliminated        *bool           `json:"eliminated,omitempty"`
	LastMeetingMargin *float64        `json:"last_meeting_margin,omitempty"` // vs this opponent, negative = lost
	PrevWeekWinMargin *float64        `json:"prev_week_win_margin,omitempty"`
	PrevOpponentRating *float64       `json:"prev_opponent_rating,omitempty"`
	NextOpponentRating *float64       `json:"next_opponent_rating,omitempty"`
	Coaching          *CoachingChange `json:"coaching,omitempty"`
	QBWeatherSensitivity *float64     `json:"qb_weather_sensitivity,omitempty"` // -1..1, extra wind/precip exposure
}
