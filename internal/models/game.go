package models

import "time"

// Venue describes where a game is played.
type Venue struct {
	Name     string  `json:"name"`
	Indoor   bool    `json:"indoor"`
	Surface  Surface `json:"surface"`
	TimeZone int     `json:"time_zone"`
	Climate  Climate `json:"climate"`
}

// Game represents one scheduled matchup.
type Game struct {
	ID       string    `json:"id" validate:"required"`
	League   League    `json:"league" validate:"required,oneof=NFL NCAAF"`
	Week     int       `json:"week" validate:"required,gt=0"`
	Kickoff  time.Time `json:"kickoff"`
	Home     Team      `json:"home"`
	Away     Team      `json:"away"`
	Venue    Venue     `json:"venue"`
}

// IsDivisional reports whether both teams belong to the same division.
func (g *Game) IsDivisional() bool {
	return g.Home.Division != "" && g.Home.Division == g.Away.Division
}
