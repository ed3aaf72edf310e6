package models

// League identifies one of the supported football leagues.
type League string

const (
	LeagueNFL   League = "NFL"
	LeagueNCAAF League = "NCAAF"
)

// Climate describes a team's home playing environment, used for
// weather-mismatch adjustments.
type Climate string

const (
	ClimateCold      Climate = "cold"
	ClimateTemperate Climate = "temperate"
	ClimateWarm      Climate = "warm"
	ClimateDome      Climate = "dome"
)

// Surface is the playing surface type.
type Surface string

const (
	SurfaceGrass Surface = "grass"
	SurfaceTurf  Surface = "turf"
)

// OffenseStyle is a coarse tag for how a team moves the ball; pass-heavy
// offenses are penalized more in high wind.
type OffenseStyle string

const (
	OffensePassHeavy OffenseStyle = "pass_heavy"
	OffenseBalanced  OffenseStyle = "balanced"
	OffenseRunHeavy  OffenseStyle = "run_heavy"
)

// Team represents a single team in one of the supported leagues.
type Team struct {
	ID           string       `json:"id" validate:"required"`
	Name         string       `json:"name" validate:"required"`
	League       League       `json:"league" validate:"required,oneof=NFL NCAAF"`
	Division     string       `json:"division"`
	HomeClimate  Climate      `json:"home_climate"`
	HomeSurface  Surface      `json:"home_surface"`
	TimeZone     int          `json:"time_zone"` // hours offset from UTC, e.g. -5 for Eastern
	OffenseStyle OffenseStyle `json:"offense_style"`
}

// SeasonStats holds per-team season efficiency numbers supplied by the
// statistics provider. All values are per-game averages except turnover
// margin, which is a season total divided by games played.
type SeasonStats struct {
	TeamID          string  `json:"team_id"`
	PointsPerGame   float64 `json:"points_per_game"`
	PointsAllowed   float64 `json:"points_allowed_per_game"`
	TurnoverMargin  float64 `json:"turnover_margin"`
	ThirdDownPct    float64 `json:"third_down_pct"`
	GamesPlayed     int     `json:"games_played"`
}
