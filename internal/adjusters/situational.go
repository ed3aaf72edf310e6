package adjusters

import (
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/config"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/models"
)

// SituationalAdjuster scores schedule-context factors: rest differential,
// divisional familiarity, road-game fatigue, time-zone travel, bye-week
// preparation and surface mismatch. Sub-factors sum linearly; each carries
// its own cap so no single factor dominates the layer.
type SituationalAdjuster struct {
	cfg config.SituationalConfig
}

// NewSituationalAdjuster creates a situational adjuster from configuration.
func NewSituationalAdjuster(cfg config.SituationalConfig) *SituationalAdjuster {
	return &SituationalAdjuster{cfg: cfg}
}

// Calculate returns the signed situational adjustment for one team in one
// game. teamCtx nil degrades the whole layer to zero; oppCtx nil degrades
// only the rest differential. oppRating is the opponent's enhanced rating,
// used to cap the bye-week boost against quality opponents.
func (a *SituationalAdjuster) Calculate(game models.Game, team models.Team, isHome bool, teamCtx, oppCtx *models.TeamContext, oppRating, leagueAvgRating float64) models.Adjustment {
	if teamCtx == nil {
		return models.Adjustment{Incomplete: true}
	}

	adj := models.Adjustment{}

	// Rest-day differential versus the opponent.
	if oppCtx != nil {
		rest := clamp(float64(teamCtx.RestDays-oppCtx.RestDays)*a.cfg.RestDayPoints, a.cfg.RestDayCap)
		if rest != 0 {
			adj.Points += rest
			adj.Detail = append(adj.Detail, note("rest_differential", rest))
		}
	} else {
		adj.Incomplete = true
	}

	// Divisional road teams travel well: familiarity blunts the venue edge.
	if game.IsDivisional() && !isHome {
		adj.Points += a.cfg.DivisionalAwayBoost
		adj.Detail = append(adj.Detail, note("divisional_road", a.cfg.DivisionalAwayBoost))
	}

	// Consecutive road games wear monotonically: each game past the first
	// adds the same penalty up to the cap.
	if !isHome && teamCtx.RoadGameStreak > 1 {
		penalty := -clamp(float64(teamCtx.RoadGameStreak-1)*a.cfg.RoadStreakPenalty, a.cfg.RoadStreakCap)
		adj.Points += penalty
		adj.Detail = append(adj.Detail, note("road_streak", penalty))
	}

	// Cross-time-zone travel; eastward travel compresses body clocks harder.
	if !isHome {
		zones := game.Venue.TimeZone - team.TimeZone
		if zones != 0 {
			abs := zones
			if abs < 0 {
				abs = -abs
			}
			travel := -clamp(float64(abs)*a.cfg.TimeZonePenalty, a.cfg.TimeZoneCap)
			if zones > 0 {
				travel -= a.cfg.EastwardExtra
			}
			adj.Points += travel
			adj.Detail = append(adj.Detail, note("time_zones", travel))
		}
	}

	// Bye-week boost, halved against above-average opponents: extra
	// preparation matters less when the opponent self-scouts well.
	if teamCtx.OffBye {
		boost := a.cfg.ByeWeekBoost
		if oppRating > leagueAvgRating {
			boost *= 0.5
		}
		adj.Points += boost
		adj.Detail = append(adj.Detail, note("off_bye", boost))
	}

	// Surface mismatch for the visitor.
	if !isHome && team.HomeSurface != "" && game.Venue.Surface != "" && team.HomeSurface != game.Venue.Surface {
		adj.Points -= a.cfg.SurfaceMismatch
		adj.Detail = append(adj.Detail, note("surface_mismatch", -a.cfg.SurfaceMismatch))
	}

	return adj
}
