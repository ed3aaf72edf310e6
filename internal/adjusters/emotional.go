package adjusters

import (
	"math"

	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/config"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/models"
)

// EmotionalAdjuster runs seven independent bounded sub-calculators: revenge,
// lookahead, letdown, coaching change, playoff stakes, winning streak and
// desperation. Sub-factors sum linearly and may offset one another. Any
// missing context field degrades only its own sub-factor to zero.
type EmotionalAdjuster struct {
	cfg config.EmotionalConfig
}

// NewEmotionalAdjuster creates an emotional adjuster from configuration.
func NewEmotionalAdjuster(cfg config.EmotionalConfig) *EmotionalAdjuster {
	return &EmotionalAdjuster{cfg: cfg}
}

// Calculate returns the signed emotional adjustment for one team in one
// game. teamRating and oppRating are enhanced ratings used by the lookahead
// and letdown spots.
func (a *EmotionalAdjuster) Calculate(ctx *models.TeamContext, teamRating, oppRating float64) models.Adjustment {
	if ctx == nil {
		return models.Adjustment{Incomplete: true}
	}

	adj := models.Adjustment{}

	// Revenge: prior loss to this opponent, scaled by how badly it stung.
	if ctx.LastMeetingMargin != nil {
		if margin := *ctx.LastMeetingMargin; margin < 0 {
			revenge := clamp(-margin*a.cfg.RevengePerPoint, a.cfg.RevengeCap)
			adj.Points += revenge
			adj.Detail = append(adj.Detail, note("revenge", revenge))
		}
	} else {
		adj.Incomplete = true
	}

	// Lookahead: a marquee opponent next week against a soft one now.
	if ctx.NextOpponentRating != nil {
		if *ctx.NextOpponentRating-oppRating >= a.cfg.LookaheadGapPoints {
			adj.Points -= a.cfg.LookaheadPenalty
			adj.Detail = append(adj.Detail, note("lookahead", -a.cfg.LookaheadPenalty))
		}
	} else {
		adj.Incomplete = true
	}

	// Letdown: an emotional blowout win last week over a quality opponent.
	if ctx.PrevWeekWinMargin != nil {
		quality := ctx.PrevOpponentRating != nil && *ctx.PrevOpponentRating >= teamRating
		if *ctx.PrevWeekWinMargin >= a.cfg.LetdownMarginMin && quality {
			adj.Points -= a.cfg.LetdownPenalty
			adj.Detail = append(adj.Detail, note("letdown", -a.cfg.LetdownPenalty))
		}
	} else {
		adj.Incomplete = true
	}

	// Coaching change: interim hires get an early rally that fades.
	if ctx.Coaching != nil {
		var coach float64
		if ctx.Coaching.Interim {
			if ctx.Coaching.WeeksAgo <= a.cfg.InterimCoachWeeks {
				coach = a.cfg.InterimCoachBoost
			} else {
				coach = -a.cfg.InterimCoachFade
			}
		} else if ctx.Coaching.WeeksAgo <= a.cfg.InterimCoachWeeks {
			coach = a.cfg.InterimCoachBoost * 0.5
		}
		if coach != 0 {
			adj.Points += coach
			adj.Detail = append(adj.Detail, note("coaching_change", coach))
		}
	}

	// Playoff stakes; no standings feed means this factor sits out.
	if ctx.InPlayoffRace != nil && ctx.Eliminated != nil {
		var stakes float64
		if *ctx.Eliminated {
			stakes = -a.cfg.EliminatedPenalty
		} else if *ctx.InPlayoffRace {
			stakes = a.cfg.PlayoffRaceBoost
		}
		if stakes != 0 {
			adj.Points += stakes
			adj.Detail = append(adj.Detail, note("playoff_stakes", stakes))
		}
	} else {
		adj.Incomplete = true
	}

	// Winning streak confidence, capped.
	if ctx.WinStreak > 1 {
		streak := math.Min(float64(ctx.WinStreak)*a.cfg.WinStreakPerWin, a.cfg.WinStreakCap)
		adj.Points += streak
		adj.Detail = append(adj.Detail, note("win_streak", streak))
	}

	// Desperation: a modest losing streak sharpens effort; a long one
	// signals the season has already collapsed.
	if ctx.LossStreak >= 3 {
		if ctx.LossStreak >= a.cfg.CollapseStreak {
			adj.Points -= a.cfg.CollapsePenalty
			adj.Detail = append(adj.Detail, note("collapse", -a.cfg.CollapsePenalty))
		} else {
			adj.Points += a.cfg.DesperationBoost
			adj.Detail = append(adj.Detail, note("desperation", a.cfg.DesperationBoost))
		}
	}

	return adj
}
