// Package ratings implements the keyed power-rating store. Ratings live on
// an open-ended numeric scale (observed roughly 70-105) and are updated at
// most once per team per week.
package ratings

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/config"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/models"
)

// entry is the stored state for one team.
type entry struct {
	rating      float64
	lastWeek    int // last week an exponential update was applied
	initialized bool
}

// Store is an explicit keyed team→rating store. All methods are safe for
// concurrent use; updates are serialized per key by the store mutex, which
// is what enforces the once-per-week invariant.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	cfg     config.RatingsConfig
	leagues map[string]config.LeagueConfig
	logger  *logrus.Logger
}

// NewStore creates an empty rating store.
func NewStore(cfg config.RatingsConfig, leagues map[string]config.LeagueConfig, logger *logrus.Logger) *Store {
	return &Store{
		entries: make(map[string]*entry),
		cfg:     cfg,
		leagues: leagues,
		logger:  logger,
	}
}

// Seed installs a rating from an external composite ranking, used when no
// update history exists for the team. Seeding does not consume the weekly
// update.
func (s *Store) Seed(team models.Team, rating float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[team.ID] = &entry{rating: rating, lastWeek: -1, initialized: true}
}

// Rating returns the stored base rating for a team, falling back to the
// configured league-average default for unknown teams. Unknown is a valid
// zero-history answer, never a failure.
func (s *Store) Rating(team models.Team) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.entries[team.ID]; ok && e.initialized {
		return e.rating
	}
	if lc, ok := s.leagues[string(team.League)]; ok {
		return lc.DefaultRating
	}
	return 0
}

// Update applies the weekly exponential update
//
//	new = alpha*old + (1-alpha)*performance
//
// It is idempotent per team per week: a second call in the same week is a
// no-op, not cumulative. Returns the stored rating after the call and
// whether the update was applied.
func (s *Store) Update(team models.Team, week int, performance float64) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[team.ID]
	if !ok || !e.initialized {
		// No history: seed from the first observed performance.
		e = &entry{rating: performance, lastWeek: week, initialized: true}
		s.entries[team.ID] = e
		return e.rating, true
	}

	if e.lastWeek == week {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{
				"team_id": team.ID,
				"week":    week,
				"rating":  e.rating,
			}).Debug("Duplicate weekly rating update ignored")
		}
		return e.rating, false
	}

	old := e.rating
	e.rating = s.cfg.Alpha*old + (1-s.cfg.Alpha)*performance
	e.lastWeek = week

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"team_id":     team.ID,
			"week":        week,
			"old_rating":  old,
			"performance": performance,
			"new_rating":  e.rating,
		}).Debug("Power rating updated")
	}
	return e.rating, true
}

// Enhance layers season efficiency on top of the base rating without
// mutating it:
//
//	+ppg_weight*(PPG - league_avg_PPG)
//	+papg_weight*(league_avg_PAPG - PAPG)
//	+turnover_weight*turnover_margin
//
// Missing stats (nil) yield the unenhanced base rating.
func (s *Store) Enhance(team models.Team, stats *models.SeasonStats) float64 {
	base := s.Rating(team)
	if stats == nil {
		return base
	}
	lc, ok := s.leagues[string(team.League)]
	if !ok {
		return base
	}
	enhanced := base
	enhanced += s.cfg.PPGWeight * (stats.PointsPerGame - lc.AvgPointsPerGame)
	enhanced += s.cfg.PAPGWeight * (lc.AvgPointsAllowed - stats.PointsAllowed)
	enhanced += s.cfg.TurnoverWeight * stats.TurnoverMargin
	return enhanced
}

// Snapshot returns a copy of all stored ratings, for persistence by the
// caller.
func (s *Store) Snapshot() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]float64, len(s.entries))
	for id, e := range s.entries {
		if e.initialized {
			out[id] = e.rating
		}
	}
	return out
}
