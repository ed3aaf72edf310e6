package providers

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/config"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/models"
)

// Key prefixes partition the shared cache by snapshot kind.
const (
	prefixStats   = "stats:"
	prefixWeather = "weather:"
	prefixInjury  = "injury:"
	prefixContext = "context:"
	prefixLine    = "line:"
)

// SnapshotStore is a TTL-bounded in-memory store holding the latest
// pre-fetched snapshot per key. It implements every provider interface.
// Expiry is a coarse staleness backstop only: the core computes on whatever
// it is given, and freshness remains the caller's contract. An expired entry
// simply reads as the zero-signal answer.
type SnapshotStore struct {
	c *gocache.Cache
}

// NewSnapshotStore creates a snapshot store with the configured TTL.
func NewSnapshotStore(cfg config.SnapshotsConfig) *SnapshotStore {
	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	sweep := time.Duration(cfg.SweepSeconds) * time.Second
	return &SnapshotStore{c: gocache.New(ttl, sweep)}
}

// PutSeasonStats stores the latest stats snapshot for a team.
func (s *SnapshotStore) PutSeasonStats(stats models.SeasonStats) {
	s.c.SetDefault(prefixStats+stats.TeamID, stats)
}

// SeasonStats implements StatsProvider.
func (s *SnapshotStore) SeasonStats(teamID string) (*models.SeasonStats, bool) {
	if v, ok := s.c.Get(prefixStats + teamID); ok {
		stats := v.(models.SeasonStats)
		return &stats, true
	}
	return nil, false
}

// PutForecast stores the latest forecast for a game.
func (s *SnapshotStore) PutForecast(f models.WeatherForecast) {
	s.c.SetDefault(prefixWeather+f.GameID, f)
}

// Forecast implements WeatherProvider.
func (s *SnapshotStore) Forecast(gameID string) (*models.WeatherForecast, bool) {
	if v, ok := s.c.Get(prefixWeather + gameID); ok {
		f := v.(models.WeatherForecast)
		return &f, true
	}
	return nil, false
}

// PutInjuryReport stores the latest injury report for a team.
func (s *SnapshotStore) PutInjuryReport(r models.InjuryReport) {
	s.c.SetDefault(prefixInjury+r.TeamID, r)
}

// InjuryReport implements InjuryProvider.
func (s *SnapshotStore) InjuryReport(teamID string) (*models.InjuryReport, bool) {
	if v, ok := s.c.Get(prefixInjury + teamID); ok {
		r := v.(models.InjuryReport)
		return &r, true
	}
	return nil, false
}

// PutTeamContext stores the latest schedule/standings context for a team.
func (s *SnapshotStore) PutTeamContext(tc models.TeamContext) {
	s.c.SetDefault(prefixContext+tc.TeamID, tc)
}

// TeamContext implements ContextProvider.
func (s *SnapshotStore) TeamContext(teamID string) (*models.TeamContext, bool) {
	if v, ok := s.c.Get(prefixContext + teamID); ok {
		tc := v.(models.TeamContext)
		return &tc, true
	}
	return nil, false
}

// PutMarketLine stores the latest market observation for a game. Lines are
// immutable observations: storing never mutates a prior one, it shadows it
// as the latest.
func (s *SnapshotStore) PutMarketLine(line models.MarketLine) {
	s.c.SetDefault(prefixLine+line.GameID, line)
}

// MarketLine implements LineProvider.
func (s *SnapshotStore) MarketLine(gameID string) (*models.MarketLine, bool) {
	if v, ok := s.c.Get(prefixLine + gameID); ok {
		line := v.(models.MarketLine)
		return &line, true
	}
	return nil, false
}

// Bundle returns the store wired into every provider slot.
func (s *SnapshotStore) Bundle() Bundle {
	return Bundle{Stats: s, Weather: s, Injury: s, Context: s, Lines: s}
}
