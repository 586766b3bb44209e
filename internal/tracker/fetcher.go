package tracker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/api/nfl"
	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/gameclock"
	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/models"
	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/scoring"
)

const defaultWeek = 1

type LeagueAPI interface {
	GetCurrentWeek() (int, error)
	GetBoxScores(week int) ([]models.Matchup, error)
}

type ScoreboardAPI interface {
	GetScoreboard() (*nfl.Scoreboard, error)
}

// Fetcher runs one fetch cycle: resolve the week and game clocks, pull the
// matchups, score and rank every team, and package the snapshot.
type Fetcher struct {
	league     LeagueAPI
	scoreboard ScoreboardAPI
	clock      clockwork.Clock

	gamesToday     bool
	gamesCheckDate string
}

func NewFetcher(league LeagueAPI, scoreboard ScoreboardAPI, clock clockwork.Clock) *Fetcher {
	return &Fetcher{
		league:     league,
		scoreboard: scoreboard,
		clock:      clock,
	}
}

func (f *Fetcher) BuildSnapshot() (*models.Snapshot, error) {
	scoreboard, err := f.scoreboard.GetScoreboard()
	if err != nil {
		// Degrade to an empty clock map; players without clock data are
		// treated as if their game has not started.
		slog.Warn("Unable to fetch NFL scoreboard", "error", err)
		scoreboard = nil
	}

	week := f.resolveWeek(scoreboard)
	clocks := gameclock.Resolve(scoreboard)

	matchups, err := f.league.GetBoxScores(week)
	if err != nil {
		return nil, fmt.Errorf("fetching box scores: %w", err)
	}

	teams := make([]models.TeamScore, 0, len(matchups)*2)
	for _, matchup := range matchups {
		teams = append(teams,
			scoring.BuildTeamScore(matchup.Home, clocks),
			scoring.BuildTeamScore(matchup.Away, clocks),
		)
	}

	return &models.Snapshot{
		Scores:     scoring.Rank(teams),
		LastUpdate: f.clock.Now().UTC(),
		Week:       week,
	}, nil
}

// resolveWeek prefers the NFL feed's week number, then the league's current
// matchup period, then a fixed default.
func (f *Fetcher) resolveWeek(scoreboard *nfl.Scoreboard) int {
	if scoreboard != nil && scoreboard.Week.Number > 0 {
		return scoreboard.Week.Number
	}

	week, err := f.league.GetCurrentWeek()
	if err != nil {
		slog.Warn("Falling back for current week", "error", err)
		return defaultWeek
	}
	if week < 1 {
		return defaultWeek
	}
	return week
}

// HasGamesToday reports whether any NFL game is relevant today, cached once
// per calendar day.
func (f *Fetcher) HasGamesToday() bool {
	today := f.clock.Now().Format("2006-01-02")
	if f.gamesCheckDate != today {
		f.gamesToday = f.checkGamesTodayOrTonight()
		f.gamesCheckDate = today
	}
	return f.gamesToday
}

// checkGamesTodayOrTonight counts a game as relevant if it is scheduled for
// today, or started yesterday and is still live (games crossing midnight).
// A feed error assumes games exist; over-polling beats missed updates.
func (f *Fetcher) checkGamesTodayOrTonight() bool {
	scoreboard, err := f.scoreboard.GetScoreboard()
	if err != nil || scoreboard == nil {
		return true
	}

	now := f.clock.Now().UTC()
	today := now.Truncate(24 * time.Hour)
	yesterday := today.AddDate(0, 0, -1)

	for _, event := range scoreboard.Events {
		if event.Date == "" {
			continue
		}
		gameTime, err := parseEventDate(event.Date)
		if err != nil {
			continue
		}
		gameDate := gameTime.UTC().Truncate(24 * time.Hour)

		if gameDate.Equal(today) {
			return true
		}
		if gameDate.Equal(yesterday) {
			name := gameclock.ParseGameStatus(event.Status.Type.Name)
			state := gameclock.ParseGameStatus(event.Status.Type.State)
			if name == gameclock.StatusActive || state == gameclock.StatusActive {
				return true
			}
		}
	}

	return false
}

// The feed timestamps games to minute precision ("2024-01-07T18:00Z").
func parseEventDate(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04Z07:00", raw)
}
