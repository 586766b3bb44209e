package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/api/nfl"
	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/models"
)

type stubLeague struct {
	week     int
	weekErr  error
	matchups []models.Matchup
	err      error
}

func (s *stubLeague) GetCurrentWeek() (int, error) {
	return s.week, s.weekErr
}

func (s *stubLeague) GetBoxScores(week int) ([]models.Matchup, error) {
	return s.matchups, s.err
}

type stubScoreboard struct {
	scoreboard *nfl.Scoreboard
	err        error
	calls      int
}

func (s *stubScoreboard) GetScoreboard() (*nfl.Scoreboard, error) {
	s.calls++
	return s.scoreboard, s.err
}

func liveScoreboard(week int, date string) *nfl.Scoreboard {
	return &nfl.Scoreboard{
		Week: nfl.Week{Number: week},
		Events: []nfl.Event{{
			Date: date,
			Competitions: []nfl.Competition{{
				Competitors: []nfl.Competitor{
					{Team: nfl.CompetitorTeam{Abbreviation: "KC"}},
					{Team: nfl.CompetitorTeam{Abbreviation: "BUF"}},
				},
			}},
			Status: nfl.EventStatus{
				DisplayClock: "5:00",
				Period:       2,
				Type:         nfl.StatusType{Name: "STATUS_IN_PROGRESS", State: "in"},
			},
		}},
	}
}

func TestBuildSnapshot(t *testing.T) {
	now := time.Date(2025, time.November, 30, 18, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)

	league := &stubLeague{
		matchups: []models.Matchup{{
			Home: models.MatchupTeam{
				Name:  "UGF Pandas",
				Score: 101.5,
				Lineup: []models.RosterPlayer{
					{Name: "Runner", Points: 5.0, ProjectedPoints: 20.0, ProTeam: "KC", State: models.PlayStateInProgress},
				},
			},
			Away: models.MatchupTeam{
				Name:  "Beyond Cursed",
				Score: 88.2,
				Lineup: []models.RosterPlayer{
					{Name: "Catcher", Points: 0, ProjectedPoints: 11.0, ProTeam: "DAL", State: models.PlayStateNotStarted},
				},
			},
		}},
	}
	scoreboard := &stubScoreboard{scoreboard: liveScoreboard(13, "2025-11-30T18:00Z")}

	fetcher := NewFetcher(league, scoreboard, clock)
	snapshot, err := fetcher.BuildSnapshot()
	require.NoError(t, err)

	assert.Equal(t, 13, snapshot.Week)
	assert.Equal(t, now, snapshot.LastUpdate)
	assert.Nil(t, snapshot.APIError)
	require.Len(t, snapshot.Scores, 2)

	assert.Equal(t, "UGF Pandas", snapshot.Scores[0].TeamName)
	assert.Equal(t, 1, snapshot.Scores[0].Rank)
	// KC at 25 minutes: 5 + 15*(1 - 25/60)
	assert.Equal(t, 13.75, snapshot.Scores[0].ProjectedScore)
	assert.Equal(t, 1, snapshot.Scores[0].PlayersPlayingCount)

	assert.Equal(t, "Beyond Cursed", snapshot.Scores[1].TeamName)
	assert.Equal(t, 2, snapshot.Scores[1].Rank)
	assert.Equal(t, 11.0, snapshot.Scores[1].ProjectedScore)
	assert.Equal(t, 1, snapshot.Scores[1].PlayersRemainingCount)
}

func TestBuildSnapshotLeagueError(t *testing.T) {
	fetcher := NewFetcher(
		&stubLeague{err: errors.New("boom")},
		&stubScoreboard{scoreboard: liveScoreboard(3, "")},
		clockwork.NewFakeClock(),
	)

	_, err := fetcher.BuildSnapshot()
	assert.Error(t, err)
}

func TestBuildSnapshotFeedDownDegradesToEmptyClocks(t *testing.T) {
	league := &stubLeague{
		week: 7,
		matchups: []models.Matchup{{
			Home: models.MatchupTeam{
				Name: "Solo",
				Lineup: []models.RosterPlayer{
					{Name: "Unknown State", ProjectedPoints: 10.0, ProTeam: "KC", State: models.PlayStateUnknown},
				},
			},
			Away: models.MatchupTeam{Name: "Other"},
		}},
	}
	fetcher := NewFetcher(league, &stubScoreboard{err: errors.New("feed down")}, clockwork.NewFakeClock())

	snapshot, err := fetcher.BuildSnapshot()
	require.NoError(t, err)

	// week falls back to the league, missing clocks read as "not started"
	assert.Equal(t, 7, snapshot.Week)
	byName := map[string]models.TeamScore{}
	for _, score := range snapshot.Scores {
		byName[score.TeamName] = score
	}
	assert.Equal(t, 1, byName["Solo"].PlayersRemainingCount)
}

func TestResolveWeek(t *testing.T) {
	t.Run("FeedWins", func(t *testing.T) {
		fetcher := NewFetcher(&stubLeague{week: 5}, &stubScoreboard{}, clockwork.NewFakeClock())
		assert.Equal(t, 13, fetcher.resolveWeek(&nfl.Scoreboard{Week: nfl.Week{Number: 13}}))
	})

	t.Run("LeagueFallback", func(t *testing.T) {
		fetcher := NewFetcher(&stubLeague{week: 5}, &stubScoreboard{}, clockwork.NewFakeClock())
		assert.Equal(t, 5, fetcher.resolveWeek(nil))
	})

	t.Run("DefaultWhenLeagueErrors", func(t *testing.T) {
		fetcher := NewFetcher(&stubLeague{weekErr: errors.New("no league")}, &stubScoreboard{}, clockwork.NewFakeClock())
		assert.Equal(t, 1, fetcher.resolveWeek(nil))
	})

	t.Run("DefaultWhenLeagueWeekInvalid", func(t *testing.T) {
		fetcher := NewFetcher(&stubLeague{week: 0}, &stubScoreboard{}, clockwork.NewFakeClock())
		assert.Equal(t, 1, fetcher.resolveWeek(nil))
	})
}

func TestHasGamesToday(t *testing.T) {
	now := time.Date(2025, time.November, 30, 18, 0, 0, 0, time.UTC)

	t.Run("GameToday", func(t *testing.T) {
		scoreboard := &stubScoreboard{scoreboard: liveScoreboard(13, "2025-11-30T18:00Z")}
		fetcher := NewFetcher(&stubLeague{}, scoreboard, clockwork.NewFakeClockAt(now))
		assert.True(t, fetcher.HasGamesToday())
	})

	t.Run("CachedPerDay", func(t *testing.T) {
		scoreboard := &stubScoreboard{scoreboard: &nfl.Scoreboard{}}
		clock := clockwork.NewFakeClockAt(now)
		fetcher := NewFetcher(&stubLeague{}, scoreboard, clock)

		assert.False(t, fetcher.HasGamesToday())
		require.Equal(t, 1, scoreboard.calls)

		// same day: cached, feed not hit again
		scoreboard.scoreboard = liveScoreboard(13, "2025-11-30T18:00Z")
		assert.False(t, fetcher.HasGamesToday())
		assert.Equal(t, 1, scoreboard.calls)

		// next day: rechecked
		clock.Advance(24 * time.Hour)
		scoreboard.scoreboard = liveScoreboard(13, "2025-12-01T18:00Z")
		assert.True(t, fetcher.HasGamesToday())
		assert.Equal(t, 2, scoreboard.calls)
	})

	t.Run("LateNightGameFromYesterday", func(t *testing.T) {
		lateNight := time.Date(2025, time.December, 1, 3, 0, 0, 0, time.UTC)
		scoreboard := &stubScoreboard{scoreboard: liveScoreboard(13, "2025-11-30T23:00Z")}
		fetcher := NewFetcher(&stubLeague{}, scoreboard, clockwork.NewFakeClockAt(lateNight))
		assert.True(t, fetcher.HasGamesToday())
	})

	t.Run("YesterdayFinishedDoesNotCount", func(t *testing.T) {
		lateNight := time.Date(2025, time.December, 1, 3, 0, 0, 0, time.UTC)
		sb := liveScoreboard(13, "2025-11-30T23:00Z")
		sb.Events[0].Status.Type = nfl.StatusType{Name: "STATUS_FINAL", State: "post"}
		fetcher := NewFetcher(&stubLeague{}, &stubScoreboard{scoreboard: sb}, clockwork.NewFakeClockAt(lateNight))
		assert.False(t, fetcher.HasGamesToday())
	})

	t.Run("FeedErrorAssumesGames", func(t *testing.T) {
		fetcher := NewFetcher(&stubLeague{}, &stubScoreboard{err: errors.New("down")}, clockwork.NewFakeClockAt(now))
		assert.True(t, fetcher.HasGamesToday())
	})
}
