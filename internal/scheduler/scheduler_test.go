package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/models"
)

func TestFormatStandings(t *testing.T) {
	snapshot := &models.Snapshot{
		Week:       12,
		LastUpdate: time.Date(2025, time.November, 30, 18, 0, 0, 0, time.UTC),
		Scores: []models.TeamScore{
			{
				TeamName: "UGF Pandas", LiveScore: 101.5, ProjectedScore: 120.25,
				Rank: 1, IsCurrentTop6: true, ProjectedRank: 2,
				PlayersPlayingCount: 3, PlayersRemainingCount: 4, PlayersFinishedCount: 2,
			},
			{
				TeamName: "Beyond Cursed", LiveScore: 40.0, ProjectedScore: 88.0,
				Rank: 2, ProjectedRank: 1,
			},
		},
	}

	message := FormatStandings(snapshot)

	assert.Contains(t, message, "Week 12 Standings")
	assert.Contains(t, message, "1. *UGF Pandas* ⭐")
	assert.Contains(t, message, "101.50 pts (proj 120.25, #2)")
	assert.Contains(t, message, "Playing: 3 | Yet to play: 4 | Done: 2")
	assert.Contains(t, message, "2. *Beyond Cursed*\n")
	assert.NotContains(t, message, "⚠️")
}

func TestFormatStandingsWithError(t *testing.T) {
	apiError := "ESPN connection issues (5 failures)"
	snapshot := &models.Snapshot{Week: 3, APIError: &apiError}

	message := FormatStandings(snapshot)
	assert.Contains(t, message, "⚠️ ESPN connection issues (5 failures)")
}
