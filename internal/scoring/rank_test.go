package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/models"
)

func TestRankStableTies(t *testing.T) {
	teams := []models.TeamScore{
		{TeamName: "Alpha", LiveScore: 88.2},
		{TeamName: "Bravo", LiveScore: 101.5},
		{TeamName: "Charlie", LiveScore: 101.5},
		{TeamName: "Delta", LiveScore: 40.0},
	}

	ranked := Rank(teams)
	require.Len(t, ranked, 4)

	byName := make(map[string]models.TeamScore)
	for _, team := range ranked {
		byName[team.TeamName] = team
	}

	assert.Equal(t, 3, byName["Alpha"].Rank)
	assert.Equal(t, 1, byName["Bravo"].Rank)
	assert.Equal(t, 2, byName["Charlie"].Rank)
	assert.Equal(t, 4, byName["Delta"].Rank)

	// N <= 6, everyone is in the cohort
	for _, team := range ranked {
		assert.True(t, team.IsCurrentTop6, team.TeamName)
	}

	// canonical order is live score descending
	assert.Equal(t, []string{"Bravo", "Charlie", "Alpha", "Delta"},
		[]string{ranked[0].TeamName, ranked[1].TeamName, ranked[2].TeamName, ranked[3].TeamName})
}

func TestRankPermutationAndTopSix(t *testing.T) {
	teams := make([]models.TeamScore, 0, 10)
	for i := 0; i < 10; i++ {
		teams = append(teams, models.TeamScore{
			TeamName:       string(rune('A' + i)),
			LiveScore:      float64((i * 7) % 10),
			ProjectedScore: float64((i * 3) % 10),
		})
	}

	ranked := Rank(teams)

	seenRank := make(map[int]bool)
	seenProjected := make(map[int]bool)
	for _, team := range ranked {
		assert.False(t, seenRank[team.Rank], "duplicate rank %d", team.Rank)
		assert.False(t, seenProjected[team.ProjectedRank], "duplicate projected rank %d", team.ProjectedRank)
		seenRank[team.Rank] = true
		seenProjected[team.ProjectedRank] = true

		assert.GreaterOrEqual(t, team.Rank, 1)
		assert.LessOrEqual(t, team.Rank, len(ranked))
		assert.GreaterOrEqual(t, team.ProjectedRank, 1)
		assert.LessOrEqual(t, team.ProjectedRank, len(ranked))

		assert.Equal(t, team.Rank <= 6, team.IsCurrentTop6)
		assert.Equal(t, team.ProjectedRank <= 6, team.IsProjectedTop6)
	}
}

func TestRankProjectedIndependentOfCurrent(t *testing.T) {
	teams := []models.TeamScore{
		{TeamName: "Leader", LiveScore: 90, ProjectedScore: 95},
		{TeamName: "Comeback", LiveScore: 50, ProjectedScore: 120},
	}

	ranked := Rank(teams)

	require.Equal(t, "Leader", ranked[0].TeamName)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 2, ranked[0].ProjectedRank)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, 1, ranked[1].ProjectedRank)
}

func TestRankEmpty(t *testing.T) {
	ranked := Rank(nil)
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
}
