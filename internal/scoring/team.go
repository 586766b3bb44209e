package scoring

import (
	"fmt"

	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/gameclock"
	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/models"
)

// BuildTeamScore aggregates one matchup side into a TeamScore. Starters only;
// each starter lands in exactly one of the three label lists. The live score
// is the upstream matchup total, which can include adjustments the lineup sum
// would miss, so it is trusted rather than recomputed.
func BuildTeamScore(team models.MatchupTeam, clocks gameclock.Clocks) models.TeamScore {
	currentlyPlaying := []string{}
	yetToPlay := []string{}
	finishedPlaying := []string{}
	projectedTotal := 0.0
	totalStarters := 0

	for _, player := range team.Lineup {
		if player.IsBench {
			continue
		}
		totalStarters++

		entry, _ := clocks.Lookup(player.ProTeam)

		projectedTotal += LiveProjection(
			player.ProjectedPoints,
			player.Points,
			entry.MinutesPlayed,
			player.State,
			entry.Status,
		)

		projLabel := fmt.Sprintf("%s (proj: %.1f)", player.Name, player.ProjectedPoints)
		ptsLabel := fmt.Sprintf("%s (%.1f)", player.Name, player.Points)

		switch player.State {
		case models.PlayStateNotStarted:
			yetToPlay = append(yetToPlay, projLabel)
		case models.PlayStateInProgress:
			currentlyPlaying = append(currentlyPlaying, ptsLabel)
		case models.PlayStateFinished:
			finishedPlaying = append(finishedPlaying, ptsLabel)
		default:
			// Provider state unknown: fall back to the game clock's status.
			switch entry.Status {
			case gameclock.StatusFinished:
				finishedPlaying = append(finishedPlaying, ptsLabel)
			case gameclock.StatusActive:
				currentlyPlaying = append(currentlyPlaying, ptsLabel)
			default:
				yetToPlay = append(yetToPlay, projLabel)
			}
		}
	}

	return models.TeamScore{
		TeamName:              team.Name,
		LiveScore:             team.Score,
		ProjectedScore:        round2(projectedTotal),
		CurrentlyPlaying:      currentlyPlaying,
		YetToPlay:             yetToPlay,
		FinishedPlaying:       finishedPlaying,
		PlayersPlayingCount:   len(currentlyPlaying),
		PlayersRemainingCount: len(yetToPlay),
		PlayersFinishedCount:  len(finishedPlaying),
		TotalStarters:         totalStarters,
	}
}
