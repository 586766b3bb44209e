package scoring

import (
	"math"

	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/gameclock"
	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/models"
)

// LiveProjection blends a player's pre-game projection with actual
// performance and game progress.
//
// A finished game (by play state, game status, or a fully elapsed clock)
// returns the actual points as-is. An unstarted game returns the pre-game
// projection as-is. In between, the unearned share of the projection decays
// with progress; a player already over their projection keeps a shrinking
// bonus instead of being projected back down to the baseline.
func LiveProjection(preGame, actual, minutesPlayed float64, state models.PlayState, status gameclock.GameStatus) float64 {
	if state == models.PlayStateFinished || status == gameclock.StatusFinished || minutesPlayed >= 60 {
		return actual
	}
	if state == models.PlayStateNotStarted {
		return preGame
	}

	progress := min(max(minutesPlayed/60.0, 0.0), 1.0)
	baseline := max(preGame, 0.0)
	earned := max(actual, 0.0)
	remaining := max(baseline-earned, 0.0)

	projected := earned + remaining*(1-progress)

	if earned > baseline {
		bonus := (earned - baseline) * (1 - progress*0.5)
		projected = earned + bonus
	}

	return round2(projected)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
