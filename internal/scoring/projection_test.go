package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/gameclock"
	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/models"
)

func TestLiveProjection(t *testing.T) {
	t.Run("Underperformer", func(t *testing.T) {
		// progress 0.5, remaining 15 -> 5 + 15*0.5
		got := LiveProjection(20.0, 5.0, 30, models.PlayStateInProgress, gameclock.StatusActive)
		assert.Equal(t, 12.5, got)
	})

	t.Run("OverperformanceCarryForward", func(t *testing.T) {
		// bonus (15-10)*(1-0.25) = 3.75
		got := LiveProjection(10.0, 15.0, 30, models.PlayStateInProgress, gameclock.StatusActive)
		assert.Equal(t, 18.75, got)
	})

	t.Run("FinishedByPlayState", func(t *testing.T) {
		got := LiveProjection(20.0, 7.3, 45, models.PlayStateFinished, gameclock.StatusActive)
		assert.Equal(t, 7.3, got)
	})

	t.Run("FinishedByGameStatus", func(t *testing.T) {
		got := LiveProjection(20.0, 7.3, 45, models.PlayStateUnknown, gameclock.StatusFinished)
		assert.Equal(t, 7.3, got)
	})

	t.Run("FullClockReturnsActualExactly", func(t *testing.T) {
		got := LiveProjection(20.0, 31.17, 60, models.PlayStateInProgress, gameclock.StatusActive)
		assert.Equal(t, 31.17, got)
	})

	t.Run("NotStartedReturnsPreGameExactly", func(t *testing.T) {
		got := LiveProjection(17.42, 0, 0, models.PlayStateNotStarted, gameclock.StatusScheduled)
		assert.Equal(t, 17.42, got)
	})

	t.Run("NegativeActualPassesThroughWhenFinished", func(t *testing.T) {
		got := LiveProjection(8.0, -2.0, 60, models.PlayStateFinished, gameclock.StatusFinished)
		assert.Equal(t, -2.0, got)
	})

	t.Run("NegativeActualClampedInBlend", func(t *testing.T) {
		// earned clamps to 0, so the full baseline share remains
		got := LiveProjection(10.0, -2.0, 30, models.PlayStateInProgress, gameclock.StatusActive)
		assert.Equal(t, 5.0, got)
	})

	t.Run("Idempotent", func(t *testing.T) {
		first := LiveProjection(13.7, 6.2, 41, models.PlayStateInProgress, gameclock.StatusActive)
		second := LiveProjection(13.7, 6.2, 41, models.PlayStateInProgress, gameclock.StatusActive)
		assert.Equal(t, first, second)
	})

	t.Run("UnknownStateWithNoClockTracksBaseline", func(t *testing.T) {
		// no clock data: minutes 0, status unknown -> blend at progress 0
		got := LiveProjection(12.0, 0, 0, models.PlayStateUnknown, gameclock.StatusUnknown)
		assert.Equal(t, 12.0, got)
	})
}
