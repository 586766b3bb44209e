package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/models"
	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/repository/memory"
)

// State is the poll loop's position in its cycle.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateSuccess
	StateFailure
	StateSleeping
)

const (
	activeInterval  = 90 * time.Second
	gameDayInterval = 5 * time.Minute
	offDayInterval  = 10 * time.Minute

	backoffBase = 60 * time.Second
	backoffCap  = 10 * time.Minute
	backoffMax  = 4

	// Local-hour window when games are typically underway.
	activeWindowStart = 12
	activeWindowEnd   = 23

	failureNoiseThreshold = 3
)

// Poller runs the fetch cycle forever, publishing each snapshot to the
// repository. Failures never stop the loop; they only stretch the sleep.
type Poller struct {
	fetcher   *Fetcher
	repo      *memory.Repository
	clock     clockwork.Clock
	onPublish func(previous, current *models.Snapshot)

	state    State
	failures int
}

func NewPoller(fetcher *Fetcher, repo *memory.Repository, clock clockwork.Clock, onPublish func(previous, current *models.Snapshot)) *Poller {
	return &Poller{
		fetcher:   fetcher,
		repo:      repo,
		clock:     clock,
		onPublish: onPublish,
	}
}

func (p *Poller) State() State {
	return p.state
}

func (p *Poller) Run(ctx context.Context) {
	slog.Info("Starting score poll loop")

	for {
		p.state = StateFetching
		snapshot, err := p.fetcher.BuildSnapshot()

		if err != nil {
			p.failures++
			p.state = StateFailure
			message := categorizeError(err, p.failures)
			slog.Error("Fetch cycle failed", "error", err, "consecutive_failures", p.failures)
			p.publish(p.failedSnapshot(message))
		} else {
			p.failures = 0
			p.state = StateSuccess
			p.publish(snapshot)
			slog.Info("Snapshot published", "week", snapshot.Week, "teams", len(snapshot.Scores))
		}

		p.state = StateSleeping
		select {
		case <-ctx.Done():
			return
		case <-p.clock.After(p.nextDelay()):
		}
		p.state = StateIdle
	}
}

func (p *Poller) publish(snapshot *models.Snapshot) {
	previous := p.repo.GetSnapshot()
	p.repo.SaveSnapshot(snapshot)
	if p.onPublish != nil {
		p.onPublish(previous, snapshot)
	}
}

// failedSnapshot keeps the last good scores on the board and attaches the
// categorized error.
func (p *Poller) failedSnapshot(message string) *models.Snapshot {
	snapshot := &models.Snapshot{
		Scores:     []models.TeamScore{},
		LastUpdate: p.clock.Now().UTC(),
		Week:       defaultWeek,
		APIError:   &message,
	}
	if previous := p.repo.GetSnapshot(); previous != nil {
		snapshot.Scores = previous.Scores
		snapshot.Week = previous.Week
		snapshot.LastUpdate = previous.LastUpdate
	}
	return snapshot
}

// nextDelay picks the sleep before the next cycle: exponential backoff while
// failing, otherwise a cadence based on whether games are on today and the
// local hour.
func (p *Poller) nextDelay() time.Duration {
	if p.failures > 0 {
		return backoffDelay(p.failures)
	}

	hasGames := p.fetcher.HasGamesToday()
	hour := p.clock.Now().Hour()

	switch {
	case hasGames && hour >= activeWindowStart && hour < activeWindowEnd:
		return activeInterval
	case hasGames:
		return gameDayInterval
	default:
		return offDayInterval
	}
}

func backoffDelay(failures int) time.Duration {
	delay := backoffBase * time.Duration(1<<min(failures, backoffMax))
	return min(delay, backoffCap)
}

// categorizeError turns a provider failure into the user-facing api_error
// string. Raw error text passes through until repeated failures suggest a
// real outage.
func categorizeError(err error, failures int) string {
	message := strings.ToLower(err.Error())
	switch {
	case strings.Contains(message, "429") || strings.Contains(message, "rate"):
		return "ESPN rate limit reached; updates paused briefly"
	case strings.Contains(message, "timeout"):
		return "ESPN request timed out; retrying"
	case failures > failureNoiseThreshold:
		return fmt.Sprintf("ESPN connection issues (%d failures)", failures)
	default:
		return err.Error()
	}
}
