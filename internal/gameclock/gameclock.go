package gameclock

import (
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/api/nfl"
)

// GameStatus is the closed set of real-world game states derived from the
// scoreboard feed's free-form status names.
type GameStatus int

const (
	StatusUnknown GameStatus = iota
	StatusScheduled
	StatusActive
	StatusFinished
)

// ParseGameStatus maps a raw status name ("STATUS_FINAL", "in progress",
// "Scheduled", ...) onto the enum. The one place status vocabulary lives.
func ParseGameStatus(raw string) GameStatus {
	s := strings.ToLower(raw)
	switch {
	case s == "":
		return StatusUnknown
	case containsAny(s, "final", "post"):
		return StatusFinished
	case containsAny(s, "sched", "pre", "upcoming"):
		return StatusScheduled
	case containsAny(s, "in", "live", "half", "delay", "end"):
		return StatusActive
	default:
		return StatusUnknown
	}
}

func containsAny(s string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(s, word) {
			return true
		}
	}
	return false
}

// Entry is the resolved clock for one pro team's current game.
type Entry struct {
	Clock         string
	Period        int
	RawStatus     string
	Status        GameStatus
	MinutesPlayed float64
	Progress      float64
}

// Clocks maps pro-team abbreviation to its game clock for today.
type Clocks map[string]Entry

// Resolve builds the clock map from the schedule feed. A nil scoreboard
// yields an empty map; callers treat a missing team as a game that has not
// started.
func Resolve(scoreboard *nfl.Scoreboard) Clocks {
	clocks := make(Clocks)
	if scoreboard == nil {
		return clocks
	}

	for _, event := range scoreboard.Events {
		if len(event.Competitions) == 0 {
			continue
		}
		competitors := event.Competitions[0].Competitors
		if len(competitors) < 2 {
			continue
		}

		clock := event.Status.DisplayClock
		if clock == "" {
			clock = "0:00"
		}
		period := event.Status.Period
		if period < 1 {
			period = 1
		}
		rawStatus := event.Status.Type.Name
		if rawStatus == "" {
			rawStatus = "unknown"
		}

		minutes := minutesPlayed(clock, period, rawStatus)

		entry := Entry{
			Clock:         clock,
			Period:        period,
			RawStatus:     strings.ToLower(rawStatus),
			Status:        ParseGameStatus(rawStatus),
			MinutesPlayed: minutes,
			Progress:      min(minutes/60.0, 1.0),
		}

		for _, competitor := range competitors {
			abbr := competitor.Team.Abbreviation
			if abbr == "" {
				continue
			}
			clocks[abbr] = entry
		}
	}

	return clocks
}

// minutesPlayed converts a display clock (time remaining in the current
// quarter) into total regulation minutes elapsed, clamped to [0, 60]. A clock
// that will not parse counts the game as half played; defaulting to zero
// instead would swing live projections back to the pre-game number.
func minutesPlayed(clock string, period int, status string) float64 {
	switch ParseGameStatus(status) {
	case StatusFinished:
		return 60.0
	case StatusScheduled:
		return 0.0
	}

	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 30.0
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 30.0
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 30.0
	}

	remainingInQuarter := float64(minutes) + float64(seconds)/60.0
	completedQuarters := max(0, period-1)
	elapsedInQuarter := 15.0 - remainingInQuarter
	total := float64(completedQuarters)*15.0 + elapsedInQuarter

	return min(max(total, 0.0), 60.0)
}

const similarityThreshold = 0.6

// Lookup finds a team's clock by abbreviation. The fantasy API and the
// schedule feed disagree on a few abbreviations (WSH/WAS, JAX/JAC), so an
// exact miss falls back to the closest Levenshtein match above a similarity
// threshold.
func (c Clocks) Lookup(abbr string) (Entry, bool) {
	if abbr == "" {
		return Entry{}, false
	}
	if entry, ok := c[abbr]; ok {
		return entry, true
	}

	bestScore := -1.0
	var best Entry
	found := false

	for candidate, entry := range c {
		distance := fuzzy.LevenshteinDistance(strings.ToLower(abbr), strings.ToLower(candidate))
		maxLen := float64(max(len(abbr), len(candidate)))
		similarity := 1 - float64(distance)/maxLen

		if similarity > similarityThreshold && similarity > bestScore {
			bestScore = similarity
			best = entry
			found = true
		}
	}

	return best, found
}
