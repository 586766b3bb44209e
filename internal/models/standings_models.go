package models

import "time"

// PlayState is the provider's per-player game state, mapped once at the API
// boundary from the raw integer codes ESPN uses (0 not started, 1 in
// progress, 2/100 finished).
type PlayState int

const (
	PlayStateUnknown PlayState = iota
	PlayStateNotStarted
	PlayStateInProgress
	PlayStateFinished
)

func PlayStateFromCode(code int) PlayState {
	switch code {
	case 0:
		return PlayStateNotStarted
	case 1:
		return PlayStateInProgress
	case 2, 100:
		return PlayStateFinished
	default:
		return PlayStateUnknown
	}
}

// RosterPlayer is one lineup slot for the current scoring period, with every
// optional provider field already defaulted.
type RosterPlayer struct {
	Name            string
	Points          float64
	ProjectedPoints float64
	ProTeam         string
	LineupSlot      string
	IsBench         bool
	State           PlayState
}

type MatchupTeam struct {
	Name   string
	Score  float64
	Lineup []RosterPlayer
}

type Matchup struct {
	MatchID int
	Home    MatchupTeam
	Away    MatchupTeam
}

// TeamScore is one team's entry in the ranked snapshot. The JSON shape is
// consumed as-is by the dashboard and the exporter.
type TeamScore struct {
	TeamName              string   `json:"team_name"`
	LiveScore             float64  `json:"live_score"`
	ProjectedScore        float64  `json:"projected_score"`
	CurrentlyPlaying      []string `json:"currently_playing"`
	YetToPlay             []string `json:"yet_to_play"`
	FinishedPlaying       []string `json:"finished_playing"`
	PlayersPlayingCount   int      `json:"players_playing_count"`
	PlayersRemainingCount int      `json:"players_remaining_count"`
	PlayersFinishedCount  int      `json:"players_finished_count"`
	TotalStarters         int      `json:"total_starters"`
	Rank                  int      `json:"rank"`
	IsCurrentTop6         bool     `json:"is_current_top6"`
	ProjectedRank         int      `json:"projected_rank"`
	IsProjectedTop6       bool     `json:"is_projected_top6"`
}

// Snapshot is the complete result of one polling cycle.
type Snapshot struct {
	Scores     []TeamScore `json:"scores"`
	LastUpdate time.Time   `json:"last_update"`
	Week       int         `json:"week"`
	APIError   *string     `json:"api_error"`
}
