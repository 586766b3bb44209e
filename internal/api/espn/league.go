package espn

import (
	"encoding/json"
	"fmt"

	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/models"
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

// GetCurrentWeek returns the league's own notion of the current matchup
// period. Used as a fallback when the NFL scoreboard has no week number.
func (a *API) GetCurrentWeek() (int, error) {
	var leagueResponse models.LeagueResponse
	endpoint := fmt.Sprintf("/seasons/%d/segments/0/leagues/%s", a.client.Year, a.client.Config.LeagueID)
	params := map[string]string{
		"view": "mSettings",
	}

	if err := a.client.Get(endpoint, params, nil, &leagueResponse); err != nil {
		return 0, fmt.Errorf("fetching league metadata: %w", err)
	}

	return leagueResponse.Status.CurrentMatchupPeriod, nil
}

// GetBoxScores fetches the week's matchups with full lineups. Every optional
// provider field is defaulted here, so nothing downstream touches raw
// responses.
func (a *API) GetBoxScores(week int) ([]models.Matchup, error) {
	var scoreboardResponse models.ScoreboardResponse
	endpoint := fmt.Sprintf("/seasons/%d/segments/0/leagues/%s", a.client.Year, a.client.Config.LeagueID)

	params := map[string]string{
		"view":            "mScoreboard,mTeam",
		"scoringPeriodId": fmt.Sprintf("%d", week),
	}

	filters := map[string]interface{}{
		"schedule": map[string]interface{}{
			"filterMatchupPeriodIds": map[string]interface{}{
				"value": []int{week},
			},
		},
	}

	filtersJSON, err := json.Marshal(filters)
	if err != nil {
		return nil, fmt.Errorf("error marshalling filters: %w", err)
	}

	headers := map[string]string{
		"x-fantasy-filter": string(filtersJSON),
	}

	if err := a.client.Get(endpoint, params, headers, &scoreboardResponse); err != nil {
		return nil, fmt.Errorf("fetching box scores: %w", err)
	}

	teamNames := make(map[int]string, len(scoreboardResponse.Teams))
	for _, team := range scoreboardResponse.Teams {
		teamNames[team.ID] = team.Name
	}

	var matchups []models.Matchup
	for _, match := range scoreboardResponse.Schedule {
		matchups = append(matchups, models.Matchup{
			MatchID: match.ID,
			Home:    toMatchupTeam(match.Home, teamNames, week),
			Away:    toMatchupTeam(match.Away, teamNames, week),
		})
	}

	return matchups, nil
}

func toMatchupTeam(side models.MatchupSide, teamNames map[int]string, week int) models.MatchupTeam {
	name, ok := teamNames[side.TeamID]
	if !ok || name == "" {
		name = "Unknown Team"
	}

	score := side.TotalPointsLive
	if score == 0 {
		score = side.TotalPoints
	}

	lineup := make([]models.RosterPlayer, 0, len(side.RosterForCurrentScoringPeriod.Entries))
	for _, entry := range side.RosterForCurrentScoringPeriod.Entries {
		lineup = append(lineup, toRosterPlayer(entry, week))
	}

	return models.MatchupTeam{
		Name:   name,
		Score:  score,
		Lineup: lineup,
	}
}

// toRosterPlayer is the single raw-entry conversion point: names, points and
// play state all get defaults so a sparse provider record never aborts a
// cycle.
func toRosterPlayer(entry models.RosterEntry, week int) models.RosterPlayer {
	player := entry.PlayerPoolEntry.Player

	name := player.FullName
	if name == "" {
		name = "Unknown"
	}

	actual, projected := playerPoints(entry.PlayerPoolEntry, week)

	return models.RosterPlayer{
		Name:            name,
		Points:          actual,
		ProjectedPoints: projected,
		ProTeam:         getProTeamString(player.ProTeamID),
		LineupSlot:      getLineupSlotString(entry.LineupSlotID),
		IsBench:         isBenchSlot(entry.LineupSlotID),
		State:           models.PlayStateFromCode(entry.PlayerPoolEntry.GamesPlayed),
	}
}

func playerPoints(entry models.PlayerPoolEntry, week int) (actual, projected float64) {
	for _, stat := range entry.Player.Stats {
		if stat.ScoringPeriodID != week {
			continue
		}
		switch stat.StatSourceID {
		case 0:
			actual = stat.AppliedTotal
		case 1:
			projected = stat.AppliedTotal
		}
	}
	return actual, projected
}

// Only the bench slot is excluded from team totals; IR and flex slots count
// as starters.
func isBenchSlot(slotID int) bool {
	return slotID == 20
}

func getLineupSlotString(slotID int) string {
	switch slotID {
	case 0:
		return "QB"
	case 2:
		return "RB"
	case 4:
		return "WR"
	case 6:
		return "TE"
	case 16:
		return "D/ST"
	case 17:
		return "K"
	case 20:
		return "BE"
	case 21:
		return "IR"
	case 23:
		return "FLEX"
	default:
		return "Unknown"
	}
}

func getProTeamString(proTeamID int) string {
	teams := map[int]string{
		1: "ATL", 2: "BUF", 3: "CHI", 4: "CIN", 5: "CLE", 6: "DAL", 7: "DEN", 8: "DET",
		9: "GB", 10: "TEN", 11: "IND", 12: "KC", 13: "LV", 14: "LAR", 15: "MIA", 16: "MIN",
		17: "NE", 18: "NO", 19: "NYG", 20: "NYJ", 21: "PHI", 22: "ARI", 23: "PIT", 24: "LAC",
		25: "SF", 26: "SEA", 27: "TB", 28: "WSH", 29: "CAR", 30: "JAX", 33: "BAL", 34: "HOU",
	}

	if team, ok := teams[proTeamID]; ok {
		return team
	}

	return ""
}
