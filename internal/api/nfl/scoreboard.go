package nfl

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const scoreboardURL = "https://site.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard"

// Scoreboard is the public NFL schedule feed: today's slate of games with
// clocks and statuses. No credentials required.
type Scoreboard struct {
	Week   Week    `json:"week"`
	Events []Event `json:"events"`
}

type Week struct {
	Number int `json:"number"`
}

type Event struct {
	Date         string        `json:"date"`
	Competitions []Competition `json:"competitions"`
	Status       EventStatus   `json:"status"`
}

type Competition struct {
	Competitors []Competitor `json:"competitors"`
}

type Competitor struct {
	Team CompetitorTeam `json:"team"`
}

type CompetitorTeam struct {
	Abbreviation string `json:"abbreviation"`
}

type EventStatus struct {
	DisplayClock string     `json:"displayClock"`
	Period       int        `json:"period"`
	Type         StatusType `json:"type"`
}

type StatusType struct {
	Name  string `json:"name"`
	State string `json:"state"`
}

type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) GetScoreboard() (*Scoreboard, error) {
	resp, err := c.httpClient.Get(scoreboardURL)
	if err != nil {
		return nil, fmt.Errorf("error fetching NFL scoreboard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var scoreboard Scoreboard
	if err := json.NewDecoder(resp.Body).Decode(&scoreboard); err != nil {
		return nil, fmt.Errorf("error decoding NFL scoreboard: %w", err)
	}

	return &scoreboard, nil
}
