package scheduler

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/models"
	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/repository/memory"
)

// Scheduler posts standings summaries to the chat at the points of the week
// people care about: Sunday afternoon and evening, and the Monday and
// Thursday night games.
type Scheduler struct {
	s           gocron.Scheduler
	repo        *memory.Repository
	sendMessage func(string) error
}

func NewScheduler(repo *memory.Repository, sendMessage func(string) error) (*Scheduler, error) {
	location, err := time.LoadLocation("America/Chicago") // CDT
	if err != nil {
		slog.Error("Failed to load location", "error", err)
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:           s,
		repo:        repo,
		sendMessage: sendMessage,
	}, nil
}

func (s *Scheduler) Start() error {
	var err error

	// Standings summary - Sunday 15:00 and 19:00 CDT
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Sunday), gocron.NewAtTimes(gocron.NewAtTime(15, 0, 0), gocron.NewAtTime(19, 0, 0))),
		gocron.NewTask(s.sendStandings),
	)
	if err != nil {
		return fmt.Errorf("failed to create Sunday standings job: %w", err)
	}

	// Standings summary - Monday and Thursday 19:30 CDT (night games)
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Monday, time.Thursday), gocron.NewAtTimes(gocron.NewAtTime(19, 30, 0))),
		gocron.NewTask(s.sendStandings),
	)
	if err != nil {
		return fmt.Errorf("failed to create night game standings job: %w", err)
	}

	// Final standings - Tuesday 7:30 CDT, once all stat corrections land
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Tuesday), gocron.NewAtTimes(gocron.NewAtTime(7, 30, 0))),
		gocron.NewTask(s.sendStandings),
	)
	if err != nil {
		return fmt.Errorf("failed to create final standings job: %w", err)
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) sendStandings() {
	snapshot := s.repo.GetSnapshot()
	if snapshot == nil {
		slog.Warn("No snapshot available for standings summary")
		return
	}
	if err := s.sendMessage(FormatStandings(snapshot)); err != nil {
		slog.Error("Failed to send standings summary", "error", err)
	}
}

// FormatStandings renders the snapshot as a chat message, starring the top-6
// cohort.
func FormatStandings(snapshot *models.Snapshot) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏈 *Week %d Standings*\n\n", snapshot.Week))

	for _, team := range snapshot.Scores {
		star := ""
		if team.IsCurrentTop6 {
			star = " ⭐"
		}
		sb.WriteString(fmt.Sprintf("%d. *%s*%s\n", team.Rank, team.TeamName, star))
		sb.WriteString(fmt.Sprintf("   %.2f pts (proj %.2f, #%d)\n", team.LiveScore, team.ProjectedScore, team.ProjectedRank))
		sb.WriteString(fmt.Sprintf("   Playing: %d | Yet to play: %d | Done: %d\n\n",
			team.PlayersPlayingCount, team.PlayersRemainingCount, team.PlayersFinishedCount))
	}

	if snapshot.APIError != nil {
		sb.WriteString(fmt.Sprintf("⚠️ %s\n", *snapshot.APIError))
	}

	return sb.String()
}
