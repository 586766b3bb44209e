package notify

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/models"
)

// Notifier posts league updates to a Telegram chat. A nil Notifier is a
// no-op, so callers never need to check whether it is configured.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewNotifier(token string, chatID int64) (*Notifier, error) {
	if token == "" {
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}

	return &Notifier{
		bot:    bot,
		chatID: chatID,
	}, nil
}

func (n *Notifier) SendMessage(text string) error {
	if n == nil {
		return nil
	}
	if n.chatID == 0 {
		return fmt.Errorf("chat ID not set")
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = "Markdown"
	_, err := n.bot.Send(msg)
	if err != nil {
		slog.Error("Error sending message", "error", err)
	}
	return err
}

// AnnounceTopSixChanges pings the chat when the current top-6 cohort shifts
// between two published snapshots.
func (n *Notifier) AnnounceTopSixChanges(previous, current *models.Snapshot) {
	if n == nil || previous == nil || current == nil {
		return
	}

	entered, dropped := topSixDiff(previous, current)
	if len(entered) == 0 && len(dropped) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString("🔔 *Top-6 update*\n")
	for _, team := range entered {
		sb.WriteString(fmt.Sprintf("⬆️ %s moved into the top 6\n", team))
	}
	for _, team := range dropped {
		sb.WriteString(fmt.Sprintf("⬇️ %s dropped out of the top 6\n", team))
	}

	if err := n.SendMessage(sb.String()); err != nil {
		slog.Error("Failed to announce top-6 change", "error", err)
	}
}

func topSixDiff(previous, current *models.Snapshot) (entered, dropped []string) {
	was := make(map[string]bool)
	for _, team := range previous.Scores {
		if team.IsCurrentTop6 {
			was[team.TeamName] = true
		}
	}

	now := make(map[string]bool)
	for _, team := range current.Scores {
		if team.IsCurrentTop6 {
			now[team.TeamName] = true
			if !was[team.TeamName] {
				entered = append(entered, team.TeamName)
			}
		}
	}
	for team := range was {
		if !now[team] {
			dropped = append(dropped, team)
		}
	}
	sort.Strings(dropped)

	return entered, dropped
}
