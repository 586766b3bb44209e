package config

import (
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ESPNAPI  ESPNAPI
	Telegram Telegram
}

type ESPNAPI struct {
	Year     string `envconfig:"ESPN_YEAR"`
	LeagueID string `envconfig:"ESPN_LEAGUE_ID" required:"true"`
	SWID     string `envconfig:"ESPN_SWID" required:"true"`
	ESPNS2   string `envconfig:"ESPN_S2" required:"true"`
}

// Telegram is optional; an empty token disables the notifier.
type Telegram struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"TELEGRAM_CHAT_ID"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// TargetYear returns the configured season year, or infers it from the
// current date: an NFL season starting in the fall belongs to that calendar
// year through the following June.
func (e ESPNAPI) TargetYear(now time.Time) int {
	if e.Year != "" {
		if year, err := strconv.Atoi(e.Year); err == nil {
			return year
		}
	}
	if now.Month() >= time.July {
		return now.Year()
	}
	return now.Year() - 1
}
