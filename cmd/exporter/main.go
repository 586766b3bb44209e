// Standalone fetcher that writes the latest league snapshot to a JSON file.
// One-shot by default; -cron keeps it running on a schedule so the front-end
// can stay completely static.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"

	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/api/espn"
	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/api/nfl"
	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/config"
	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/tracker"
)

func main() {
	output := flag.String("output", "public/data/snapshot.json", "path to write the snapshot JSON")
	indent := flag.Int("indent", 2, "number of spaces for JSON indentation")
	cronSpec := flag.String("cron", "", "cron spec for recurring exports (one-shot when empty)")
	flag.Parse()

	if err := run(*output, *indent, *cronSpec); err != nil {
		slog.Error("Error running exporter", "error", err)
		os.Exit(1)
	}
}

func run(output string, indent int, cronSpec string) error {
	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	espnClient := espn.NewClient(cfg.ESPNAPI)
	fetcher := tracker.NewFetcher(espn.NewAPI(espnClient), nfl.NewClient(), clockwork.NewRealClock())

	export := func() error {
		snapshot, err := fetcher.BuildSnapshot()
		if err != nil {
			return fmt.Errorf("building snapshot: %w", err)
		}
		if err := writeSnapshot(output, indent, snapshot); err != nil {
			return err
		}
		slog.Info("Snapshot written", "output", output, "week", snapshot.Week)
		return nil
	}

	if cronSpec == "" {
		return export()
	}

	c := cron.New()
	if _, err := c.AddFunc(cronSpec, func() {
		if err := export(); err != nil {
			slog.Error("Scheduled export failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", cronSpec, err)
	}

	if err := export(); err != nil {
		slog.Error("Initial export failed", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()

	return nil
}

func writeSnapshot(output string, indent int, snapshot interface{}) error {
	data, err := json.MarshalIndent(snapshot, "", strings.Repeat(" ", indent))
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
