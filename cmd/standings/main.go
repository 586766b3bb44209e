package main

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/api/espn"
	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/api/nfl"
	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/config"
	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/models"
	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/notify"
	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/repository/memory"
	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/scheduler"
	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/tracker"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	espnClient := espn.NewClient(cfg.ESPNAPI)
	leagueAPI := espn.NewAPI(espnClient)
	scoreboardAPI := nfl.NewClient()

	clock := clockwork.NewRealClock()
	repo := memory.NewRepository()
	fetcher := tracker.NewFetcher(leagueAPI, scoreboardAPI, clock)

	notifier, err := notify.NewNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID)
	if err != nil {
		return err
	}

	poller := tracker.NewPoller(fetcher, repo, clock, notifier.AnnounceTopSixChanges)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go poller.Run(ctx)

	if notifier != nil {
		sched, err := scheduler.NewScheduler(repo, notifier.SendMessage)
		if err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		defer func() {
			if err := sched.Stop(); err != nil {
				slog.Error("Error stopping scheduler", "error", err)
			}
		}()
	}

	http.HandleFunc("/", indexHandler(repo))
	http.HandleFunc("/api/scores", scoresHandler(repo))
	http.HandleFunc("/healthz", healthCheckHandler)

	go func() {
		if err := http.ListenAndServe(":5000", nil); err != nil {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	return nil
}

func currentSnapshot(repo *memory.Repository) *models.Snapshot {
	snapshot := repo.GetSnapshot()
	if snapshot == nil {
		return &models.Snapshot{Scores: []models.TeamScore{}}
	}
	return snapshot
}

func scoresHandler(repo *memory.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		setNoCache(w)
		if err := json.NewEncoder(w).Encode(currentSnapshot(repo)); err != nil {
			slog.Error("Error encoding snapshot", "error", err)
		}
	}
}

func indexHandler(repo *memory.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		setNoCache(w)
		if err := indexTemplate.Execute(w, currentSnapshot(repo)); err != nil {
			slog.Error("Error rendering index", "error", err)
		}
	}
}

func setNoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta http-equiv="refresh" content="90">
    <title>Live Fantasy Football Standings</title>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 20px; }
        .container { max-width: 900px; margin: auto; background: white; padding: 20px; border-radius: 8px; }
        table { width: 100%; border-collapse: collapse; }
        th, td { padding: 10px; text-align: left; border-bottom: 1px solid #ddd; }
        th { background-color: #f8f8f8; }
        .top6 { background-color: #e8f5e9; }
        .error { color: #b00020; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Live Fantasy Football Standings</h1>
        <p>Week {{.Week}} &mdash; updated {{.LastUpdate.Format "15:04:05 MST"}}</p>
        {{if .APIError}}<p class="error">{{.APIError}}</p>{{end}}
        <table>
            <thead>
                <tr>
                    <th>Rank</th><th>Team</th><th>Live</th><th>Projected</th>
                    <th>Playing</th><th>Yet to Play</th><th>Finished</th>
                </tr>
            </thead>
            <tbody>
                {{range .Scores}}
                <tr{{if .IsCurrentTop6}} class="top6"{{end}}>
                    <td>{{.Rank}}</td>
                    <td>{{.TeamName}}</td>
                    <td>{{printf "%.2f" .LiveScore}}</td>
                    <td>{{printf "%.2f" .ProjectedScore}} (#{{.ProjectedRank}})</td>
                    <td>{{.PlayersPlayingCount}}</td>
                    <td>{{.PlayersRemainingCount}}</td>
                    <td>{{.PlayersFinishedCount}}</td>
                </tr>
                {{end}}
            </tbody>
        </table>
    </div>
</body>
</html>
`))
