package main

import (
	"log/slog"
	"os"

	gameday "github.com/sdvgallardo/fantasy-football-chat-bot-vS"
	"github.com/sdvgallardo/fantasy-football-chat-bot-vS/chat"
	"github.com/sdvgallardo/fantasy-football-chat-bot-vS/espn"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

func main() {
	logger := gameday.SetupLogging()

	cfg, err := gameday.LoadConfig()
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Create Temporal client
	c, err := client.Dial(gameday.GetClientOptions(cfg.Temporal))
	if err != nil {
		logger.Error("Unable to create Temporal client", "error", err)
		os.Exit(1)
	}
	defer c.Close()

	league := espn.NewClient(espn.ClientConfig{
		LeagueID: cfg.LeagueID,
		Year:     cfg.Year,
		EspnS2:   cfg.EspnS2,
		SWID:     cfg.SWID,
		Logger:   logger,
	})
	activities := &gameday.Activities{
		Reporter: gameday.NewReporter(league, cfg.Report),
		Bots:     chat.NewBots(cfg.Chat, nil),
	}

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})
	w.RegisterWorkflow(gameday.ReportWorkflow)
	w.RegisterActivity(activities)

	slog.Info("Starting Temporal worker for gameday bot", "taskQueue", cfg.Temporal.TaskQueue, "leagueID", cfg.LeagueID, "channels", cfg.Channels)
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Unable to start worker", "error", err)
		os.Exit(1)
	}
}
