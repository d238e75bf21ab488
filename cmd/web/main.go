package main

import (
	"net/http"
	"os"

	gameday "github.com/sdvgallardo/fantasy-football-chat-bot-vS"
	"github.com/sdvgallardo/fantasy-football-chat-bot-vS/espn"
	"github.com/sdvgallardo/fantasy-football-chat-bot-vS/web"
	"go.temporal.io/sdk/client"
)

func main() {
	logger := gameday.SetupLogging()

	cfg, err := gameday.LoadConfig()
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Create Temporal client
	var temporalClient client.Client
	temporalClient, err = client.Dial(gameday.GetClientOptions(cfg.Temporal))
	if err != nil {
		logger.Warn("Unable to create Temporal client, running in demo mode", "error", err)
		temporalClient = nil
	} else {
		defer temporalClient.Close()
		logger.Info("Successfully connected to Temporal server")
	}

	league := espn.NewClient(espn.ClientConfig{
		LeagueID: cfg.LeagueID,
		Year:     cfg.Year,
		EspnS2:   cfg.EspnS2,
		SWID:     cfg.SWID,
		Logger:   logger,
	})
	handlers := web.NewHandlers(temporalClient, gameday.NewReporter(league, cfg.Report), cfg)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("Starting web server", "port", port)
	if err := http.ListenAndServe(":"+port, web.NewRouter(handlers)); err != nil {
		logger.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}
