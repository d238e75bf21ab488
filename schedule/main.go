package main

import (
	"context"
	"os"

	gameday "github.com/sdvgallardo/fantasy-football-chat-bot-vS"
	"go.temporal.io/sdk/client"
)

// Registers the season timetable as Temporal schedules. SCHEDULE_FILE points
// at an optional YAML timetable; without it the default one is used.
func main() {
	logger := gameday.SetupLogging()

	cfg, err := gameday.LoadConfig()
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	jobs := gameday.DefaultJobs()
	if cfg.ScheduleFile != "" {
		file, err := gameday.LoadScheduleFile(cfg.ScheduleFile)
		if err != nil {
			logger.Error("Unable to load schedule file", "path", cfg.ScheduleFile, "error", err)
			os.Exit(1)
		}
		jobs = file.Jobs
		if !file.StartDate.IsZero() {
			cfg.StartDate = file.StartDate
		}
		if !file.EndDate.IsZero() {
			cfg.EndDate = file.EndDate
		}
	}

	if err := gameday.ValidateJobs(jobs, cfg.Timezone); err != nil {
		logger.Error("Invalid schedule", "error", err)
		os.Exit(1)
	}

	c, err := client.Dial(gameday.GetClientOptions(cfg.Temporal))
	if err != nil {
		logger.Error("Unable to create Temporal client", "error", err)
		os.Exit(1)
	}
	defer c.Close()

	options := gameday.BuildScheduleOptions(cfg, jobs)
	if err := gameday.ApplySchedules(context.Background(), c.ScheduleClient(), options); err != nil {
		logger.Error("Unable to apply schedules", "error", err)
		os.Exit(1)
	}
	logger.Info("Ready!", "schedules", len(options))
}
