package gameday

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"gopkg.in/yaml.v3"
)

const (
	// Kickoff times are announced in Eastern time.
	GameTimezone = "America/New_York"

	ScheduleIDPrefix = "gameday-"

	// A job that fires within this window of its planned time still runs.
	misfireGrace = 15 * time.Minute
)

// Job is one row of the posting timetable. Timezone is an IANA zone name,
// "game" for GameTimezone, or empty for the league's local TIMEZONE.
type Job struct {
	Name     string   `yaml:"name"`
	Function Function `yaml:"function"`
	Cron     string   `yaml:"cron"`
	Timezone string   `yaml:"timezone,omitempty"`
}

// ScheduleFile is the YAML form of the timetable. Dates override START_DATE
// and END_DATE when set.
type ScheduleFile struct {
	StartDate SeasonDate `yaml:"start_date"`
	EndDate   SeasonDate `yaml:"end_date"`
	Jobs      []Job      `yaml:"jobs"`
}

// DefaultJobs is the regular season timetable:
//
//	close scores:   monday 6:30pm game time
//	final recap:    tuesday 7:30am local time
//	power rankings: tuesday 6:30pm local time
//	standings:      wednesday 7:30am local time
//	matchups:       thursday 7:30pm game time
//	scoreboard:     friday and monday 7:30am local time, sunday 4pm and 8pm game time
//	monitor:        sunday 7:30am local time
//	inactives:      sunday 12:05pm game time
func DefaultJobs() []Job {
	return []Job{
		{Name: "close_scores", Function: FunctionCloseScores, Cron: "30 18 * * 1", Timezone: "game"},
		{Name: "final", Function: FunctionFinal, Cron: "30 7 * * 2"},
		{Name: "power_rankings", Function: FunctionPowerRankings, Cron: "30 18 * * 2"},
		{Name: "standings", Function: FunctionStandings, Cron: "30 7 * * 3"},
		{Name: "matchups", Function: FunctionMatchups, Cron: "30 19 * * 4", Timezone: "game"},
		{Name: "scoreboard1", Function: FunctionScoreboard, Cron: "30 7 * * 1,5"},
		{Name: "scoreboard2", Function: FunctionScoreboard, Cron: "0 16,20 * * 0", Timezone: "game"},
		{Name: "monitor", Function: FunctionMonitor, Cron: "30 7 * * 0"},
		{Name: "inactives", Function: FunctionInactives, Cron: "5 12 * * 0", Timezone: "game"},
	}
}

// LoadScheduleFile reads a YAML timetable from path.
func LoadScheduleFile(path string) (ScheduleFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ScheduleFile{}, fmt.Errorf("failed to read schedule file: %w", err)
	}
	return ParseScheduleFile(data)
}

func ParseScheduleFile(data []byte) (ScheduleFile, error) {
	var file ScheduleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return ScheduleFile{}, fmt.Errorf("failed to parse schedule file: %w", err)
	}
	if len(file.Jobs) == 0 {
		return ScheduleFile{}, fmt.Errorf("schedule file has no jobs")
	}
	return file, nil
}

// ResolveTimezone maps a job's timezone field to an IANA zone name.
func ResolveTimezone(jobTZ, localTZ string) string {
	switch jobTZ {
	case "", "local":
		return localTZ
	case "game":
		return GameTimezone
	}
	return jobTZ
}

// ValidateJobs checks every job before anything is registered.
func ValidateJobs(jobs []Job, localTZ string) error {
	seen := make(map[string]bool, len(jobs))
	for _, job := range jobs {
		if job.Name == "" {
			return fmt.Errorf("job with cron %q has no name", job.Cron)
		}
		if seen[job.Name] {
			return fmt.Errorf("job %s: duplicate name", job.Name)
		}
		seen[job.Name] = true

		if !job.Function.Valid() {
			return fmt.Errorf("job %s: unknown function %q", job.Name, job.Function)
		}
		if _, err := cron.ParseStandard(job.Cron); err != nil {
			return fmt.Errorf("job %s: invalid cron %q: %w", job.Name, job.Cron, err)
		}
		tz := ResolveTimezone(job.Timezone, localTZ)
		if _, err := time.LoadLocation(tz); err != nil {
			return fmt.Errorf("job %s: invalid timezone %q: %w", job.Name, tz, err)
		}
	}
	return nil
}

// BuildScheduleOptions turns the timetable into Temporal schedules that start
// ReportWorkflow between the season's start and end dates.
func BuildScheduleOptions(cfg Config, jobs []Job) []client.ScheduleOptions {
	options := make([]client.ScheduleOptions, 0, len(jobs))
	for _, job := range jobs {
		options = append(options, client.ScheduleOptions{
			ID: ScheduleIDPrefix + job.Name,
			Spec: client.ScheduleSpec{
				CronExpressions: []string{job.Cron},
				StartAt:         cfg.StartDate.Time,
				EndAt:           cfg.EndDate.Time,
				TimeZoneName:    ResolveTimezone(job.Timezone, cfg.Timezone),
			},
			Action: &client.ScheduleWorkflowAction{
				ID:        WorkflowIDPrefix + job.Name,
				Workflow:  ReportWorkflow,
				Args:      []interface{}{cfg.ReportRequest(job.Function)},
				TaskQueue: cfg.Temporal.TaskQueue,
			},
			Overlap:       enumspb.SCHEDULE_OVERLAP_POLICY_SKIP,
			CatchupWindow: misfireGrace,
			Note:          fmt.Sprintf("%s (%s)", job.Function, job.Cron),
		})
	}
	return options
}

// ApplySchedules creates every schedule, replacing any existing schedule with the same ID.
func ApplySchedules(ctx context.Context, schedules client.ScheduleClient, options []client.ScheduleOptions) error {
	for _, opts := range options {
		handle, err := schedules.Create(ctx, opts)
		if errors.Is(err, temporal.ErrScheduleAlreadyRunning) {
			slog.Info("Replacing existing schedule", "scheduleID", opts.ID)
			if err := schedules.GetHandle(ctx, opts.ID).Delete(ctx); err != nil {
				return fmt.Errorf("unable to delete schedule %s: %w", opts.ID, err)
			}
			handle, err = schedules.Create(ctx, opts)
		}
		if err != nil {
			return fmt.Errorf("unable to create schedule %s: %w", opts.ID, err)
		}
		slog.Info("Created schedule", "scheduleID", handle.GetID(), "cron", opts.Spec.CronExpressions, "timezone", opts.Spec.TimeZoneName)
	}
	return nil
}
