package gameday

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sdvgallardo/fantasy-football-chat-bot-vS/chat"
)

const (
	defaultStrLimit = 2000
	defaultTimezone = "America/New_York"
	defaultTemporal = "localhost:7233"
	defaultNS       = "default"
)

// ReportConfig carries the presentation settings every formatter reads.
type ReportConfig struct {
	// Emotes[i] is prefixed to the team with id i+1.
	Emotes []string
	// Users[i] is the chat handle of the owner of team id i+1.
	Users          []string
	TopHalfScoring bool
	RandomPhrase   bool
	InitMsg        string
	// ScoreWarn flags starters projected at or below this many points.
	ScoreWarn float64
	// WaiverReport appends the day's waivers to the standings of a private league.
	WaiverReport bool
	// Timezone decides which calendar day the waiver report covers.
	Timezone string
}

// Emote returns the configured emote for a team id, or "".
func (c ReportConfig) Emote(teamID int) string {
	return entry(c.Emotes, teamID)
}

// User returns the configured chat handle for a team id, or "".
func (c ReportConfig) User(teamID int) string {
	return entry(c.Users, teamID)
}

func entry(list []string, teamID int) string {
	if teamID < 1 || teamID > len(list) {
		return ""
	}
	return list[teamID-1]
}

type TemporalConfig struct {
	HostPort  string
	Namespace string
	APIKey    string
	TaskQueue string
}

// Local reports whether the Temporal server is a local dev server, which
// runs without TLS or an API key.
func (c TemporalConfig) Local() bool {
	return c.HostPort == "localhost:7233" || c.HostPort == "host.docker.internal:7233"
}

type Config struct {
	LeagueID int
	Year     int
	SWID     string
	EspnS2   string

	Chat     chat.Credentials
	Channels []string
	StrLimit int

	Report ReportConfig

	StartDate    SeasonDate
	EndDate      SeasonDate
	Timezone     string
	ScheduleFile string

	Temporal TemporalConfig
}

// ReportRequest builds the workflow input for fn from the configured delivery settings.
func (c Config) ReportRequest(fn Function) ReportRequest {
	return ReportRequest{Function: fn, Channels: c.Channels, StrLimit: c.StrLimit}
}

// LoadConfig reads a .env file when present, then the environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on environment variables")
	}
	return ConfigFromEnv(os.Getenv)
}

// ConfigFromEnv builds a Config from a getenv-style lookup.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		SWID:         getenv("SWID"),
		EspnS2:       getenv("ESPN_S2"),
		ScheduleFile: getenv("SCHEDULE_FILE"),
		Chat: chat.Credentials{
			GroupMeBotID:      getenv("BOT_ID"),
			SlackWebhookURL:   getenv("SLACK_WEBHOOK_URL"),
			DiscordWebhookURL: getenv("DISCORD_WEBHOOK_URL"),
		},
		Report: ReportConfig{
			Emotes:  splitList(getenv("EMOTES")),
			Users:   splitList(getenv("USERS")),
			InitMsg: getenv("INIT_MSG"),
		},
		Temporal: TemporalConfig{
			HostPort:  getenv("TEMPORAL_HOST"),
			Namespace: getenv("TEMPORAL_NAMESPACE"),
			APIKey:    getenv("TEMPORAL_API_KEY"),
			TaskQueue: getenv("TASK_QUEUE"),
		},
	}

	leagueID := getenv("LEAGUE_ID")
	if leagueID == "" {
		return Config{}, fmt.Errorf("LEAGUE_ID environment variable is not set")
	}
	id, err := strconv.Atoi(leagueID)
	if err != nil {
		return Config{}, fmt.Errorf("invalid LEAGUE_ID %q: %w", leagueID, err)
	}
	cfg.LeagueID = id

	if cfg.Year, err = intOr(getenv("LEAGUE_YEAR"), time.Now().Year()); err != nil {
		return Config{}, fmt.Errorf("invalid LEAGUE_YEAR: %w", err)
	}
	if cfg.StrLimit, err = intOr(getenv("STR_LIMIT"), defaultStrLimit); err != nil {
		return Config{}, fmt.Errorf("invalid STR_LIMIT: %w", err)
	}
	if cfg.Report.TopHalfScoring, err = boolOr(getenv("TOP_HALF_SCORING"), false); err != nil {
		return Config{}, fmt.Errorf("invalid TOP_HALF_SCORING: %w", err)
	}
	if cfg.Report.RandomPhrase, err = boolOr(getenv("RANDOM_PHRASE"), false); err != nil {
		return Config{}, fmt.Errorf("invalid RANDOM_PHRASE: %w", err)
	}
	if cfg.Report.WaiverReport, err = boolOr(getenv("WAIVER_REPORT"), false); err != nil {
		return Config{}, fmt.Errorf("invalid WAIVER_REPORT: %w", err)
	}
	if cfg.Report.ScoreWarn, err = floatOr(getenv("SCORE_WARN"), 0); err != nil {
		return Config{}, fmt.Errorf("invalid SCORE_WARN: %w", err)
	}

	cfg.Timezone = getenv("TIMEZONE")
	if cfg.Timezone == "" {
		cfg.Timezone = defaultTimezone
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Config{}, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Report.Timezone = cfg.Timezone
	if cfg.StartDate, err = ParseSeasonDate(getenv("START_DATE"), loc); err != nil {
		return Config{}, fmt.Errorf("invalid START_DATE: %w", err)
	}
	if cfg.EndDate, err = ParseSeasonDate(getenv("END_DATE"), loc); err != nil {
		return Config{}, fmt.Errorf("invalid END_DATE: %w", err)
	}
	if !cfg.StartDate.IsZero() && !cfg.EndDate.IsZero() && cfg.EndDate.Before(cfg.StartDate.Time) {
		return Config{}, fmt.Errorf("END_DATE %s is before START_DATE %s", cfg.EndDate.Format("2006-01-02"), cfg.StartDate.Format("2006-01-02"))
	}

	cfg.Channels = splitList(getenv("NOTIFICATION_CHANNELS"))
	if len(cfg.Channels) == 0 {
		for _, name := range []string{"groupme", "slack", "discord"} {
			if configuredChannel(cfg.Chat, name) {
				cfg.Channels = append(cfg.Channels, name)
			}
		}
	}
	if len(cfg.Channels) == 0 {
		return Config{}, fmt.Errorf("no messaging platform info provided: set one of BOT_ID, SLACK_WEBHOOK_URL or DISCORD_WEBHOOK_URL, or NOTIFICATION_CHANNELS=logger")
	}

	if cfg.Temporal.HostPort == "" {
		cfg.Temporal.HostPort = defaultTemporal
	}
	if cfg.Temporal.Namespace == "" {
		cfg.Temporal.Namespace = defaultNS
	}
	if cfg.Temporal.TaskQueue == "" {
		cfg.Temporal.TaskQueue = TaskQueueName
	}
	if !cfg.Temporal.Local() && cfg.Temporal.APIKey == "" {
		return Config{}, fmt.Errorf("TEMPORAL_API_KEY environment variable is not set")
	}

	return cfg, nil
}

func configuredChannel(creds chat.Credentials, name string) bool {
	switch name {
	case "groupme":
		return chat.Configured(creds.GroupMeBotID)
	case "slack":
		return chat.Configured(creds.SlackWebhookURL)
	case "discord":
		return chat.Configured(creds.DiscordWebhookURL)
	}
	return false
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func intOr(s string, fallback int) (int, error) {
	if s == "" {
		return fallback, nil
	}
	return strconv.Atoi(s)
}

func floatOr(s string, fallback float64) (float64, error) {
	if s == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(s, 64)
}

func boolOr(s string, fallback bool) (bool, error) {
	if s == "" {
		return fallback, nil
	}
	return strconv.ParseBool(s)
}
