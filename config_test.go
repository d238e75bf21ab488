package gameday

import (
	"testing"
	"time"

	"github.com/sdvgallardo/fantasy-football-chat-bot-vS/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(env map[string]string) func(string) string {
	return func(key string) string { return env[key] }
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	cfg, err := ConfigFromEnv(envMap(map[string]string{
		"LEAGUE_ID": "123456",
		"BOT_ID":    "groupme-bot",
	}))
	require.NoError(t, err)

	assert.Equal(t, 123456, cfg.LeagueID)
	assert.Equal(t, time.Now().Year(), cfg.Year)
	assert.Equal(t, 2000, cfg.StrLimit)
	assert.Equal(t, "America/New_York", cfg.Timezone)
	assert.Equal(t, []string{"groupme"}, cfg.Channels)
	assert.True(t, cfg.StartDate.IsZero())
	assert.False(t, cfg.Report.TopHalfScoring)
	assert.False(t, cfg.Report.WaiverReport)
	assert.Zero(t, cfg.Report.ScoreWarn)
	assert.Equal(t, "America/New_York", cfg.Report.Timezone)
	assert.Equal(t, TemporalConfig{
		HostPort:  "localhost:7233",
		Namespace: "default",
		TaskQueue: TaskQueueName,
	}, cfg.Temporal)
}

func TestConfigFromEnv_Full(t *testing.T) {
	cfg, err := ConfigFromEnv(envMap(map[string]string{
		"LEAGUE_ID":           "98765",
		"LEAGUE_YEAR":         "2024",
		"SWID":                "{ABC-123}",
		"ESPN_S2":             "s2cookie",
		"SLACK_WEBHOOK_URL":   "https://hooks.slack.com/services/T/B/X",
		"DISCORD_WEBHOOK_URL": "https://discord.com/api/webhooks/1/abc",
		"BOT_ID":              "1",
		"EMOTES":              "🏈, :fire: ,,:skull:",
		"INIT_MSG":            "Hi, I'm back",
		"TOP_HALF_SCORING":    "true",
		"RANDOM_PHRASE":       "1",
		"USERS":               "@sam,@alex, @jo",
		"SCORE_WARN":          "3.5",
		"WAIVER_REPORT":       "true",
		"STR_LIMIT":           "40000",
		"TIMEZONE":            "America/Chicago",
		"START_DATE":          "2024-09-05",
		"END_DATE":            "2025-01-06",
		"TEMPORAL_HOST":       "gameday.a1b2c.tmprl.cloud:7233",
		"TEMPORAL_NAMESPACE":  "gameday.a1b2c",
		"TEMPORAL_API_KEY":    "secret",
	}))
	require.NoError(t, err)

	assert.Equal(t, 2024, cfg.Year)
	assert.Equal(t, "{ABC-123}", cfg.SWID)
	assert.Equal(t, "s2cookie", cfg.EspnS2)
	// BOT_ID=1 is the unset placeholder
	assert.Equal(t, []string{"slack", "discord"}, cfg.Channels)
	assert.Equal(t, chat.Credentials{
		GroupMeBotID:      "1",
		SlackWebhookURL:   "https://hooks.slack.com/services/T/B/X",
		DiscordWebhookURL: "https://discord.com/api/webhooks/1/abc",
	}, cfg.Chat)
	assert.Equal(t, ReportConfig{
		Emotes:         []string{"🏈", ":fire:", "", ":skull:"},
		Users:          []string{"@sam", "@alex", "@jo"},
		TopHalfScoring: true,
		RandomPhrase:   true,
		InitMsg:        "Hi, I'm back",
		ScoreWarn:      3.5,
		WaiverReport:   true,
		Timezone:       "America/Chicago",
	}, cfg.Report)
	assert.Equal(t, 40000, cfg.StrLimit)

	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	assert.True(t, cfg.StartDate.Equal(time.Date(2024, 9, 5, 0, 0, 0, 0, chicago)))
	assert.True(t, cfg.EndDate.Equal(time.Date(2025, 1, 6, 0, 0, 0, 0, chicago)))

	assert.False(t, cfg.Temporal.Local())
	assert.Equal(t, "secret", cfg.Temporal.APIKey)
	assert.Equal(t, ReportRequest{Function: FunctionFinal, Channels: []string{"slack", "discord"}, StrLimit: 40000}, cfg.ReportRequest(FunctionFinal))
}

func TestConfigFromEnv_NotificationChannels(t *testing.T) {
	cfg, err := ConfigFromEnv(envMap(map[string]string{
		"LEAGUE_ID":             "1",
		"NOTIFICATION_CHANNELS": "logger, slack",
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"logger", "slack"}, cfg.Channels)
}

func TestConfigFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name          string
		env           map[string]string
		expectedError string
	}{
		{
			name:          "missing league id",
			env:           map[string]string{"BOT_ID": "abc"},
			expectedError: "LEAGUE_ID environment variable is not set",
		},
		{
			name:          "non numeric league id",
			env:           map[string]string{"LEAGUE_ID": "my-league", "BOT_ID": "abc"},
			expectedError: `invalid LEAGUE_ID "my-league"`,
		},
		{
			name:          "no messaging platform",
			env:           map[string]string{"LEAGUE_ID": "1", "BOT_ID": "1"},
			expectedError: "no messaging platform info provided",
		},
		{
			name:          "bad str limit",
			env:           map[string]string{"LEAGUE_ID": "1", "BOT_ID": "abc", "STR_LIMIT": "lots"},
			expectedError: "invalid STR_LIMIT",
		},
		{
			name:          "bad boolean",
			env:           map[string]string{"LEAGUE_ID": "1", "BOT_ID": "abc", "TOP_HALF_SCORING": "sometimes"},
			expectedError: "invalid TOP_HALF_SCORING",
		},
		{
			name:          "bad score warning",
			env:           map[string]string{"LEAGUE_ID": "1", "BOT_ID": "abc", "SCORE_WARN": "low"},
			expectedError: "invalid SCORE_WARN",
		},
		{
			name:          "unknown timezone",
			env:           map[string]string{"LEAGUE_ID": "1", "BOT_ID": "abc", "TIMEZONE": "Mars/Olympus_Mons"},
			expectedError: "invalid TIMEZONE",
		},
		{
			name:          "bad start date",
			env:           map[string]string{"LEAGUE_ID": "1", "BOT_ID": "abc", "START_DATE": "09/05/2024"},
			expectedError: "invalid START_DATE",
		},
		{
			name:          "season ends before it starts",
			env:           map[string]string{"LEAGUE_ID": "1", "BOT_ID": "abc", "START_DATE": "2024-09-05", "END_DATE": "2024-01-06"},
			expectedError: "END_DATE 2024-01-06 is before START_DATE 2024-09-05",
		},
		{
			name:          "cloud server without api key",
			env:           map[string]string{"LEAGUE_ID": "1", "BOT_ID": "abc", "TEMPORAL_HOST": "gameday.a1b2c.tmprl.cloud:7233"},
			expectedError: "TEMPORAL_API_KEY environment variable is not set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConfigFromEnv(envMap(tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestReportConfig_Emote(t *testing.T) {
	cfg := ReportConfig{Emotes: []string{"🏈", ":fire:"}}

	assert.Equal(t, "🏈", cfg.Emote(1))
	assert.Equal(t, ":fire:", cfg.Emote(2))
	assert.Equal(t, "", cfg.Emote(3))
	assert.Equal(t, "", cfg.Emote(0))
}

func TestReportConfig_User(t *testing.T) {
	cfg := ReportConfig{Users: []string{"@sam", ""}}

	assert.Equal(t, "@sam", cfg.User(1))
	assert.Equal(t, "", cfg.User(2))
	assert.Equal(t, "", cfg.User(3))
}
