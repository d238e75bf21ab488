package gameday

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sdvgallardo/fantasy-football-chat-bot-vS/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"
)

// recordingBot keeps every message it is asked to send.
type recordingBot struct {
	name     string
	messages []string
	err      error
}

func (b *recordingBot) Name() string { return b.name }

func (b *recordingBot) Send(ctx context.Context, text string) error {
	if b.err != nil {
		return b.err
	}
	b.messages = append(b.messages, text)
	return nil
}

func TestBuildReport(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestActivityEnvironment()

	activities := &Activities{
		Reporter: NewReporter(&fakeLeagueSource{league: createTestLeague()}, ReportConfig{}),
	}
	env.RegisterActivity(activities)

	encodedValue, err := env.ExecuteActivity(activities.BuildReport, ReportRequest{Function: FunctionCloseScores})
	require.NoError(t, err)

	var text string
	require.NoError(t, encodedValue.Get(&text))
	assert.Equal(t, "**Close Scores:** \nGG 44.30 - 51.00 WWW", text)
}

func TestBuildReport_FetchError(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestActivityEnvironment()

	activities := &Activities{
		Reporter: NewReporter(&fakeLeagueSource{err: errors.New("connection refused")}, ReportConfig{}),
	}
	env.RegisterActivity(activities)

	_, err := env.ExecuteActivity(activities.BuildReport, ReportRequest{Function: FunctionStandings})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build get_standings")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSendMessages(t *testing.T) {
	tests := []struct {
		name          string
		send          SendMessages
		bot           *recordingBot
		expectedError string
		expectedType  string
		expectedSent  []string
	}{
		{
			name:         "posts every message in order",
			send:         SendMessages{Channel: "slack", Messages: []string{"part one", "part two"}},
			bot:          &recordingBot{name: "slack"},
			expectedSent: []string{"part one", "part two"},
		},
		{
			name: "logger channel never touches a bot",
			send: SendMessages{Channel: "logger", Messages: []string{"hello"}},
			bot:  &recordingBot{name: "slack"},
		},
		{
			name:          "unknown channel is not retried",
			send:          SendMessages{Channel: "teams", Messages: []string{"hello"}},
			bot:           &recordingBot{name: "slack"},
			expectedError: `channel "teams" is not configured`,
			expectedType:  "UnknownChannel",
		},
		{
			name:          "bot failure names the message",
			send:          SendMessages{Channel: "slack", Messages: []string{"hello"}},
			bot:           &recordingBot{name: "slack", err: chat.ErrUnexpectedStatus},
			expectedError: "failed to send message 1/1 to slack",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testSuite := &testsuite.WorkflowTestSuite{}
			env := testSuite.NewTestActivityEnvironment()

			activities := &Activities{Bots: map[string]chat.Bot{"slack": tt.bot}}
			env.RegisterActivity(activities)

			_, err := env.ExecuteActivity(activities.SendMessages, tt.send)
			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				if tt.expectedType != "" {
					var appErr *temporal.ApplicationError
					require.True(t, errors.As(err, &appErr))
					assert.Equal(t, tt.expectedType, appErr.Type())
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedSent, tt.bot.messages)
		})
	}
}

func TestSendMessages_Discord(t *testing.T) {
	var posted []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload map[string]string
		_ = json.Unmarshal(body, &payload)
		posted = append(posted, payload["content"])
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestActivityEnvironment()

	activities := &Activities{
		Bots: chat.NewBots(chat.Credentials{DiscordWebhookURL: server.URL}, server.Client()),
	}
	env.RegisterActivity(activities)

	_, err := env.ExecuteActivity(activities.SendMessages, SendMessages{
		Channel:  "discord",
		Messages: []string{"**Score Update:** ", "GG 44.30 - 51.00 WWW"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{">>> **Score Update:** ", ">>> GG 44.30 - 51.00 WWW"}, posted)
}
