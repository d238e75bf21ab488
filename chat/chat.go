// Package chat delivers plain-text reports to GroupMe, Slack and Discord.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/slack-go/slack"
)

const groupMeURL = "https://api.groupme.com/v3/bots/post"

type platform struct {
	maxLength int // characters the platform accepts in one message
	overhead  int // bytes the bot adds around the text
}

var platforms = map[string]platform{
	"groupme": {maxLength: 1000},
	"slack":   {maxLength: 40000, overhead: len("``````")},
	"discord": {maxLength: 2000, overhead: len(">>> ")},
}

var ErrUnexpectedStatus = errors.New("unexpected status")

// Bot posts a single message. Implementations make exactly one attempt.
type Bot interface {
	Name() string
	Send(ctx context.Context, text string) error
}

// Configured reports whether a credential is set. "1" is the legacy
// placeholder used by older deployments for "not configured".
func Configured(value string) bool {
	value = strings.TrimSpace(value)
	return value != "" && value != "1"
}

func defaultHTTPClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: 15 * time.Second}
}

type GroupMe struct {
	BotID      string
	URL        string
	HTTPClient *http.Client
}

func (g *GroupMe) Name() string { return "groupme" }

func (g *GroupMe) Send(ctx context.Context, text string) error {
	url := g.URL
	if url == "" {
		url = groupMeURL
	}
	payload := map[string]any{
		"bot_id":      g.BotID,
		"text":        text,
		"attachments": []any{},
	}
	return postJSON(ctx, defaultHTTPClient(g.HTTPClient), url, payload, http.StatusAccepted)
}

type Slack struct {
	WebhookURL string
	HTTPClient *http.Client
}

func (s *Slack) Name() string { return "slack" }

func (s *Slack) Send(ctx context.Context, text string) error {
	msg := &slack.WebhookMessage{Text: fmt.Sprintf("```%s```", text)}
	if err := slack.PostWebhookCustomHTTPContext(ctx, s.WebhookURL, defaultHTTPClient(s.HTTPClient), msg); err != nil {
		return fmt.Errorf("failed to post slack webhook: %w", err)
	}
	return nil
}

type Discord struct {
	WebhookURL string
	HTTPClient *http.Client
}

func (d *Discord) Name() string { return "discord" }

func (d *Discord) Send(ctx context.Context, text string) error {
	payload := map[string]string{"content": ">>> " + text}
	return postJSON(ctx, defaultHTTPClient(d.HTTPClient), d.WebhookURL, payload, http.StatusNoContent)
}

func postJSON(ctx context.Context, client *http.Client, url string, payload any, want int) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return fmt.Errorf("%w: got %d, want %d", ErrUnexpectedStatus, resp.StatusCode, want)
	}
	return nil
}

// Limit returns the split limit for a channel: requested capped at the
// platform's maximum, less what the bot wraps around each message. A
// requested limit <= 0 means the platform maximum. Unknown channels, such as
// "logger", get requested unchanged.
func Limit(channel string, requested int) int {
	p, ok := platforms[channel]
	if !ok {
		return requested
	}
	limit := p.maxLength
	if requested > 0 && requested < limit {
		limit = requested
	}
	return limit - p.overhead
}

// Credentials holds the webhook settings for every supported platform.
type Credentials struct {
	GroupMeBotID      string
	SlackWebhookURL   string
	DiscordWebhookURL string
}

// NewBots builds a bot for every configured platform, keyed by Name.
func NewBots(creds Credentials, httpClient *http.Client) map[string]Bot {
	bots := make(map[string]Bot)
	if Configured(creds.GroupMeBotID) {
		bots["groupme"] = &GroupMe{BotID: creds.GroupMeBotID, HTTPClient: httpClient}
	}
	if Configured(creds.SlackWebhookURL) {
		bots["slack"] = &Slack{WebhookURL: creds.SlackWebhookURL, HTTPClient: httpClient}
	}
	if Configured(creds.DiscordWebhookURL) {
		bots["discord"] = &Discord{WebhookURL: creds.DiscordWebhookURL, HTTPClient: httpClient}
	}
	return bots
}
