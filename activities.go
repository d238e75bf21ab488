package gameday

import (
	"context"
	"fmt"

	"github.com/sdvgallardo/fantasy-football-chat-bot-vS/chat"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
)

// Activities is registered with the worker as a struct so the league client
// and chat bots are shared across activity invocations.
type Activities struct {
	Reporter *Reporter
	Bots     map[string]chat.Bot
}

// BuildReport fetches the league and renders the requested report
func (a *Activities) BuildReport(ctx context.Context, req ReportRequest) (string, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Building report", "function", req.Function)

	text, err := a.Reporter.Build(ctx, req.Function)
	if err != nil {
		return "", fmt.Errorf("failed to build %s: %w", req.Function, err)
	}

	logger.Info("Built report", "function", req.Function, "length", len(text))
	return text, nil
}

// SendMessages posts every message, in order, to one channel. The "logger"
// channel only logs them.
func (a *Activities) SendMessages(ctx context.Context, send SendMessages) error {
	logger := activity.GetLogger(ctx)

	if send.Channel == "logger" {
		for _, message := range send.Messages {
			logger.Info("Chat message (logged only)", "message", message)
		}
		return nil
	}

	bot, ok := a.Bots[send.Channel]
	if !ok {
		return temporal.NewNonRetryableApplicationError(
			fmt.Sprintf("channel %q is not configured", send.Channel), "UnknownChannel", nil)
	}

	for i, message := range send.Messages {
		if err := bot.Send(ctx, message); err != nil {
			return fmt.Errorf("failed to send message %d/%d to %s: %w", i+1, len(send.Messages), bot.Name(), err)
		}
	}
	logger.Info("Sent messages", "channel", send.Channel, "count", len(send.Messages))
	return nil
}
