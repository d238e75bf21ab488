package gameday

import (
	"time"

	"github.com/sdvgallardo/fantasy-football-chat-bot-vS/chat"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// ReportWorkflow builds one report and posts it to every requested channel.
// It returns the number of messages delivered across all channels.
func ReportWorkflow(ctx workflow.Context, req ReportRequest) (int, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting Report Workflow", "function", req.Function)

	notification := Notification{Function: req.Function}
	err := workflow.SetQueryHandler(ctx, "report", func() (Notification, error) {
		return notification, nil
	})
	if err != nil {
		logger.Error("Failed to set query handler", "error", err)
		return 0, err
	}

	buildCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    3,
		},
	})

	// One attempt per post
	sendCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	})

	var a *Activities
	var text string
	err = workflow.ExecuteActivity(buildCtx, a.BuildReport, req).Get(ctx, &text)
	if err != nil {
		logger.Error("Failed to build report", "function", req.Function, "error", err)
		return 0, err
	}
	notification.Text = text

	if text == "" {
		logger.Info("Nothing to send", "function", req.Function)
		return 0, nil
	}

	channels := req.Channels
	if len(channels) == 0 {
		channels = []string{"logger"}
	}

	for _, channel := range channels {
		messages := chat.Split(text, chat.Limit(channel, req.StrLimit))
		send := SendMessages{
			Channel:  channel,
			Messages: messages,
		}
		err := workflow.ExecuteActivity(sendCtx, a.SendMessages, send).Get(ctx, nil)
		if err != nil {
			logger.Error("Failed to send report", "function", req.Function, "channel", channel, "error", err)
			continue
		}
		notification.Sent += len(messages)
	}

	logger.Info("Report Workflow completed", "function", req.Function, "sent", notification.Sent)
	return notification.Sent, nil
}
