package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	gameday "github.com/sdvgallardo/fantasy-football-chat-bot-vS"
	"go.temporal.io/sdk/client"
)

// Runs one report right away, e.g. `start -function get_power_rankings`.
// Defaults to the configured init message.
func main() {
	function := flag.String("function", string(gameday.FunctionInit), "report to post")
	wait := flag.Bool("wait", false, "wait for the workflow to finish and print the result")
	flag.Parse()

	logger := gameday.SetupLogging()

	fn := gameday.Function(*function)
	if !fn.Valid() {
		logger.Error("Unknown function", "function", fn, "known", gameday.Functions)
		os.Exit(1)
	}

	cfg, err := gameday.LoadConfig()
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	c, err := client.Dial(gameday.GetClientOptions(cfg.Temporal))
	if err != nil {
		logger.Error("Unable to create client", "error", err)
		os.Exit(1)
	}
	defer c.Close()

	workflowID := fmt.Sprintf("%s%s-%s", gameday.WorkflowIDPrefix, fn, time.Now().Format("20060102-150405"))
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: cfg.Temporal.TaskQueue,
	}

	we, err := c.ExecuteWorkflow(context.Background(), options, gameday.ReportWorkflow, cfg.ReportRequest(fn))
	if err != nil {
		logger.Error("Unable to execute workflow", "error", err)
		os.Exit(1)
	}
	slog.Info("Started workflow", "WorkflowID", we.GetID(), "RunID", we.GetRunID())

	if *wait {
		var sent int
		if err := we.Get(context.Background(), &sent); err != nil {
			logger.Error("Workflow failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Workflow completed", "messagesSent", sent)
	}
}
