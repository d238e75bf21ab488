package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/mux"
	gameday "github.com/sdvgallardo/fantasy-football-chat-bot-vS"
	"github.com/sdvgallardo/fantasy-football-chat-bot-vS/chat"
	"go.temporal.io/api/workflowservice/v1"
	"go.temporal.io/sdk/client"
)

// ReportBuilder renders a report without posting it. *gameday.Reporter implements it.
type ReportBuilder interface {
	Build(ctx context.Context, fn gameday.Function) (string, error)
}

type Handlers struct {
	temporalClient client.Client
	reports        ReportBuilder
	config         gameday.Config
}

func NewHandlers(temporalClient client.Client, reports ReportBuilder, cfg gameday.Config) *Handlers {
	return &Handlers{
		temporalClient: temporalClient,
		reports:        reports,
		config:         cfg,
	}
}

// NewRouter wires every API route.
func NewRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/functions", h.GetFunctions).Methods(http.MethodGet)
	api.HandleFunc("/preview/{function}", h.Preview).Methods(http.MethodGet)
	api.HandleFunc("/run/{function}", h.RunReport).Methods(http.MethodPost)
	api.HandleFunc("/workflows", h.GetWorkflows).Methods(http.MethodGet)
	api.HandleFunc("/schedules", h.GetSchedules).Methods(http.MethodGet)
	api.HandleFunc("/schedules/{id}/trigger", h.TriggerSchedule).Methods(http.MethodPost)
	api.HandleFunc("/schedules/{id}", h.DeleteSchedule).Methods(http.MethodDelete)
	return r
}

// FunctionInfo describes one report that can be previewed or run
type FunctionInfo struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// Preview is a rendered report, split the way it would be posted
type Preview struct {
	Function string   `json:"function"`
	Text     string   `json:"text"`
	Messages []string `json:"messages"`
}

// ReportWorkflow represents a report workflow execution
type ReportWorkflow struct {
	WorkflowID  string    `json:"workflowId"`
	RunID       string    `json:"runId"`
	WorkflowURL string    `json:"workflowUrl,omitempty"`
	Status      string    `json:"status"`
	StartTime   time.Time `json:"startTime"`
}

// Schedule represents a registered posting schedule
type Schedule struct {
	ID       string      `json:"id"`
	Note     string      `json:"note"`
	Paused   bool        `json:"paused"`
	Cron     []string    `json:"cron"`
	Timezone string      `json:"timezone"`
	NextRuns []time.Time `json:"nextRuns"`
}

var descriptions = map[gameday.Function]string{
	gameday.FunctionInit:                "Configured init message",
	gameday.FunctionMatchups:            "Weekly matchups with records and projections",
	gameday.FunctionScoreboard:          "Live scoreboard with projections",
	gameday.FunctionProjectedScoreboard: "Projected scoreboard",
	gameday.FunctionCloseScores:         "Undecided matchups within 16 points",
	gameday.FunctionPowerRankings:       "Power rankings from expected wins",
	gameday.FunctionTrophies:            "Low, high, closest and blowout trophies",
	gameday.FunctionStandings:           "Current standings",
	gameday.FunctionFinal:               "Final scores and trophies of last week",
	gameday.FunctionMonitor:             "Injured or low-projected starters before kickoff",
	gameday.FunctionInactives:           "Starters with no projected points",
	gameday.FunctionWaiverReport:        "Waiver claims processed today (private leagues)",
	gameday.FunctionExpectedWin:         "Season expected wins against actual wins",
	gameday.FunctionOptimalScores:       "Last week's scores against each roster's optimal lineup",
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func functionParam(w http.ResponseWriter, r *http.Request) (gameday.Function, bool) {
	fn := gameday.Function(mux.Vars(r)["function"])
	if !fn.Valid() {
		http.Error(w, fmt.Sprintf("Unknown function %q", fn), http.StatusBadRequest)
		return "", false
	}
	return fn, true
}

// GetFunctions returns every report the bot can post
func (h *Handlers) GetFunctions(w http.ResponseWriter, r *http.Request) {
	functions := make([]FunctionInfo, 0, len(gameday.Functions))
	for _, fn := range gameday.Functions {
		functions = append(functions, FunctionInfo{ID: string(fn), Description: descriptions[fn]})
	}
	writeJSON(w, functions)
}

// Preview renders a report in-process without posting it
func (h *Handlers) Preview(w http.ResponseWriter, r *http.Request) {
	fn, ok := functionParam(w, r)
	if !ok {
		return
	}
	if h.reports == nil {
		http.Error(w, "Previews are not available", http.StatusServiceUnavailable)
		return
	}

	text, err := h.reports.Build(r.Context(), fn)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to build report: %v", err), http.StatusBadGateway)
		return
	}

	writeJSON(w, Preview{
		Function: string(fn),
		Text:     text,
		Messages: chat.Split(text, h.config.StrLimit),
	})
}

// RunReport starts a ReportWorkflow for the function right away
func (h *Handlers) RunReport(w http.ResponseWriter, r *http.Request) {
	fn, ok := functionParam(w, r)
	if !ok {
		return
	}

	// Check if Temporal client is available
	if h.temporalClient == nil {
		writeJSON(w, map[string]string{
			"workflowId": "demo-workflow-" + time.Now().Format("20060102-150405"),
			"runId":      "demo-run-" + time.Now().Format("150405"),
			"message":    "Demo mode: report request received (Temporal server not connected)",
		})
		return
	}

	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("%s%s-%s", gameday.WorkflowIDPrefix, fn, time.Now().Format("20060102-150405")),
		TaskQueue: h.config.Temporal.TaskQueue,
	}

	we, err := h.temporalClient.ExecuteWorkflow(r.Context(), options, gameday.ReportWorkflow, h.config.ReportRequest(fn))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to start workflow: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{
		"workflowId": we.GetID(),
		"runId":      we.GetRunID(),
		"message":    "Report started successfully",
	})
}

func (h *Handlers) workflowURL(workflowID, runID string) string {
	path := fmt.Sprintf("/namespaces/%s/workflows/%s/%s", h.config.Temporal.Namespace, workflowID, runID)
	if h.config.Temporal.Local() {
		return "http://localhost:8233" + path
	}
	return "https://cloud.temporal.io" + path
}

// GetWorkflows returns recent report workflows, newest first
func (h *Handlers) GetWorkflows(w http.ResponseWriter, r *http.Request) {
	workflows := []ReportWorkflow{}

	if h.temporalClient == nil {
		writeJSON(w, workflows)
		return
	}

	listRequest := &workflowservice.ListWorkflowExecutionsRequest{
		Query: fmt.Sprintf("WorkflowId STARTS_WITH '%s'", gameday.WorkflowIDPrefix),
	}

	resp, err := h.temporalClient.ListWorkflow(r.Context(), listRequest)
	if err != nil {
		// Don't fail the request, the UI shows an empty list
		slog.Error("Failed to list workflows", "error", err)
		writeJSON(w, workflows)
		return
	}

	for _, execution := range resp.Executions {
		wf := ReportWorkflow{
			WorkflowID: execution.GetExecution().GetWorkflowId(),
			RunID:      execution.GetExecution().GetRunId(),
			Status:     execution.GetStatus().String(),
			StartTime:  execution.GetStartTime().AsTime(),
		}
		wf.WorkflowURL = h.workflowURL(wf.WorkflowID, wf.RunID)
		workflows = append(workflows, wf)
	}

	sort.Slice(workflows, func(i, j int) bool {
		return workflows[i].StartTime.After(workflows[j].StartTime)
	})

	writeJSON(w, workflows)
}

// GetSchedules returns the registered posting schedules
func (h *Handlers) GetSchedules(w http.ResponseWriter, r *http.Request) {
	schedules := []Schedule{}

	if h.temporalClient == nil {
		writeJSON(w, schedules)
		return
	}

	iter, err := h.temporalClient.ScheduleClient().List(r.Context(), client.ScheduleListOptions{PageSize: 100})
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list schedules: %v", err), http.StatusInternalServerError)
		return
	}

	for iter.HasNext() {
		entry, err := iter.Next()
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to list schedules: %v", err), http.StatusInternalServerError)
			return
		}
		if !strings.HasPrefix(entry.ID, gameday.ScheduleIDPrefix) {
			continue
		}
		s := Schedule{
			ID:       entry.ID,
			Note:     entry.Note,
			Paused:   entry.Paused,
			NextRuns: entry.NextActionTimes,
		}
		if entry.Spec != nil {
			s.Cron = entry.Spec.CronExpressions
			s.Timezone = entry.Spec.TimeZoneName
		}
		schedules = append(schedules, s)
	}

	sort.Slice(schedules, func(i, j int) bool {
		return schedules[i].ID < schedules[j].ID
	})

	writeJSON(w, schedules)
}

// TriggerSchedule runs a schedule's action immediately
func (h *Handlers) TriggerSchedule(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if h.temporalClient == nil {
		writeJSON(w, map[string]string{
			"message": "Demo mode: schedule trigger request received (Temporal server not connected)",
		})
		return
	}

	handle := h.temporalClient.ScheduleClient().GetHandle(r.Context(), id)
	if err := handle.Trigger(r.Context(), client.ScheduleTriggerOptions{}); err != nil {
		http.Error(w, fmt.Sprintf("Failed to trigger schedule: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"message": "Schedule triggered successfully"})
}

// DeleteSchedule removes a posting schedule
func (h *Handlers) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if h.temporalClient == nil {
		writeJSON(w, map[string]string{
			"message": "Demo mode: schedule delete request received (Temporal server not connected)",
		})
		return
	}

	handle := h.temporalClient.ScheduleClient().GetHandle(r.Context(), id)
	if err := handle.Delete(r.Context()); err != nil {
		http.Error(w, fmt.Sprintf("Failed to delete schedule: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"message": "Schedule deleted successfully"})
}
