package gameday

const TaskQueueName = "gameday-bot-task-queue"

// Report workflow IDs start with this prefix, scheduled runs included.
const WorkflowIDPrefix = "report-"

// Every chat message built by the bot is one of these reports. The names are
// the function names used in schedule files.
type Function string

const (
	FunctionInit                Function = "init"
	FunctionMatchups            Function = "get_matchups"
	FunctionScoreboard          Function = "get_scoreboard_short"
	FunctionProjectedScoreboard Function = "get_projected_scoreboard"
	FunctionCloseScores         Function = "get_close_scores"
	FunctionPowerRankings       Function = "get_power_rankings"
	FunctionTrophies            Function = "get_trophies"
	FunctionStandings           Function = "get_standings"
	FunctionFinal               Function = "get_final"
	FunctionMonitor             Function = "get_monitor"
	FunctionInactives           Function = "get_inactives"
	FunctionWaiverReport        Function = "get_waiver_report"
	FunctionExpectedWin         Function = "get_expected_win"
	FunctionOptimalScores       Function = "get_optimal_scores"
)

// Functions lists every report in display order.
var Functions = []Function{
	FunctionInit,
	FunctionMatchups,
	FunctionScoreboard,
	FunctionProjectedScoreboard,
	FunctionCloseScores,
	FunctionPowerRankings,
	FunctionTrophies,
	FunctionStandings,
	FunctionFinal,
	FunctionMonitor,
	FunctionInactives,
	FunctionWaiverReport,
	FunctionExpectedWin,
	FunctionOptimalScores,
}

func (f Function) Valid() bool {
	for _, known := range Functions {
		if f == known {
			return true
		}
	}
	return false
}
