package power

import (
	"fmt"
	"strings"
)

// Placeholder is rendered for any display field the league did not supply.
const Placeholder = "--"

// Record is a win/loss pair, e.g. the most likely simulated season record.
type Record struct {
	Wins   int
	Losses int
}

// TeamInfo is display metadata supplied by the league source. Nil pointers
// mean the value was not available.
type TeamInfo struct {
	Name       string
	PlayoffPct *float64
	SimRecord  *Record
}

// Row is one display line of the power rankings.
type Row struct {
	Rank       int
	Team       string
	Power      string
	PlayoffPct string
	SimRecord  string
}

func Rows(entries []Entry, info map[int]TeamInfo) []Row {
	rows := make([]Row, 0, len(entries))
	for i, e := range entries {
		row := Row{
			Rank:       i + 1,
			Team:       Placeholder,
			Power:      fmt.Sprintf("%.3f", e.Power),
			PlayoffPct: Placeholder,
			SimRecord:  Placeholder,
		}
		if ti, ok := info[e.TeamID]; ok {
			if ti.Name != "" {
				row.Team = ti.Name
			}
			if ti.PlayoffPct != nil {
				row.PlayoffPct = fmt.Sprintf("%.1f%%", *ti.PlayoffPct)
			}
			if ti.SimRecord != nil {
				row.SimRecord = fmt.Sprintf("%d-%d", ti.SimRecord.Wins, ti.SimRecord.Losses)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Format renders rows as a chat-ready block, one team per line:
//
//	1. 0.833 - **Team Name** (10-4) 97.5%
func Format(rows []Row) string {
	lines := []string{"**Power Rankings:** (Power - Team (Sim Record) Playoff %)"}
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%d. %s - **%s** (%s) %s", r.Rank, r.Power, r.Team, r.SimRecord, r.PlayoffPct))
	}
	return strings.Join(lines, "\n")
}
