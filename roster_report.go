package gameday

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sdvgallardo/fantasy-football-chat-bot-vS/espn"
	"github.com/sdvgallardo/fantasy-football-chat-bot-vS/power"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// mention prefers the owner's chat handle over the team name.
func mention(league *espn.League, cfg ReportConfig, id int) string {
	if user := cfg.User(id); user != "" {
		return user
	}
	return name(league, cfg, id)
}

func healthy(status string) bool {
	return status == "" || status == "ACTIVE" || status == "NORMAL"
}

// monitorStatus explains why a player needs attention before kickoff.
func monitorStatus(p espn.Player, warn float64) (string, bool) {
	if p.LineupSlotID == espn.SlotIR {
		if p.InjuryStatus != "INJURY_RESERVE" && p.InjuryStatus != "OUT" {
			return "Not IR eligible", true
		}
		return "", false
	}
	if !p.Starter() || p.Played {
		return "", false
	}
	if p.ProjectedPoints <= warn {
		return fmt.Sprintf("%.2f pts", p.ProjectedPoints), true
	}
	if !healthy(p.InjuryStatus) {
		// Casers are not safe for concurrent use.
		return cases.Title(language.English).String(strings.ReplaceAll(p.InjuryStatus, "_", " ")), true
	}
	return "", false
}

// Monitor lists starters that have not played yet and are hurt or projected
// at or below the score warning, plus players parked on IR without an IR
// designation.
func Monitor(league *espn.League, rosters map[int][]espn.Player, cfg ReportConfig) string {
	var lines []string
	for _, t := range league.Teams {
		var flagged []string
		for _, p := range rosters[t.ID] {
			if status, ok := monitorStatus(p, cfg.ScoreWarn); ok {
				flagged = append(flagged, fmt.Sprintf("%s %s - **%s**", p.Position, p.Name, status))
			}
		}
		if len(flagged) > 0 {
			lines = append(lines, mention(league, cfg, t.ID)+": ")
			lines = append(lines, flagged...)
		}
	}
	if len(lines) == 0 {
		return "**No Players to Monitor this week. Good Luck!** "
	}
	return strings.Join(append([]string{"**Starting Players to Monitor:** "}, lines...), "\n")
}

// Inactives calls out every team starting players with no projected points.
func Inactives(league *espn.League, rosters map[int][]espn.Player, cfg ReportConfig) string {
	lines := []string{"**Inactive Player Report:** "}
	for _, t := range league.Teams {
		var inactive []string
		for _, p := range rosters[t.ID] {
			if p.Starter() && p.ProjectedPoints <= 0 {
				inactive = append(inactive, p.Position+" "+p.Name)
			}
		}
		if len(inactive) > 0 {
			lines = append(lines, fmt.Sprintf("%s has **%d** active player(s) with 0 projected points: %s",
				mention(league, cfg, t.ID), len(inactive), strings.Join(inactive, ", ")))
		}
	}
	if len(lines) == 1 {
		lines = append(lines, "No inactive players this week")
	}
	return strings.Join(lines, "\n")
}

// OptimalScores compares what each team scored with the best lineup its
// roster allowed. It returns "" when no rosters were fetched.
func OptimalScores(league *espn.League, rosters map[int][]espn.Player, cfg ReportConfig) string {
	type result struct {
		team    int
		optimal float64
		actual  float64
		pct     float64
	}

	var results []result
	for _, t := range league.Teams {
		roster, ok := rosters[t.ID]
		if !ok {
			continue
		}
		r := result{team: t.ID, optimal: espn.OptimalScore(roster, league.LineupSlots), actual: espn.StarterScore(roster)}
		if r.optimal > 0 {
			r.pct = r.actual / r.optimal * 100
		}
		results = append(results, r)
	}
	if len(results) == 0 {
		return ""
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].pct > results[j].pct
	})

	lines := []string{"**Optimal Scores:** (Actual - % of optimal)"}
	for i, r := range results {
		lines = append(lines, fmt.Sprintf("%d: %s %.2f (%.2f - %.2f%%)", i+1, name(league, cfg, r.team), r.optimal, r.actual, r.pct))
	}
	return strings.Join(lines, "\n")
}

// ExpectedWinStandings totals each team's expected wins over the completed
// weeks and sets them against its real wins. It returns "" before the first
// week is complete.
func ExpectedWinStandings(league *espn.League, cfg ReportConfig) (string, error) {
	elapsed := league.CurrentWeek - 1
	if elapsed < 1 {
		return "", nil
	}

	weekly, err := league.WeeklyScores(elapsed)
	if err != nil {
		return "", err
	}
	expected := make(map[int]float64, len(league.Teams))
	for week := 1; week <= elapsed; week++ {
		fractions, err := power.ExpectedWins(week, weekly[week])
		if err != nil {
			return "", err
		}
		for _, f := range fractions {
			expected[f.TeamID] += f.Fraction
		}
	}

	teams := append([]espn.Team(nil), league.Teams...)
	sort.SliceStable(teams, func(i, j int) bool {
		return expected[teams[i].ID] > expected[teams[j].ID]
	})

	lines := []string{"**Expected Wins:** "}
	for i, t := range teams {
		lines = append(lines, fmt.Sprintf("%d: %s %.2f (%d actual, %+.2f)",
			i+1, name(league, cfg, t.ID), expected[t.ID], t.Wins, float64(t.Wins)-expected[t.ID]))
	}
	return strings.Join(lines, "\n"), nil
}

func playerList(players []espn.Player) string {
	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.Position+" "+p.Name)
	}
	return strings.Join(names, ", ")
}

// WaiverReport lists the waiver claims processed on day, oldest first.
// Transactions must be sorted oldest first.
func WaiverReport(league *espn.League, transactions []espn.Transaction, day time.Time, cfg ReportConfig) string {
	date := day.Format("2006-01-02")

	var lines []string
	for _, tx := range transactions {
		if tx.Type != "WAIVER" || len(tx.Adds) == 0 {
			continue
		}
		if tx.Date.In(day.Location()).Format("2006-01-02") != date {
			continue
		}
		line := fmt.Sprintf("**%s** ADDED %s", name(league, cfg, tx.TeamID), playerList(tx.Adds))
		if league.FAAB {
			line += fmt.Sprintf(" ($%d)", tx.BidAmount)
		}
		if len(tx.Drops) > 0 {
			line += ", DROPPED " + playerList(tx.Drops)
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		lines = append(lines, "No waiver transactions today")
	}

	text := append([]string{fmt.Sprintf("**Waiver Report %s:** ", date)}, lines...)
	if cfg.RandomPhrase {
		text = append(text, " ", randomPhrase())
	}
	return strings.Join(text, "\n")
}
