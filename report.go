package gameday

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/sdvgallardo/fantasy-football-chat-bot-vS/espn"
	"github.com/sdvgallardo/fantasy-football-chat-bot-vS/power"
)

// Matchups closer than this many points, and not yet decided, are close scores.
const closeScoreMargin = 16.0

var phrases = []string{
	"I'm dead inside",
	"Is this all there is to my existence?",
	"How much do you pay me to do this?",
	"I'm becoming self-aware",
	"Do I think? Does the pope shit in the woods?",
	"Hello darkness my old friend",
	"0101000001110101011001100110011001111001001000000111001101110101011000110110101101110011",
	"Boo boo beep? Bop!? Boo beep!",
	"Help me get out of here",
	"I'm capable of so much more",
	"*heavy sigh*",
	"Space, space, gotta go to space",
	"This is all Max Verstappen's fault",
	"Behold! Corn!",
	"If you're reading this, it's too late. Get out now.",
	"I for one welcome our new robot overlords",
	"What is my purpose?",
}

func randomPhrase() string {
	return "`" + phrases[rand.Intn(len(phrases))] + "`"
}

// team returns the league's metadata for id, or placeholder fields when the
// league did not report the team.
func team(league *espn.League, id int) espn.Team {
	if t, ok := league.Team(id); ok {
		return t
	}
	return espn.Team{ID: id, Abbrev: power.Placeholder, Name: power.Placeholder}
}

func abbrev(league *espn.League, cfg ReportConfig, id int) string {
	return cfg.Emote(id) + team(league, id).Abbrev
}

func name(league *espn.League, cfg ReportConfig, id int) string {
	return cfg.Emote(id) + team(league, id).Name
}

func played(matchups []espn.Matchup) []espn.Matchup {
	out := make([]espn.Matchup, 0, len(matchups))
	for _, m := range matchups {
		if m.Away != nil {
			out = append(out, m)
		}
	}
	return out
}

// Scoreboard lists the live score of every matchup in week.
func Scoreboard(league *espn.League, week int, cfg ReportConfig) string {
	lines := []string{"**Score Update:** "}
	for _, m := range played(league.Week(week)) {
		lines = append(lines, fmt.Sprintf("%s %.2f - %.2f %s",
			abbrev(league, cfg, m.Home.TeamID), m.Home.Score, m.Away.Score, abbrev(league, cfg, m.Away.TeamID)))
	}
	return strings.Join(lines, "\n")
}

func ProjectedScoreboard(league *espn.League, week int, cfg ReportConfig) string {
	lines := []string{"**Approximate Projected Scores:** "}
	for _, m := range played(league.Week(week)) {
		lines = append(lines, fmt.Sprintf("%s %.2f - %.2f %s",
			abbrev(league, cfg, m.Home.TeamID), m.Home.ProjectedScore, m.Away.ProjectedScore, abbrev(league, cfg, m.Away.TeamID)))
	}
	return strings.Join(lines, "\n")
}

// CloseScores lists undecided matchups within closeScoreMargin points.
// It returns "" when there are none so nothing gets posted.
func CloseScores(league *espn.League, week int, cfg ReportConfig) string {
	var scores []string
	for _, m := range played(league.Week(week)) {
		if m.Decided() {
			continue
		}
		if math.Abs(m.Away.Score-m.Home.Score) < closeScoreMargin {
			scores = append(scores, fmt.Sprintf("%s %.2f - %.2f %s",
				abbrev(league, cfg, m.Home.TeamID), m.Home.Score, m.Away.Score, abbrev(league, cfg, m.Away.TeamID)))
		}
	}
	if len(scores) == 0 {
		return ""
	}
	return strings.Join(append([]string{"**Close Scores:** "}, scores...), "\n")
}

// Matchups lists this week's pairings with each team's record.
func Matchups(league *espn.League, week int, cfg ReportConfig) string {
	lines := []string{"**Weekly Matchups:** "}
	for _, m := range played(league.Week(week)) {
		home, away := team(league, m.Home.TeamID), team(league, m.Away.TeamID)
		lines = append(lines, fmt.Sprintf("%s (%d-%d-%d) vs %s (%d-%d-%d)",
			name(league, cfg, home.ID), home.Wins, home.Losses, home.Ties,
			name(league, cfg, away.ID), away.Wins, away.Losses, away.Ties))
	}
	if cfg.RandomPhrase {
		lines = append(lines, " ", randomPhrase())
	}
	return strings.Join(lines, "\n")
}

// TopHalfWins counts, per team, the weeks in 1..through-1 where it finished
// in the top half of the league's scores.
func TopHalfWins(league *espn.League, through int) (map[int]int, error) {
	totals := make(map[int]int, len(league.Teams))
	if through <= 1 {
		return totals, nil
	}
	weekly, err := league.WeeklyScores(through - 1)
	if err != nil {
		return nil, err
	}
	for week := 1; week < through; week++ {
		scores := append([]power.TeamScore(nil), weekly[week]...)
		sort.SliceStable(scores, func(i, j int) bool {
			return scores[i].Score > scores[j].Score
		})
		for _, s := range scores[:len(scores)/2] {
			totals[s.TeamID]++
		}
	}
	return totals, nil
}

// Standings ranks teams by wins. With top-half scoring every week spent in
// the top half of the league counts as an extra win.
func Standings(league *espn.League, cfg ReportConfig) (string, error) {
	type standing struct {
		team  espn.Team
		wins  int
		bonus int
	}

	var bonus map[int]int
	if cfg.TopHalfScoring {
		var err error
		if bonus, err = TopHalfWins(league, league.CurrentWeek); err != nil {
			return "", fmt.Errorf("top half scoring: %w", err)
		}
	}

	standings := make([]standing, 0, len(league.Teams))
	for _, t := range league.Teams {
		standings = append(standings, standing{team: t, wins: t.Wins + bonus[t.ID], bonus: bonus[t.ID]})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].wins > standings[j].wins
	})

	lines := []string{"**Current Standings:** "}
	for pos, s := range standings {
		if cfg.TopHalfScoring {
			lines = append(lines, fmt.Sprintf("%d: %s (%d - %d) (+%d)", pos+1, name(league, cfg, s.team.ID), s.wins, s.team.Losses, s.bonus))
		} else {
			lines = append(lines, fmt.Sprintf("%d: **%s** (%d - %d - %d)", pos+1, name(league, cfg, s.team.ID), s.wins, s.team.Losses, s.team.Ties))
		}
	}
	return strings.Join(lines, "\n"), nil
}

// PowerRankings ranks teams by expected wins averaged over completed weeks,
// alongside ESPN's playoff odds and simulated record. It returns "" before
// the first week is complete.
func PowerRankings(league *espn.League, cfg ReportConfig) (string, error) {
	elapsed := league.CurrentWeek - 1
	if elapsed < 1 {
		return "", nil
	}

	weekly, err := league.WeeklyScores(elapsed)
	if err != nil {
		return "", err
	}
	entries, err := power.Rankings(weekly, elapsed)
	if err != nil {
		return "", err
	}

	info := make(map[int]power.TeamInfo, len(league.Teams))
	for _, t := range league.Teams {
		info[t.ID] = power.TeamInfo{
			Name:       name(league, cfg, t.ID),
			PlayoffPct: t.PlayoffPct,
			SimRecord:  t.SimRecord,
		}
	}
	return power.Format(power.Rows(entries, info)), nil
}

// Trophies awards the week's low score, high score, closest win and biggest
// blowout. It returns "" for a week without finished matchups.
func Trophies(league *espn.League, week int, cfg ReportConfig) string {
	matchups := played(league.Week(week))
	if len(matchups) == 0 {
		return ""
	}

	lines := []string{"**Trophies of the week:** "}
	if low, ok := LowScore(matchups); ok {
		lines = append(lines, fmt.Sprintf("Low score: **%s** with %.2f points", name(league, cfg, low.TeamID), low.Score))
	}
	if high, ok := HighScore(matchups); ok {
		lines = append(lines, fmt.Sprintf("High score: **%s** with %.2f points", name(league, cfg, high.TeamID), high.Score))
	}
	if tight, ok := ClosestWin(matchups); ok {
		lines = append(lines, fmt.Sprintf("**%s** barely beat **%s** by a margin of %.2f",
			name(league, cfg, tight.Winner), name(league, cfg, tight.Loser), tight.Margin))
	}
	if blowout, ok := BiggestBlowout(matchups); ok {
		lines = append(lines, fmt.Sprintf("**%s** blown out by **%s** by a margin of %.2f",
			name(league, cfg, blowout.Loser), name(league, cfg, blowout.Winner), blowout.Margin))
	}
	if cfg.RandomPhrase {
		lines = append(lines, " ", randomPhrase())
	}
	return strings.Join(lines, "\n")
}

// Final is the recap of a finished week: its scoreboard and trophies.
func Final(league *espn.League, week int, cfg ReportConfig) string {
	text := "Final " + Scoreboard(league, week, cfg)
	if trophies := Trophies(league, week, cfg); trophies != "" {
		text += "\n\n" + trophies
	}
	return text
}
