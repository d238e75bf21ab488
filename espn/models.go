package espn

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sdvgallardo/fantasy-football-chat-bot-vS/power"
)

// ESPN fantasy API response models
type leagueResponse struct {
	ID              int            `json:"id"`
	SeasonID        int            `json:"seasonId"`
	ScoringPeriodID int            `json:"scoringPeriodId"`
	Status          statusResponse `json:"status"`
	Settings        settings       `json:"settings"`
	Teams           []teamResponse `json:"teams"`
	Schedule        []scheduleItem `json:"schedule"`
}

type statusResponse struct {
	CurrentMatchupPeriod int  `json:"currentMatchupPeriod"`
	IsActive             bool `json:"isActive"`
	FinalScoringPeriod   int  `json:"finalScoringPeriod"`
}

type settings struct {
	Name                string              `json:"name"`
	ScheduleSettings    scheduleSettings    `json:"scheduleSettings"`
	RosterSettings      rosterSettings      `json:"rosterSettings"`
	AcquisitionSettings acquisitionSettings `json:"acquisitionSettings"`
}

type rosterSettings struct {
	// keyed by lineup slot id
	LineupSlotCounts map[int]int `json:"lineupSlotCounts"`
}

type acquisitionSettings struct {
	IsUsingAcquisitionBudget bool `json:"isUsingAcquisitionBudget"`
}

type scheduleSettings struct {
	MatchupPeriodCount int `json:"matchupPeriodCount"`
}

type teamResponse struct {
	ID                       int               `json:"id"`
	Abbrev                   string            `json:"abbrev"`
	Name                     string            `json:"name"`
	Location                 string            `json:"location"`
	Nickname                 string            `json:"nickname"`
	Record                   teamRecord        `json:"record"`
	CurrentSimulationResults *simulationResult `json:"currentSimulationResults,omitempty"`
}

type teamRecord struct {
	Overall recordDetail `json:"overall"`
}

type recordDetail struct {
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
}

// simulationResult carries ESPN's own season simulation. playoffPct is a 0..1 fraction.
type simulationResult struct {
	PlayoffPct *float64 `json:"playoffPct,omitempty"`
	ModeRecord *struct {
		Wins   int `json:"wins"`
		Losses int `json:"losses"`
	} `json:"modeRecord,omitempty"`
}

type scheduleItem struct {
	ID              int          `json:"id"`
	MatchupPeriodID int          `json:"matchupPeriodId"`
	Home            *matchupTeam `json:"home,omitempty"`
	Away            *matchupTeam `json:"away,omitempty"`
	Winner          string       `json:"winner"`
}

type matchupTeam struct {
	TeamID                   int      `json:"teamId"`
	TotalPoints              float64  `json:"totalPoints"`
	TotalPointsLive          *float64 `json:"totalPointsLive,omitempty"`
	TotalProjectedPointsLive *float64 `json:"totalProjectedPointsLive,omitempty"`
}

// League is a read-only snapshot of one fantasy league at fetch time.
type League struct {
	ID                 int
	Year               int
	Name               string
	CurrentWeek        int
	ScoringPeriodID    int
	MatchupPeriodCount int
	// LineupSlots counts the roster slots of each lineup slot id.
	LineupSlots map[int]int
	// FAAB is set when waivers are claimed with a free agent budget.
	FAAB     bool
	Teams    []Team
	Matchups []Matchup
}

type Team struct {
	ID            int
	Abbrev        string
	Name          string
	Wins          int
	Losses        int
	Ties          int
	PointsFor     float64
	PointsAgainst float64
	PlayoffPct    *float64 // percent, 0..100
	SimRecord     *power.Record
}

// Side is one team's half of a matchup.
type Side struct {
	TeamID         int
	Score          float64
	ProjectedScore float64
}

type Matchup struct {
	Week   int
	Home   Side
	Away   *Side // nil on a bye
	Winner string
}

// Decided reports whether ESPN has already settled the matchup.
func (m Matchup) Decided() bool {
	return m.Winner != "" && m.Winner != "UNDECIDED"
}

// Team looks a team up by id.
func (l *League) Team(id int) (Team, bool) {
	for _, t := range l.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

// Week returns the matchups of one matchup period in schedule order.
func (l *League) Week(week int) []Matchup {
	var out []Matchup
	for _, m := range l.Matchups {
		if m.Week == week {
			out = append(out, m)
		}
	}
	return out
}

// SeasonOver reports whether the scoring period has moved past the last matchup period.
func (l *League) SeasonOver() bool {
	return l.MatchupPeriodCount > 0 && l.ScoringPeriodID > l.MatchupPeriodCount
}

// WeeklyScores returns every team's score for weeks 1..through, in schedule
// order. A week without any matchups is an error naming the week.
func (l *League) WeeklyScores(through int) (map[int][]power.TeamScore, error) {
	weekly := make(map[int][]power.TeamScore, through)
	for week := 1; week <= through; week++ {
		matchups := l.Week(week)
		if len(matchups) == 0 {
			return nil, fmt.Errorf("no matchups for week %d", week)
		}
		scores := make([]power.TeamScore, 0, len(matchups)*2)
		for _, m := range matchups {
			scores = append(scores, power.TeamScore{TeamID: m.Home.TeamID, Score: m.Home.Score})
			if m.Away != nil {
				scores = append(scores, power.TeamScore{TeamID: m.Away.TeamID, Score: m.Away.Score})
			}
		}
		weekly[week] = scores
	}
	return weekly, nil
}

func (r leagueResponse) toLeague() *League {
	league := &League{
		ID:                 r.ID,
		Year:               r.SeasonID,
		Name:               r.Settings.Name,
		CurrentWeek:        r.Status.CurrentMatchupPeriod,
		ScoringPeriodID:    r.ScoringPeriodID,
		MatchupPeriodCount: r.Settings.ScheduleSettings.MatchupPeriodCount,
		LineupSlots:        r.Settings.RosterSettings.LineupSlotCounts,
		FAAB:               r.Settings.AcquisitionSettings.IsUsingAcquisitionBudget,
	}

	for _, t := range r.Teams {
		team := Team{
			ID:            t.ID,
			Abbrev:        t.Abbrev,
			Name:          teamName(t),
			Wins:          t.Record.Overall.Wins,
			Losses:        t.Record.Overall.Losses,
			Ties:          t.Record.Overall.Ties,
			PointsFor:     t.Record.Overall.PointsFor,
			PointsAgainst: t.Record.Overall.PointsAgainst,
		}
		if sim := t.CurrentSimulationResults; sim != nil {
			if sim.PlayoffPct != nil {
				pct := *sim.PlayoffPct * 100
				team.PlayoffPct = &pct
			}
			if sim.ModeRecord != nil {
				team.SimRecord = &power.Record{Wins: sim.ModeRecord.Wins, Losses: sim.ModeRecord.Losses}
			}
		}
		league.Teams = append(league.Teams, team)
	}
	sort.SliceStable(league.Teams, func(i, j int) bool {
		return league.Teams[i].ID < league.Teams[j].ID
	})

	for _, item := range r.Schedule {
		if item.Home == nil {
			continue
		}
		m := Matchup{
			Week:   item.MatchupPeriodID,
			Home:   toSide(*item.Home),
			Winner: item.Winner,
		}
		if item.Away != nil {
			away := toSide(*item.Away)
			m.Away = &away
		}
		league.Matchups = append(league.Matchups, m)
	}
	return league
}

// toSide prefers live totals, which ESPN only fills for the current period.
func toSide(t matchupTeam) Side {
	side := Side{TeamID: t.TeamID, Score: t.TotalPoints, ProjectedScore: t.TotalPoints}
	if t.TotalPointsLive != nil {
		side.Score = *t.TotalPointsLive
	}
	if t.TotalProjectedPointsLive != nil {
		side.ProjectedScore = *t.TotalProjectedPointsLive
	}
	return side
}

func teamName(t teamResponse) string {
	if name := strings.TrimSpace(t.Name); name != "" {
		return name
	}
	return strings.TrimSpace(t.Location + " " + t.Nickname)
}
