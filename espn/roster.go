package espn

import (
	"context"
	"fmt"
	"strconv"
)

// Lineup slot ids used by ESPN football rosters.
const (
	SlotQB    = 0
	SlotRB    = 2
	SlotRBWR  = 3
	SlotWR    = 4
	SlotWRTE  = 5
	SlotTE    = 6
	SlotOP    = 7
	SlotDST   = 16
	SlotK     = 17
	SlotBench = 20
	SlotIR    = 21
	SlotFlex  = 23
)

// statSourceId values on player stats
const (
	statActual    = 0
	statProjected = 1
)

var positions = map[int]string{
	1:  "QB",
	2:  "RB",
	3:  "WR",
	4:  "TE",
	5:  "K",
	7:  "P",
	9:  "DT",
	10: "DE",
	11: "LB",
	12: "CB",
	13: "S",
	14: "HC",
	16: "D/ST",
}

type rosterResponse struct {
	Teams []struct {
		ID     int `json:"id"`
		Roster struct {
			Entries []rosterEntry `json:"entries"`
		} `json:"roster"`
	} `json:"teams"`
}

type rosterEntry struct {
	PlayerID        int `json:"playerId"`
	LineupSlotID    int `json:"lineupSlotId"`
	PlayerPoolEntry struct {
		Player playerResponse `json:"player"`
	} `json:"playerPoolEntry"`
}

type playerResponse struct {
	ID                int          `json:"id"`
	FullName          string       `json:"fullName"`
	DefaultPositionID int          `json:"defaultPositionId"`
	EligibleSlots     []int        `json:"eligibleSlots"`
	InjuryStatus      string       `json:"injuryStatus"`
	Stats             []playerStat `json:"stats"`
}

type playerStat struct {
	ScoringPeriodID int     `json:"scoringPeriodId"`
	StatSourceID    int     `json:"statSourceId"`
	StatSplitTypeID int     `json:"statSplitTypeId"`
	AppliedTotal    float64 `json:"appliedTotal"`
}

// Player is one rostered player as of a scoring period.
type Player struct {
	ID              int
	Name            string
	Position        string
	LineupSlotID    int
	EligibleSlots   []int
	InjuryStatus    string
	Points          float64
	ProjectedPoints float64
	// Played is set once ESPN reports actual stats for the period.
	Played bool
}

// Starter reports whether the player is in the scoring lineup.
func (p Player) Starter() bool {
	return p.LineupSlotID != SlotBench && p.LineupSlotID != SlotIR
}

// Eligible reports whether the player may fill a lineup slot.
func (p Player) Eligible(slot int) bool {
	for _, s := range p.EligibleSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// Rosters fetches every team's roster for a scoring period, keyed by team id.
func (c *Client) Rosters(ctx context.Context, scoringPeriod int) (map[int][]Player, error) {
	if c.leagueID <= 0 {
		return nil, fmt.Errorf("league id must be greater than zero")
	}

	query := views("mRoster")
	query.Set("scoringPeriodId", strconv.Itoa(scoringPeriod))

	var resp rosterResponse
	if err := c.doJSON(ctx, c.leagueURL(query), nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch rosters for scoring period %d: %w", scoringPeriod, err)
	}

	rosters := make(map[int][]Player, len(resp.Teams))
	for _, t := range resp.Teams {
		players := make([]Player, 0, len(t.Roster.Entries))
		for _, e := range t.Roster.Entries {
			players = append(players, e.toPlayer(scoringPeriod))
		}
		rosters[t.ID] = players
	}
	c.logger.Info("Fetched rosters", "leagueID", c.leagueID, "scoringPeriod", scoringPeriod, "teams", len(rosters))
	return rosters, nil
}

func (e rosterEntry) toPlayer(scoringPeriod int) Player {
	p := e.PlayerPoolEntry.Player
	player := Player{
		ID:            e.PlayerID,
		Name:          p.FullName,
		Position:      Position(p.DefaultPositionID),
		LineupSlotID:  e.LineupSlotID,
		EligibleSlots: p.EligibleSlots,
		InjuryStatus:  p.InjuryStatus,
	}
	for _, stat := range p.Stats {
		if stat.ScoringPeriodID != scoringPeriod || stat.StatSplitTypeID != 1 {
			continue
		}
		switch stat.StatSourceID {
		case statActual:
			player.Points = stat.AppliedTotal
			player.Played = true
		case statProjected:
			player.ProjectedPoints = stat.AppliedTotal
		}
	}
	return player
}

// Position names an ESPN default position id.
func Position(id int) string {
	if name, ok := positions[id]; ok {
		return name
	}
	return strconv.Itoa(id)
}
