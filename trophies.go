package gameday

import (
	"math"

	"github.com/sdvgallardo/fantasy-football-chat-bot-vS/espn"
	"github.com/sdvgallardo/fantasy-football-chat-bot-vS/power"
)

// Margin is the result of one matchup seen from the winner's side.
type Margin struct {
	Winner int
	Loser  int
	Margin float64
}

func sides(matchups []espn.Matchup) []power.TeamScore {
	scores := make([]power.TeamScore, 0, len(matchups)*2)
	for _, m := range matchups {
		scores = append(scores, power.TeamScore{TeamID: m.Home.TeamID, Score: m.Home.Score})
		if m.Away != nil {
			scores = append(scores, power.TeamScore{TeamID: m.Away.TeamID, Score: m.Away.Score})
		}
	}
	return scores
}

func margin(m espn.Matchup) Margin {
	diff := m.Away.Score - m.Home.Score
	if diff < 0 {
		return Margin{Winner: m.Home.TeamID, Loser: m.Away.TeamID, Margin: -diff}
	}
	return Margin{Winner: m.Away.TeamID, Loser: m.Home.TeamID, Margin: diff}
}

// HighScore returns the first team with the week's highest score.
func HighScore(matchups []espn.Matchup) (power.TeamScore, bool) {
	best, found := power.TeamScore{Score: math.Inf(-1)}, false
	for _, s := range sides(matchups) {
		if s.Score > best.Score {
			best, found = s, true
		}
	}
	return best, found
}

// LowScore returns the first team with the week's lowest score.
func LowScore(matchups []espn.Matchup) (power.TeamScore, bool) {
	worst, found := power.TeamScore{Score: math.Inf(1)}, false
	for _, s := range sides(matchups) {
		if s.Score < worst.Score {
			worst, found = s, true
		}
	}
	return worst, found
}

// ClosestWin ignores ties and byes.
func ClosestWin(matchups []espn.Matchup) (Margin, bool) {
	closest, found := Margin{Margin: math.Inf(1)}, false
	for _, m := range matchups {
		if m.Away == nil {
			continue
		}
		if mg := margin(m); mg.Margin != 0 && mg.Margin < closest.Margin {
			closest, found = mg, true
		}
	}
	return closest, found
}

func BiggestBlowout(matchups []espn.Matchup) (Margin, bool) {
	biggest, found := Margin{Margin: -1}, false
	for _, m := range matchups {
		if m.Away == nil {
			continue
		}
		if mg := margin(m); mg.Margin > biggest.Margin {
			biggest, found = mg, true
		}
	}
	return biggest, found
}
