// Package power computes all-play expected wins and the season power
// rankings derived from them.
package power

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrMissingWeek  = errors.New("missing week")
)

// TeamScore is one team's final (or live) score for a single week.
type TeamScore struct {
	TeamID int
	Score  float64
}

// ExpectedWin is the fraction of a full round-robin a team would have won in a week.
type ExpectedWin struct {
	TeamID   int
	Week     int
	Fraction float64
}

// Entry is a team's expected-win fraction averaged over the elapsed weeks.
type Entry struct {
	TeamID int
	Power  float64
}

// ExpectedWins compares every team against every other team that played in
// the week. Ties count as half a win. Results keep the order of scores.
func ExpectedWins(week int, scores []TeamScore) ([]ExpectedWin, error) {
	if len(scores) < 2 {
		return nil, fmt.Errorf("week %d: need at least 2 teams, got %d: %w", week, len(scores), ErrInvalidInput)
	}

	seen := make(map[int]bool, len(scores))
	for _, s := range scores {
		if seen[s.TeamID] {
			return nil, fmt.Errorf("week %d: team %d listed twice: %w", week, s.TeamID, ErrInvalidInput)
		}
		seen[s.TeamID] = true
		if math.IsNaN(s.Score) || math.IsInf(s.Score, 0) {
			return nil, fmt.Errorf("week %d: team %d has malformed score %v: %w", week, s.TeamID, s.Score, ErrInvalidInput)
		}
	}

	opponents := len(scores) - 1
	result := make([]ExpectedWin, 0, len(scores))
	for i, team := range scores {
		wins, losses := 0, 0
		for j, other := range scores {
			if i == j {
				continue
			}
			switch {
			case team.Score > other.Score:
				wins++
			case team.Score < other.Score:
				losses++
			}
		}
		ties := opponents - wins - losses
		result = append(result, ExpectedWin{
			TeamID:   team.TeamID,
			Week:     week,
			Fraction: (float64(wins) + 0.5*float64(ties)) / float64(opponents),
		})
	}
	return result, nil
}

// Rankings averages each team's expected wins over weeks 1..elapsed and sorts
// the result by power descending. Equal values keep the order in which teams
// were first seen, walking weeks in ascending order.
func Rankings(weekly map[int][]TeamScore, elapsed int) ([]Entry, error) {
	if elapsed < 1 {
		return []Entry{}, nil
	}

	var order []int
	sums := make(map[int]float64)
	for week := 1; week <= elapsed; week++ {
		scores, ok := weekly[week]
		if !ok {
			return nil, fmt.Errorf("week %d: no scores: %w", week, ErrMissingWeek)
		}
		fractions, err := ExpectedWins(week, scores)
		if err != nil {
			return nil, err
		}
		for _, f := range fractions {
			if _, ok := sums[f.TeamID]; !ok {
				order = append(order, f.TeamID)
			}
			sums[f.TeamID] += f.Fraction
		}
	}

	entries := make([]Entry, 0, len(order))
	for _, id := range order {
		entries = append(entries, Entry{TeamID: id, Power: sums[id] / float64(elapsed)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Power > entries[j].Power
	})
	return entries, nil
}
