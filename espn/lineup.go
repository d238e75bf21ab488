package espn

import "sort"

// OptimalScore is the most points a roster could have scored with the
// league's lineup slots. Slots with the fewest eligible players are filled
// first so flex slots only take what the dedicated positions left over.
func OptimalScore(roster []Player, slots map[int]int) float64 {
	type opening struct {
		slot     int
		eligible int
	}

	var openings []opening
	for slot, count := range slots {
		if slot == SlotBench || slot == SlotIR || count <= 0 {
			continue
		}
		eligible := 0
		for _, p := range roster {
			if p.Eligible(slot) {
				eligible++
			}
		}
		for i := 0; i < count; i++ {
			openings = append(openings, opening{slot: slot, eligible: eligible})
		}
	}
	sort.SliceStable(openings, func(i, j int) bool {
		if openings[i].eligible != openings[j].eligible {
			return openings[i].eligible < openings[j].eligible
		}
		return openings[i].slot < openings[j].slot
	})

	used := make([]bool, len(roster))
	var total float64
	for _, o := range openings {
		best := -1
		for i, p := range roster {
			if used[i] || !p.Eligible(o.slot) {
				continue
			}
			if best < 0 || p.Points > roster[best].Points {
				best = i
			}
		}
		if best >= 0 {
			used[best] = true
			total += roster[best].Points
		}
	}
	return total
}

// StarterScore sums the points of the players in the scoring lineup.
func StarterScore(roster []Player) float64 {
	var total float64
	for _, p := range roster {
		if p.Starter() {
			total += p.Points
		}
	}
	return total
}
