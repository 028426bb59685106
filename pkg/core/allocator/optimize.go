package allocator

import (
	"go.uber.org/zap"
)

// earlyStopProbability is the chance of ending the search after any non-improving round
const earlyStopProbability = 0.3

// optimize runs randomized swap search over the slot arena.
//
// Each round picks two distinct slots at random and swaps their owners. The swap is kept only
// if the engine's overall score strictly improves; otherwise it is reverted, and the search
// stops early with probability earlyStopProbability. Swaps that would give a staff member two
// working shifts on one date are never applied.
//
// Returns the number of rounds run.
func (g *ScheduleGenerator) optimize() int {
	opts := g.cfg.Optimization
	slots := g.state.Slots
	if !opts.Enabled || opts.MaxIterations <= 0 || len(slots) < 2 {
		return 0
	}

	current := g.engine.Analyze(g.state.Assignments()).Metrics.OverallScore
	initial := current
	kept := 0

	rounds := 0
	for rounds < opts.MaxIterations {
		rounds++

		// Pick two distinct slots
		i := g.rng.Intn(len(slots))
		j := g.rng.Intn(len(slots) - 1)
		if j >= i {
			j++
		}
		a, b := slots[i], slots[j]

		improved := false
		if a.StaffID != b.StaffID && g.canSwap(a, b) {
			a.StaffID, b.StaffID = b.StaffID, a.StaffID

			score := g.engine.Analyze(g.state.Assignments()).Metrics.OverallScore
			if score > current {
				current = score
				improved = true
				kept++
			} else {
				a.StaffID, b.StaffID = b.StaffID, a.StaffID
			}
		}

		if !improved && g.rng.Float64() < earlyStopProbability {
			break
		}
	}

	g.logger.Debug("Swap optimisation finished",
		zap.Int("rounds", rounds),
		zap.Int("kept_swaps", kept),
		zap.Float64("initial_score", initial),
		zap.Float64("final_score", current))

	return rounds
}

// canSwap reports whether exchanging the owners of a and b keeps every staff member
// on at most one working shift per date
func (g *ScheduleGenerator) canSwap(a, b *Slot) bool {
	for _, other := range g.state.Slots {
		if other == a || other == b {
			continue
		}
		if other.StaffID == b.StaffID && other.Date == a.Date {
			return false
		}
		if other.StaffID == a.StaffID && other.Date == b.Date {
			return false
		}
	}
	return true
}
