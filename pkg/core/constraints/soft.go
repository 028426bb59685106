package constraints

import (
	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/model"
)

// SoftResult is the output of one soft evaluation
type SoftResult struct {
	// Score is the weight-normalised 0-100 combination of the component scores
	Score      float64
	Breakdown  model.SoftBreakdown
	Violations []model.ConstraintViolation
}

// SoftConstraintEvaluator scores assignment sets against the weighted desirability objectives.
// It holds only construction-time configuration and is safe for concurrent use.
type SoftConstraintEvaluator struct {
	weights     model.SoftConstraints
	roster      *model.Roster
	preferences []model.Preference
}

// NewSoftConstraintEvaluator creates an evaluator for the given weights, roster and preferences
func NewSoftConstraintEvaluator(weights model.SoftConstraints, staff []model.Staff, preferences []model.Preference) *SoftConstraintEvaluator {
	prefs := make([]model.Preference, len(preferences))
	copy(prefs, preferences)
	return &SoftConstraintEvaluator{
		weights:     weights,
		roster:      model.NewRoster(staff),
		preferences: prefs,
	}
}

// Evaluate computes every component score and combines them by weight.
// If all weights are zero the combined score is 0.
func (e *SoftConstraintEvaluator) Evaluate(assignments []model.Assignment) SoftResult {
	working := make([]model.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if a.IsWorking() {
			working = append(working, a)
		}
	}

	result := SoftResult{Violations: []model.ConstraintViolation{}}

	components := []struct {
		weight float64
		score  *float64
		eval   func([]model.Assignment) (float64, []model.ConstraintViolation)
	}{
		{e.weights.PreferenceWeight, &result.Breakdown.Preference, e.preferenceScore},
		{e.weights.WeekendFairnessWeight, &result.Breakdown.WeekendFairness, e.weekendFairnessScore},
		{e.weights.SplitShiftAvoidanceWeight, &result.Breakdown.SplitShiftAvoidance, e.splitShiftScore},
		{e.weights.TeamCompatibilityWeight, &result.Breakdown.TeamCompatibility, e.teamCompatibilityScore},
		{e.weights.ExperienceBalanceWeight, &result.Breakdown.ExperienceBalance, e.experienceBalanceScore},
	}

	totalWeight := 0.0
	weightedSum := 0.0
	for _, c := range components {
		score, violations := c.eval(working)
		score = clamp(score, 0, 100)
		*c.score = score
		result.Violations = append(result.Violations, violations...)

		// Negative weights are treated as zero
		if c.weight <= 0 {
			continue
		}
		totalWeight += c.weight
		weightedSum += c.weight * score
	}

	if totalWeight > 0 {
		result.Score = clamp(weightedSum/totalWeight, 0, 100)
	}

	return result
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
