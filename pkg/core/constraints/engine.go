package constraints

import (
	"fmt"
	"slices"

	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/model"
)

// Score composition
const (
	// HardViolationPenalty is subtracted from the hard score for each hard violation
	HardViolationPenalty = 10.0

	HardScoreWeight = 0.7
	SoftScoreWeight = 0.3
)

// Improvement estimates
const (
	addStaffExpectedImprovement   = 0.2
	reallocateExpectedImprovement = 0.15
)

// Config bundles the inputs needed to build a ConstraintEngine
type Config struct {
	Hard        model.HardConstraints
	Soft        model.SoftConstraints
	Staff       []model.Staff
	Shifts      model.ShiftCatalogue
	Preferences []model.Preference
}

// ConstraintEngine combines hard validation and soft evaluation into one audit report.
// It is stateless after construction and safe for concurrent use.
type ConstraintEngine struct {
	validator *HardConstraintValidator
	evaluator *SoftConstraintEvaluator
}

// NewConstraintEngine creates an engine from an existing validator and evaluator
func NewConstraintEngine(validator *HardConstraintValidator, evaluator *SoftConstraintEvaluator) *ConstraintEngine {
	return &ConstraintEngine{
		validator: validator,
		evaluator: evaluator,
	}
}

// NewEngine builds the validator and evaluator from a Config and wraps them in an engine
func NewEngine(cfg Config) *ConstraintEngine {
	return NewConstraintEngine(
		NewHardConstraintValidator(cfg.Hard, cfg.Staff, cfg.Shifts),
		NewSoftConstraintEvaluator(cfg.Soft, cfg.Staff, cfg.Preferences),
	)
}

// Analyze audits an assignment set, generated or hand-edited.
// It never mutates its input and returns the same analysis for the same input.
func (e *ConstraintEngine) Analyze(assignments []model.Assignment) *model.ScheduleAnalysis {
	hardViolations := e.validator.ValidateAll(assignments)
	soft := e.evaluator.Evaluate(assignments)

	hardScore := HardConstraintScore(len(hardViolations))

	return &model.ScheduleAnalysis{
		HardViolations: hardViolations,
		SoftViolations: soft.Violations,
		Metrics: model.QualityMetrics{
			HardConstraintScore: hardScore,
			SoftConstraintScore: soft.Score,
			FairnessScore:       soft.Breakdown.WeekendFairness,
			SatisfactionScore:   soft.Breakdown.Preference,
			OverallScore:        OverallScore(hardScore, soft.Score),
		},
		SoftBreakdown: soft.Breakdown,
		Improvements:  suggestImprovements(hardViolations),
	}
}

// HardConstraintScore is 100 with no violations, otherwise max(0, 100 - 10 * count)
func HardConstraintScore(violationCount int) float64 {
	if violationCount == 0 {
		return 100
	}
	return max(0, 100-HardViolationPenalty*float64(violationCount))
}

// OverallScore weights the hard and soft scores 70/30
func OverallScore(hardScore, softScore float64) float64 {
	return HardScoreWeight*hardScore + SoftScoreWeight*softScore
}

// suggestImprovements maps each hard violation to an advisory remediation
func suggestImprovements(violations []model.ConstraintViolation) []model.Improvement {
	improvements := make([]model.Improvement, 0, len(violations))

	for _, v := range violations {
		if v.Type == model.ViolationMinStaffing {
			improvements = append(improvements, model.Improvement{
				Type:                model.ImprovementAddStaff,
				Description:         fmt.Sprintf("%s: %s", v.Suggestion, v.Description),
				ExpectedImprovement: addStaffExpectedImprovement,
				Effort:              model.EffortMedium,
				StaffIDs:            slices.Clone(v.StaffIDs),
				Dates:               slices.Clone(v.Dates),
			})
			continue
		}

		improvements = append(improvements, model.Improvement{
			Type:                model.ImprovementReallocateStaff,
			Description:         fmt.Sprintf("Reallocate staff to resolve %s: %s", v.Type, v.Description),
			ExpectedImprovement: reallocateExpectedImprovement,
			Effort:              model.EffortLow,
			StaffIDs:            slices.Clone(v.StaffIDs),
			Dates:               slices.Clone(v.Dates),
		})
	}

	return improvements
}
