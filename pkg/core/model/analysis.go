package model

import (
	"fmt"
	"strings"
)

// Severity grades a hard constraint violation
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// ViolationType identifies the rule or objective a violation came from
type ViolationType string

const (
	// Hard rules
	ViolationMinStaffing       ViolationType = "MIN_STAFFING"
	ViolationRoleMix           ViolationType = "ROLE_MIX"
	ViolationConsecutiveNights ViolationType = "CONSECUTIVE_NIGHTS"
	ViolationMinRest           ViolationType = "MIN_REST"
	ViolationForbiddenPattern  ViolationType = "FORBIDDEN_PATTERN"
	ViolationWeeklyHours       ViolationType = "WEEKLY_HOURS"

	// Soft objectives
	ViolationPreference        ViolationType = "PREFERENCE"
	ViolationWeekendFairness   ViolationType = "WEEKEND_FAIRNESS"
	ViolationSplitShift        ViolationType = "SPLIT_SHIFT"
	ViolationTeamCompatibility ViolationType = "TEAM_COMPATIBILITY"
	ViolationExperienceBalance ViolationType = "EXPERIENCE_BALANCE"
)

// ConstraintViolation describes one broken rule or missed objective.
// Hard violations carry a Severity; soft violations carry an Impact in [0,1].
type ConstraintViolation struct {
	Type        ViolationType
	Description string
	Severity    Severity
	Impact      float64
	StaffIDs    []string
	Dates       []string
	Suggestion  string
}

// ImprovementType is the kind of remediation suggested for a violation
type ImprovementType string

const (
	ImprovementAddStaff        ImprovementType = "add_staff"
	ImprovementReallocateStaff ImprovementType = "reallocate_staff"
)

// Effort estimates how hard an improvement is to apply
type Effort string

const (
	EffortLow    Effort = "LOW"
	EffortMedium Effort = "MEDIUM"
	EffortHigh   Effort = "HIGH"
)

// Improvement is an advisory suggestion derived from a hard violation
type Improvement struct {
	Type                ImprovementType
	Description         string
	ExpectedImprovement float64
	Effort              Effort
	StaffIDs            []string
	Dates               []string
}

// QualityMetrics summarises a schedule on 0-100 scales
type QualityMetrics struct {
	HardConstraintScore float64
	SoftConstraintScore float64
	FairnessScore       float64
	SatisfactionScore   float64
	OverallScore        float64
}

// SoftBreakdown holds the individual 0-100 soft component scores
type SoftBreakdown struct {
	Preference          float64
	WeekendFairness     float64
	SplitShiftAvoidance float64
	TeamCompatibility   float64
	ExperienceBalance   float64
}

// ScheduleAnalysis is the audit report for one assignment set
type ScheduleAnalysis struct {
	HardViolations []ConstraintViolation
	SoftViolations []ConstraintViolation
	Metrics        QualityMetrics
	SoftBreakdown  SoftBreakdown
	Improvements   []Improvement
}

// IsValid returns true if the schedule has no hard violations
func (a *ScheduleAnalysis) IsValid() bool {
	return len(a.HardViolations) == 0
}

// FormatReport returns a human-readable summary of the analysis
func (a *ScheduleAnalysis) FormatReport() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Overall score: %.1f (hard %.1f, soft %.1f, fairness %.1f, satisfaction %.1f)\n",
		a.Metrics.OverallScore,
		a.Metrics.HardConstraintScore,
		a.Metrics.SoftConstraintScore,
		a.Metrics.FairnessScore,
		a.Metrics.SatisfactionScore)

	if a.IsValid() {
		b.WriteString("No hard constraint violations.\n")
	} else {
		fmt.Fprintf(&b, "Hard constraint violations (%d):\n", len(a.HardViolations))
		for _, v := range a.HardViolations {
			fmt.Fprintf(&b, "- [%s] %s: %s\n", v.Severity, v.Type, v.Description)
		}
	}

	if len(a.SoftViolations) > 0 {
		fmt.Fprintf(&b, "Soft constraint violations (%d):\n", len(a.SoftViolations))
		for _, v := range a.SoftViolations {
			fmt.Fprintf(&b, "- [%.2f] %s: %s\n", v.Impact, v.Type, v.Description)
		}
	}

	if len(a.Improvements) > 0 {
		b.WriteString("Suggested improvements:\n")
		for _, imp := range a.Improvements {
			fmt.Fprintf(&b, "- %s (%s effort, +%.0f%%): %s\n",
				imp.Type, imp.Effort, imp.ExpectedImprovement*100, imp.Description)
		}
	}

	return b.String()
}
