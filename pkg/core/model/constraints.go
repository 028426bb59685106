package model

// HardConstraints are mandatory operational rules. A roster violating any of them is invalid.
type HardConstraints struct {
	// MinStaffPerShift is the headcount floor for each shift type
	MinStaffPerShift map[ShiftType]int

	// RoleMixRequirements is the per-role headcount floor within each shift type
	RoleMixRequirements map[ShiftType]map[Role]int

	// MaxConsecutiveNights caps a run of Night shifts on consecutive calendar days
	MaxConsecutiveNights int

	// MinRestHours is the minimum gap between the end of one working shift and the start of the next
	MinRestHours int

	// NoPatterns lists forbidden transitions between consecutive working shifts, e.g. "N->D"
	NoPatterns []string

	// MaxWeeklyHours is the fallback weekly cap for staff without their own
	MaxWeeklyHours int

	// DateMinimums overrides MinStaffPerShift on specific dates.
	// Populated once at config load from recurrence rules.
	DateMinimums map[string]map[ShiftType]int
}

// MinStaffFor returns the headcount floor for a shift type on a date,
// preferring a date-specific override when one exists
func (h HardConstraints) MinStaffFor(date string, t ShiftType) int {
	if overrides, ok := h.DateMinimums[date]; ok {
		if n, ok := overrides[t]; ok {
			return n
		}
	}
	return h.MinStaffPerShift[t]
}

// WeeklyCapFor returns the staff member's weekly hour cap, falling back to the default
func (h HardConstraints) WeeklyCapFor(s Staff) int {
	if s.MaxWeeklyHours > 0 {
		return s.MaxWeeklyHours
	}
	return h.MaxWeeklyHours
}

// IsForbidden reports whether the transition prev -> cur is listed in NoPatterns
func (h HardConstraints) IsForbidden(prev, cur ShiftType) bool {
	pattern := TransitionPattern(prev, cur)
	for _, p := range h.NoPatterns {
		if p == pattern {
			return true
		}
	}
	return false
}

// TransitionPattern builds the "<prev>-><cur>" string used by NoPatterns
func TransitionPattern(prev, cur ShiftType) string {
	return string(prev) + "->" + string(cur)
}

// SoftConstraints are the weights of the five desirability objectives
type SoftConstraints struct {
	PreferenceWeight          float64
	WeekendFairnessWeight     float64
	SplitShiftAvoidanceWeight float64
	TeamCompatibilityWeight   float64
	ExperienceBalanceWeight   float64
}

// DefaultSoftConstraints weights every objective equally
func DefaultSoftConstraints() SoftConstraints {
	return SoftConstraints{
		PreferenceWeight:          1,
		WeekendFairnessWeight:     1,
		SplitShiftAvoidanceWeight: 1,
		TeamCompatibilityWeight:   1,
		ExperienceBalanceWeight:   1,
	}
}
