package constraints

import (
	"cmp"
	"slices"

	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/model"
)

// HardRule checks one mandatory rule across a complete assignment set.
// Rules are independent; the validator concatenates their results.
type HardRule interface {
	// Name returns a human-readable identifier for this rule
	Name() string

	// Validate returns one violation per breach of the rule (empty if the rule holds)
	Validate(rc *RuleContext) []model.ConstraintViolation
}

// ShiftKey identifies one shift instance: a shift type on a date
type ShiftKey struct {
	Date      string
	ShiftType model.ShiftType
}

// RuleContext is the indexed view of one assignment set, built per ValidateAll call.
// It is never shared between calls.
type RuleContext struct {
	Hard      model.HardConstraints
	Roster    *model.Roster
	Catalogue model.ShiftCatalogue

	// Assignments is the full input set, including Off records
	Assignments []model.Assignment

	// Dates contains every date present in the set, sorted
	Dates []string

	// StaffIDs contains every staff ID present in the set, sorted
	StaffIDs []string

	// WorkingByStaff holds each staff member's working assignments ordered by date then start hour
	WorkingByStaff map[string][]model.Assignment

	// Groups holds the staff IDs assigned to each working shift instance
	Groups map[ShiftKey][]string
}

// Role returns the role of a staff ID, or RoleUnknown if not on the roster
func (rc *RuleContext) Role(staffID string) model.Role {
	return rc.Roster.RoleOf(staffID)
}

// HardConstraintValidator checks assignment sets against the mandatory rules.
// It holds only construction-time configuration and is safe for concurrent use.
type HardConstraintValidator struct {
	hard      model.HardConstraints
	roster    *model.Roster
	catalogue model.ShiftCatalogue
	rules     []HardRule
}

// NewHardConstraintValidator creates a validator running the six built-in rules
func NewHardConstraintValidator(hard model.HardConstraints, staff []model.Staff, catalogue model.ShiftCatalogue) *HardConstraintValidator {
	if catalogue == nil {
		catalogue = model.DefaultShiftCatalogue()
	}
	return &HardConstraintValidator{
		hard:      hard,
		roster:    model.NewRoster(staff),
		catalogue: catalogue,
		rules: []HardRule{
			&MinStaffingRule{},
			&RoleMixRule{},
			&ConsecutiveNightsRule{},
			&MinRestRule{},
			&ForbiddenPatternRule{},
			&WeeklyHoursRule{},
		},
	}
}

// Rules returns the rules run by ValidateAll, in order
func (v *HardConstraintValidator) Rules() []HardRule {
	return v.rules
}

// ValidateAll runs every rule against the assignment set and returns all violations.
// An empty slice indicates the assignments satisfy every hard constraint.
func (v *HardConstraintValidator) ValidateAll(assignments []model.Assignment) []model.ConstraintViolation {
	rc := v.buildContext(assignments)

	violations := []model.ConstraintViolation{}
	for _, rule := range v.rules {
		violations = append(violations, rule.Validate(rc)...)
	}
	return violations
}

// buildContext indexes the assignments by staff, date and shift instance
func (v *HardConstraintValidator) buildContext(assignments []model.Assignment) *RuleContext {
	rc := &RuleContext{
		Hard:           v.hard,
		Roster:         v.roster,
		Catalogue:      v.catalogue,
		Assignments:    assignments,
		WorkingByStaff: make(map[string][]model.Assignment),
		Groups:         make(map[ShiftKey][]string),
	}

	dateSet := make(map[string]bool)
	staffSet := make(map[string]bool)
	for _, a := range assignments {
		dateSet[a.Date] = true
		staffSet[a.StaffID] = true

		// Off records and unknown shift types never count as working time
		if !a.IsWorking() {
			continue
		}
		rc.WorkingByStaff[a.StaffID] = append(rc.WorkingByStaff[a.StaffID], a)
		key := ShiftKey{Date: a.Date, ShiftType: a.ShiftType}
		rc.Groups[key] = append(rc.Groups[key], a.StaffID)
	}

	rc.Dates = sortedMapKeys(dateSet)
	rc.StaffIDs = sortedMapKeys(staffSet)

	for staffID, list := range rc.WorkingByStaff {
		ordered := slices.Clone(list)
		slices.SortStableFunc(ordered, func(a, b model.Assignment) int {
			if c := cmp.Compare(a.Date, b.Date); c != 0 {
				return c
			}
			return cmp.Compare(v.catalogue.Lookup(a.ShiftType).StartHour, v.catalogue.Lookup(b.ShiftType).StartHour)
		})
		rc.WorkingByStaff[staffID] = ordered
	}

	return rc
}
