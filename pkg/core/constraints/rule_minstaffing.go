package constraints

import (
	"fmt"
	"slices"

	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/model"
)

// MinStaffingRule enforces the per-shift headcount floor.
//
// Every date present in the assignment set is checked for every working shift type
// that either has assignments on that date or a configured minimum above zero,
// so a completely empty shift on a scheduled date is still reported.
type MinStaffingRule struct{}

func (r *MinStaffingRule) Name() string {
	return "MinStaffing"
}

func (r *MinStaffingRule) Validate(rc *RuleContext) []model.ConstraintViolation {
	var violations []model.ConstraintViolation

	for _, date := range rc.Dates {
		for _, shiftType := range model.WorkingShiftTypes {
			minimum := rc.Hard.MinStaffFor(date, shiftType)
			staffIDs := rc.Groups[ShiftKey{Date: date, ShiftType: shiftType}]
			if minimum <= 0 || len(staffIDs) >= minimum {
				continue
			}

			shortfall := minimum - len(staffIDs)
			violations = append(violations, model.ConstraintViolation{
				Type: model.ViolationMinStaffing,
				Description: fmt.Sprintf("Insufficient staffing for %s shift on %s: has %d staff but minimum is %d (short by %d)",
					shiftType, date, len(staffIDs), minimum, shortfall),
				Severity:   model.SeverityCritical,
				StaffIDs:   slices.Clone(staffIDs),
				Dates:      []string{date},
				Suggestion: fmt.Sprintf("add %d more staff", shortfall),
			})
		}
	}

	return violations
}
