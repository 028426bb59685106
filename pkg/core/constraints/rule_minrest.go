package constraints

import (
	"fmt"
	"time"

	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/model"
)

// MinRestRule enforces the minimum rest gap between consecutive working shifts.
//
// Rest between two shifts on the same date is nextStart - prevEnd; across adjacent dates it
// is (24 - prevEnd) + nextStart, where end = start + duration. Both are clamped at zero, so a
// Night ending at 07:00 followed by a Day starting at 07:00 has zero rest. Each further day
// between the two shifts adds 24 hours.
type MinRestRule struct{}

func (r *MinRestRule) Name() string {
	return "MinRest"
}

func (r *MinRestRule) Validate(rc *RuleContext) []model.ConstraintViolation {
	var violations []model.ConstraintViolation

	minRest := rc.Hard.MinRestHours
	if minRest <= 0 {
		return violations
	}

	for _, staffID := range rc.StaffIDs {
		ordered := rc.WorkingByStaff[staffID]
		for i := 1; i < len(ordered); i++ {
			prev, next := ordered[i-1], ordered[i]
			rest := RestHours(rc.Catalogue, prev, next)
			if rest >= minRest {
				continue
			}

			violations = append(violations, model.ConstraintViolation{
				Type: model.ViolationMinRest,
				Description: fmt.Sprintf("Staff %s has only %d hours rest between %s shift on %s and %s shift on %s (minimum %d)",
					staffID, rest, prev.ShiftType, prev.Date, next.ShiftType, next.Date, minRest),
				Severity:   model.SeverityHigh,
				StaffIDs:   []string{staffID},
				Dates:      []string{prev.Date, next.Date},
				Suggestion: fmt.Sprintf("move %s off the %s shift on %s", staffID, next.ShiftType, next.Date),
			})
		}
	}

	return violations
}

// RestHours computes the rest between the end of prev and the start of next, never negative.
// prev must not be after next.
func RestHours(catalogue model.ShiftCatalogue, prev, next model.Assignment) int {
	prevEnd := catalogue.Lookup(prev.ShiftType).EndHour()
	nextStart := catalogue.Lookup(next.ShiftType).StartHour

	var rest int
	if prev.Date == next.Date {
		rest = nextStart - prevEnd
	} else {
		rest = (24 - prevEnd) + nextStart + 24*(daysBetween(prev.Date, next.Date)-1)
	}

	return max(rest, 0)
}

// daysBetween returns the number of calendar days from a to b, or 1 if either is unparseable
func daysBetween(a, b string) int {
	ta, errA := model.ParseDate(a)
	tb, errB := model.ParseDate(b)
	if errA != nil || errB != nil {
		return 1
	}
	days := int(tb.Sub(ta) / (24 * time.Hour))
	return max(days, 1)
}
