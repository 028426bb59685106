package constraints

import (
	"fmt"

	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/model"
)

// ForbiddenPatternRule rejects listed transitions between consecutive working shifts,
// e.g. "N->D" for a Night followed by a Day.
//
// Off records and days without a shift are skipped, so N, OFF, D is still an N->D transition.
type ForbiddenPatternRule struct{}

func (r *ForbiddenPatternRule) Name() string {
	return "ForbiddenPattern"
}

func (r *ForbiddenPatternRule) Validate(rc *RuleContext) []model.ConstraintViolation {
	var violations []model.ConstraintViolation

	if len(rc.Hard.NoPatterns) == 0 {
		return violations
	}

	for _, staffID := range rc.StaffIDs {
		ordered := rc.WorkingByStaff[staffID]
		for i := 1; i < len(ordered); i++ {
			prev, cur := ordered[i-1], ordered[i]
			if !rc.Hard.IsForbidden(prev.ShiftType, cur.ShiftType) {
				continue
			}

			pattern := model.TransitionPattern(prev.ShiftType, cur.ShiftType)
			violations = append(violations, model.ConstraintViolation{
				Type: model.ViolationForbiddenPattern,
				Description: fmt.Sprintf("Staff %s has forbidden shift pattern %s on %s to %s",
					staffID, pattern, prev.Date, cur.Date),
				Severity:   model.SeverityMedium,
				StaffIDs:   []string{staffID},
				Dates:      []string{prev.Date, cur.Date},
				Suggestion: fmt.Sprintf("avoid the %s transition for %s", pattern, staffID),
			})
		}
	}

	return violations
}
