package constraints

import (
	"fmt"
	"slices"

	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/model"
)

// RoleMixRule enforces per-role headcount floors within each shift instance.
// It checks the same (date, shift type) groups as MinStaffingRule.
type RoleMixRule struct{}

func (r *RoleMixRule) Name() string {
	return "RoleMix"
}

func (r *RoleMixRule) Validate(rc *RuleContext) []model.ConstraintViolation {
	var violations []model.ConstraintViolation

	for _, date := range rc.Dates {
		for _, shiftType := range model.WorkingShiftTypes {
			requirements := rc.Hard.RoleMixRequirements[shiftType]
			if len(requirements) == 0 {
				continue
			}

			staffIDs := rc.Groups[ShiftKey{Date: date, ShiftType: shiftType}]

			// Count assigned staff by role
			roleCounts := make(map[model.Role]int)
			for _, staffID := range staffIDs {
				roleCounts[rc.Role(staffID)]++
			}

			// Stable role order
			roles := make([]model.Role, 0, len(requirements))
			for role := range requirements {
				roles = append(roles, role)
			}
			slices.Sort(roles)

			for _, role := range roles {
				required := requirements[role]
				if roleCounts[role] >= required {
					continue
				}
				shortfall := required - roleCounts[role]
				violations = append(violations, model.ConstraintViolation{
					Type: model.ViolationRoleMix,
					Description: fmt.Sprintf("Role mix not met for %s shift on %s: needs %d %s but has %d (short by %d)",
						shiftType, date, required, role, roleCounts[role], shortfall),
					Severity:   model.SeverityHigh,
					StaffIDs:   slices.Clone(staffIDs),
					Dates:      []string{date},
					Suggestion: fmt.Sprintf("assign %d more %s staff", shortfall, role),
				})
			}
		}
	}

	return violations
}
