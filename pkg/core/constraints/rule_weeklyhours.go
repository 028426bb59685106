package constraints

import (
	"fmt"
	"slices"

	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/model"
)

// WeeklyHoursRule caps each staff member's working hours per Sunday-anchored week.
// The cap is the staff member's own MaxWeeklyHours, falling back to the configured default;
// a resulting cap of zero disables the check for that staff member.
type WeeklyHoursRule struct{}

func (r *WeeklyHoursRule) Name() string {
	return "WeeklyHours"
}

func (r *WeeklyHoursRule) Validate(rc *RuleContext) []model.ConstraintViolation {
	var violations []model.ConstraintViolation

	for _, staffID := range rc.StaffIDs {
		staff, ok := rc.Roster.Get(staffID)
		if !ok {
			staff = model.Staff{ID: staffID, Role: model.RoleUnknown}
		}
		limit := rc.Hard.WeeklyCapFor(staff)
		if limit <= 0 {
			continue
		}

		// Bucket hours by week start
		hoursByWeek := make(map[string]int)
		datesByWeek := make(map[string][]string)
		for _, a := range rc.WorkingByStaff[staffID] {
			week := model.WeekStart(a.Date)
			hoursByWeek[week] += rc.Catalogue.Duration(a.ShiftType)
			datesByWeek[week] = append(datesByWeek[week], a.Date)
		}

		weeks := make([]string, 0, len(hoursByWeek))
		for week := range hoursByWeek {
			weeks = append(weeks, week)
		}
		slices.Sort(weeks)

		for _, week := range weeks {
			total := hoursByWeek[week]
			if total <= limit {
				continue
			}
			violations = append(violations, model.ConstraintViolation{
				Type: model.ViolationWeeklyHours,
				Description: fmt.Sprintf("Staff %s works %d hours in week starting %s, maximum is %d",
					staffID, total, week, limit),
				Severity:   model.SeverityMedium,
				StaffIDs:   []string{staffID},
				Dates:      slices.Compact(datesByWeek[week]),
				Suggestion: fmt.Sprintf("remove %d hours from %s in that week", total-limit, staffID),
			})
		}
	}

	return violations
}
