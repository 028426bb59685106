package constraints

import (
	"fmt"
	"slices"

	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/model"
)

// ConsecutiveNightsRule caps runs of Night shifts on consecutive calendar days.
//
// A run continues while each Night date is exactly one day after the previous one.
// Every Night beyond MaxConsecutiveNights in a run emits its own violation, so a run
// two nights over the cap is reported twice. A cap of zero disables the rule.
type ConsecutiveNightsRule struct{}

func (r *ConsecutiveNightsRule) Name() string {
	return "ConsecutiveNights"
}

func (r *ConsecutiveNightsRule) Validate(rc *RuleContext) []model.ConstraintViolation {
	var violations []model.ConstraintViolation

	maxNights := rc.Hard.MaxConsecutiveNights
	if maxNights <= 0 {
		return violations
	}

	for _, staffID := range rc.StaffIDs {
		nights := nightDates(rc.WorkingByStaff[staffID])
		if len(nights) == 0 {
			continue
		}

		run := []string{nights[0]}
		for _, date := range nights[1:] {
			if model.IsNextDay(run[len(run)-1], date) {
				run = append(run, date)
			} else {
				run = []string{date}
			}

			if len(run) > maxNights {
				violations = append(violations, model.ConstraintViolation{
					Type: model.ViolationConsecutiveNights,
					Description: fmt.Sprintf("Staff %s works %d consecutive night shifts (%s to %s), maximum is %d",
						staffID, len(run), run[0], date, maxNights),
					Severity:   model.SeverityHigh,
					StaffIDs:   []string{staffID},
					Dates:      slices.Clone(run),
					Suggestion: fmt.Sprintf("give %s a break after %d nights", staffID, maxNights),
				})
			}
		}
	}

	return violations
}

// nightDates returns the distinct Night dates from an ordered assignment list
func nightDates(ordered []model.Assignment) []string {
	var dates []string
	for _, a := range ordered {
		if a.ShiftType != model.ShiftNight {
			continue
		}
		if len(dates) > 0 && dates[len(dates)-1] == a.Date {
			continue
		}
		dates = append(dates, a.Date)
	}
	return dates
}
