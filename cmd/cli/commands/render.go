package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/model"
)

// renderRoster prints one line per date with the staff on each working shift
func renderRoster(assignments []model.Assignment) string {
	byDate := make(map[string]map[model.ShiftType][]string)
	for _, a := range assignments {
		if !a.IsWorking() {
			continue
		}
		if byDate[a.Date] == nil {
			byDate[a.Date] = make(map[model.ShiftType][]string)
		}
		byDate[a.Date][a.ShiftType] = append(byDate[a.Date][a.ShiftType], a.StaffID)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	slices.Sort(dates)

	var b strings.Builder
	b.WriteString("Roster:\n")
	for _, date := range dates {
		cells := make([]string, 0, len(model.WorkingShiftTypes))
		for _, shiftType := range model.WorkingShiftTypes {
			staff := slices.Clone(byDate[date][shiftType])
			slices.Sort(staff)
			names := "-"
			if len(staff) > 0 {
				names = strings.Join(staff, ", ")
			}
			cells = append(cells, fmt.Sprintf("%s: %s", shiftType, names))
		}
		fmt.Fprintf(&b, "  %s  %s\n", date, strings.Join(cells, " | "))
	}
	return b.String()
}
