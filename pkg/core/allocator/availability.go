package allocator

import (
	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/constraints"
	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/model"
)

// isAvailable checks if a staff member can be assigned to a shift instance.
//
// Returns false if:
//   - The staff member is inactive
//   - The staff member already works on this date
//   - The shift would push their hours for the week past their weekly cap
//   - It is a Night and they are already at the consecutive-night cap
//   - Following their last working shift with this one is a forbidden transition
//   - Following their last working shift with this one leaves less than the minimum rest
//
// Otherwise returns true.
func (g *ScheduleGenerator) isAvailable(staff model.Staff, date string, shiftType model.ShiftType) bool {
	state := g.state
	hard := g.cfg.Hard

	if !staff.Active {
		return false
	}

	// One working assignment per date
	if state.IsAssigned(staff.ID, date) {
		return false
	}

	// Weekly hours
	if limit := hard.WeeklyCapFor(staff); limit > 0 {
		if state.WeekHours(staff.ID, date)+g.catalogue.Duration(shiftType) > limit {
			return false
		}
	}

	// Consecutive nights
	if shiftType == model.ShiftNight && hard.MaxConsecutiveNights > 0 {
		if state.ConsecutiveNightsBefore(staff.ID, date) >= hard.MaxConsecutiveNights {
			return false
		}
	}

	last := state.LastShift[staff.ID]
	if last == nil {
		return true
	}
	candidate := model.Assignment{StaffID: staff.ID, ShiftType: shiftType, Date: date}

	// Forbidden transition from the previous working shift, however far back
	if hard.IsForbidden(last.ShiftType, shiftType) {
		return false
	}

	// Minimum rest after the previous working shift
	if hard.MinRestHours > 0 {
		if constraints.RestHours(g.catalogue, last.Assignment(), candidate) < hard.MinRestHours {
			return false
		}
	}

	return true
}
