package constraints

import (
	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/model"
)

// Helper functions for building test data

func newStaff(id string, role model.Role, level model.ExperienceLevel) model.Staff {
	return model.Staff{
		ID:              id,
		Name:            "Staff " + id,
		Role:            role,
		ExperienceLevel: level,
		Active:          true,
	}
}

func assign(staffID, date string, shiftType model.ShiftType) model.Assignment {
	return model.Assignment{StaffID: staffID, ShiftType: shiftType, Date: date}
}

func violationsOfType(violations []model.ConstraintViolation, t model.ViolationType) []model.ConstraintViolation {
	var filtered []model.ConstraintViolation
	for _, v := range violations {
		if v.Type == t {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

func defaultRoster() []model.Staff {
	return []model.Staff{
		newStaff("alice", model.RoleChargeNurse, model.ExperienceExpert),
		newStaff("bob", model.RoleRegisteredNurse, model.ExperienceSenior),
		newStaff("carol", model.RoleRegisteredNurse, model.ExperienceJunior),
		newStaff("dave", model.RoleNursingAssist, model.ExperienceNewbie),
	}
}
