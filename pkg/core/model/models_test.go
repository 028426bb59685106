package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShiftCatalogue_Lookup(t *testing.T) {
	catalogue := DefaultShiftCatalogue()

	assert.Equal(t, 23, catalogue.Lookup(ShiftNight).StartHour)
	assert.Equal(t, 31, catalogue.Lookup(ShiftNight).EndHour())
	assert.Equal(t, 8, catalogue.Duration(ShiftEvening))

	// Off and unknown types carry no working time
	assert.Equal(t, 0, catalogue.Duration(ShiftOff))
	assert.Equal(t, 0, catalogue.Duration(ShiftType("X")))
	assert.Equal(t, ShiftOff, catalogue.Lookup(ShiftType("X")).Type)
}

func TestHardConstraints_MinStaffFor(t *testing.T) {
	hard := HardConstraints{
		MinStaffPerShift: map[ShiftType]int{ShiftDay: 2, ShiftNight: 1},
		DateMinimums: map[string]map[ShiftType]int{
			"2025-01-11": {ShiftDay: 1},
		},
	}

	assert.Equal(t, 2, hard.MinStaffFor("2025-01-10", ShiftDay))
	assert.Equal(t, 1, hard.MinStaffFor("2025-01-11", ShiftDay))
	assert.Equal(t, 1, hard.MinStaffFor("2025-01-11", ShiftNight))
	assert.Equal(t, 0, hard.MinStaffFor("2025-01-11", ShiftEvening))
}

func TestHardConstraints_IsForbidden(t *testing.T) {
	hard := HardConstraints{NoPatterns: []string{"N->D", "E->D"}}

	assert.True(t, hard.IsForbidden(ShiftNight, ShiftDay))
	assert.True(t, hard.IsForbidden(ShiftEvening, ShiftDay))
	assert.False(t, hard.IsForbidden(ShiftDay, ShiftNight))
}

func TestHardConstraints_WeeklyCapFor(t *testing.T) {
	hard := HardConstraints{MaxWeeklyHours: 40}

	assert.Equal(t, 40, hard.WeeklyCapFor(Staff{ID: "a"}))
	assert.Equal(t, 32, hard.WeeklyCapFor(Staff{ID: "b", MaxWeeklyHours: 32}))
}

func TestRoster(t *testing.T) {
	roster := NewRoster([]Staff{
		{ID: "a", Role: RoleChargeNurse, Active: true},
		{ID: "b", Role: RoleNursingAssist, Active: false},
	})

	assert.Equal(t, RoleChargeNurse, roster.RoleOf("a"))
	assert.Equal(t, RoleUnknown, roster.RoleOf("ghost"))
	assert.Len(t, roster.Members(), 2)
	assert.Len(t, roster.ActiveMembers(), 1)

	_, ok := roster.Get("ghost")
	assert.False(t, ok)
}

func TestExperienceLevel(t *testing.T) {
	assert.True(t, ExperienceExpert.IsSenior())
	assert.True(t, ExperienceSenior.IsSenior())
	assert.False(t, ExperienceJunior.IsSenior())
	assert.False(t, ExperienceLevel("INTERN").IsValid())
	assert.Less(t, ExperienceNewbie.Rank(), ExperienceJunior.Rank())
}
