package allocator

import (
	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/model"
)

// GenerationConfig contains everything needed for one roster generation run.
// Defaults are expected to have been applied by the caller (see internal/config).
type GenerationConfig struct {
	// DateRange is the inclusive range of dates to staff
	DateRange model.DateRange

	// Staff is the roster, in the order used to break ties between equally scored candidates
	Staff []model.Staff

	// Shifts is the shift catalogue (nil uses model.DefaultShiftCatalogue)
	Shifts model.ShiftCatalogue

	Hard        model.HardConstraints
	Soft        model.SoftConstraints
	Preferences []model.Preference

	Optimization OptimizationConfig
}

// OptimizationConfig gates the post-construction swap search
type OptimizationConfig struct {
	Enabled bool

	// MaxIterations bounds the number of swap rounds; callers needing a time budget bound this
	MaxIterations int
}

// GenerationAnalysis summarises the final roster's quality
type GenerationAnalysis struct {
	Score            float64
	HardViolations   int
	SoftScore        float64
	GenerationTimeMs int64
	Iterations       int
}

// GenerationResult is the outcome of Generate. It is always returned, even on failure.
type GenerationResult struct {
	Assignments []model.Assignment
	Analysis    GenerationAnalysis

	// Report is the full analysis of the final roster (nil when generation failed outright)
	Report *model.ScheduleAnalysis

	// Warnings lists shortfalls met during construction and any failure diagnostic
	Warnings []string

	// UnstaffedDates lists dates that needed staff but received no assignment at all.
	// The analysis only audits dates present in the roster, so these never count as hard violations.
	UnstaffedDates []string

	// Success is true when the final roster has no hard violations.
	// It does not account for UnstaffedDates.
	Success bool
}

// Slot is a fixed-identity assignment position created during construction.
// Optimisation only ever swaps StaffID between slots; slots are never added or removed after construction.
type Slot struct {
	Index     int
	Date      string
	ShiftType model.ShiftType
	StaffID   string
}

// Assignment returns the slot as an assignment value
func (s *Slot) Assignment() model.Assignment {
	return model.Assignment{StaffID: s.StaffID, ShiftType: s.ShiftType, Date: s.Date}
}

// RunState is the mutable per-run state of a ScheduleGenerator
type RunState struct {
	// Slots is the arena of assignments created so far, in creation order
	Slots []*Slot

	// WeeklyHours tracks hours committed per staff member per Sunday-anchored week
	WeeklyHours map[string]map[string]int

	// TotalHours tracks hours committed per staff member over the whole run
	TotalHours map[string]int

	// NightRun is the length of the staff member's current run of consecutive Nights,
	// which ends on LastNightDate
	NightRun      map[string]int
	LastNightDate map[string]string

	// LastShift points at each staff member's most recent working slot
	LastShift map[string]*Slot

	// AssignedDates records the dates each staff member already works
	AssignedDates map[string]map[string]bool

	// WeekendDays counts weekend dates worked per staff member
	WeekendDays map[string]int
}

// NewRunState returns an empty run state
func NewRunState() *RunState {
	return &RunState{
		Slots:         []*Slot{},
		WeeklyHours:   make(map[string]map[string]int),
		TotalHours:    make(map[string]int),
		NightRun:      make(map[string]int),
		LastNightDate: make(map[string]string),
		LastShift:     make(map[string]*Slot),
		AssignedDates: make(map[string]map[string]bool),
		WeekendDays:   make(map[string]int),
	}
}

// ConsecutiveNightsBefore returns the length of the Night run ending on the day before date
func (rs *RunState) ConsecutiveNightsBefore(staffID, date string) int {
	if rs.LastNightDate[staffID] != "" && model.IsNextDay(rs.LastNightDate[staffID], date) {
		return rs.NightRun[staffID]
	}
	return 0
}

// WeekHours returns the hours already committed in the week containing date
func (rs *RunState) WeekHours(staffID, date string) int {
	return rs.WeeklyHours[staffID][model.WeekStart(date)]
}

// IsAssigned reports whether the staff member already works on date
func (rs *RunState) IsAssigned(staffID, date string) bool {
	return rs.AssignedDates[staffID][date]
}

// Assignments returns the current arena contents as assignment values
func (rs *RunState) Assignments() []model.Assignment {
	assignments := make([]model.Assignment, len(rs.Slots))
	for i, slot := range rs.Slots {
		assignments[i] = slot.Assignment()
	}
	return assignments
}
