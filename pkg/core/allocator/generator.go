package allocator

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/constraints"
	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/model"
)

// ScheduleGenerator builds rosters by greedy construction followed by optional swap search.
//
// A generator carries run-scoped state that Generate resets on entry. It must not be used
// for two overlapping runs; create one generator per concurrent run.
type ScheduleGenerator struct {
	logger *zap.Logger
	rng    *rand.Rand

	// Run-scoped, rebuilt by reset
	cfg         GenerationConfig
	catalogue   model.ShiftCatalogue
	roster      *model.Roster
	engine      *constraints.ConstraintEngine
	preferences map[string]int
	state       *RunState
	warnings    []string
}

// NewScheduleGenerator creates a generator. rng drives the swap search; pass a seeded source
// for reproducible runs. A nil logger disables logging and a nil rng is seeded from the clock.
func NewScheduleGenerator(logger *zap.Logger, rng *rand.Rand) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ScheduleGenerator{
		logger: logger,
		rng:    rng,
	}
}

// Generate produces a roster for the configured date range.
//
// Generate always returns a result. Staffing shortfalls become warnings and hard violations
// in the report, never errors. The run fails (Success false, no assignments) only when the
// date range is invalid, nothing could be assigned, or an unexpected panic occurs.
func (g *ScheduleGenerator) Generate(ctx context.Context, cfg GenerationConfig) (result GenerationResult) {
	start := time.Now()

	ctx, span := startGenerateSpan(ctx, cfg)
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("Roster generation panicked", zap.Any("panic", r))
			result = failedResult(fmt.Sprintf("generation failed unexpectedly: %v", r), start)
		}
		setGenerateSpanResult(span, result)
		recordGenerateMetrics(ctx, time.Since(start), result)
	}()

	g.logger.Debug("Starting roster generation",
		zap.String("start", cfg.DateRange.Start),
		zap.String("end", cfg.DateRange.End),
		zap.Int("staff", len(cfg.Staff)),
		zap.Bool("optimize", cfg.Optimization.Enabled),
		zap.Int("max_iterations", cfg.Optimization.MaxIterations))

	dates, err := cfg.DateRange.Dates()
	if err != nil {
		return failedResult(fmt.Sprintf("invalid date range: %v", err), start)
	}

	// Phase 1: reset run state
	g.reset(cfg)

	// Phase 2: greedy construction
	for _, date := range dates {
		g.fillDate(date)
	}
	g.logger.Debug("Greedy construction finished",
		zap.Int("assignments", len(g.state.Slots)),
		zap.Int("warnings", len(g.warnings)))

	if len(g.state.Slots) == 0 {
		return failedResult("no assignments were generated", start)
	}

	// Phase 3: optional swap search
	iterations := g.optimize()

	// Phase 4: report
	return g.buildResult(dates, iterations, start)
}

// reset discards all state from a previous run
func (g *ScheduleGenerator) reset(cfg GenerationConfig) {
	g.cfg = cfg
	g.catalogue = cfg.Shifts
	if g.catalogue == nil {
		g.catalogue = model.DefaultShiftCatalogue()
	}
	g.roster = model.NewRoster(cfg.Staff)
	g.engine = constraints.NewEngine(constraints.Config{
		Hard:        cfg.Hard,
		Soft:        cfg.Soft,
		Staff:       cfg.Staff,
		Shifts:      g.catalogue,
		Preferences: cfg.Preferences,
	})

	g.preferences = make(map[string]int, len(cfg.Preferences))
	for _, p := range cfg.Preferences {
		g.preferences[preferenceKey(p.StaffID, p.Date, p.ShiftType)] = p.Score
	}

	g.state = NewRunState()
	g.warnings = []string{}
}

// fillDate staffs every shift type needed on one date, busiest shift first
func (g *ScheduleGenerator) fillDate(date string) {
	for _, shiftType := range g.shiftOrder(date) {
		g.fillShift(date, shiftType)
	}
}

// shiftOrder returns the working shift types to staff on date, ordered by descending
// minimum headcount. Ties keep the D, E, N order.
func (g *ScheduleGenerator) shiftOrder(date string) []model.ShiftType {
	var order []model.ShiftType
	for _, shiftType := range model.WorkingShiftTypes {
		if g.cfg.Hard.MinStaffFor(date, shiftType) > 0 || len(g.cfg.Hard.RoleMixRequirements[shiftType]) > 0 {
			order = append(order, shiftType)
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return g.cfg.Hard.MinStaffFor(date, order[i]) > g.cfg.Hard.MinStaffFor(date, order[j])
	})
	return order
}

// fillShift satisfies role-mix minimums first, then tops up to the headcount minimum from any role.
// Shortfalls are recorded as warnings and never stop construction.
func (g *ScheduleGenerator) fillShift(date string, shiftType model.ShiftType) {
	assigned := 0

	// Role mix first
	requirements := g.cfg.Hard.RoleMixRequirements[shiftType]
	roles := make([]model.Role, 0, len(requirements))
	for role := range requirements {
		roles = append(roles, role)
	}
	slices.Sort(roles)

	for _, role := range roles {
		needed := requirements[role]
		filled := 0
		for filled < needed {
			staff := g.bestCandidate(date, shiftType, role)
			if staff == nil {
				break
			}
			g.commit(*staff, date, shiftType)
			filled++
			assigned++
		}

		if filled < needed {
			g.warn(fmt.Sprintf("Role mix not met for %s shift on %s: needs %d %s, assigned %d (short by %d)",
				shiftType, date, needed, role, filled, needed-filled))
		}
	}

	// Fill remaining headcount from any role
	minimum := g.cfg.Hard.MinStaffFor(date, shiftType)
	for assigned < minimum {
		staff := g.bestCandidate(date, shiftType, model.RoleUnknown)
		if staff == nil {
			break
		}
		g.commit(*staff, date, shiftType)
		assigned++
	}

	if assigned < minimum {
		g.warn(fmt.Sprintf("Insufficient staff for %s shift on %s: assigned %d of %d (short by %d)",
			shiftType, date, assigned, minimum, minimum-assigned))
	}
}

// commit records an assignment and updates the running workload, night run and last-shift state
func (g *ScheduleGenerator) commit(staff model.Staff, date string, shiftType model.ShiftType) {
	state := g.state

	slot := &Slot{
		Index:     len(state.Slots),
		Date:      date,
		ShiftType: shiftType,
		StaffID:   staff.ID,
	}
	state.Slots = append(state.Slots, slot)

	duration := g.catalogue.Duration(shiftType)
	week := model.WeekStart(date)
	if state.WeeklyHours[staff.ID] == nil {
		state.WeeklyHours[staff.ID] = make(map[string]int)
	}
	state.WeeklyHours[staff.ID][week] += duration
	state.TotalHours[staff.ID] += duration

	if state.AssignedDates[staff.ID] == nil {
		state.AssignedDates[staff.ID] = make(map[string]bool)
	}
	state.AssignedDates[staff.ID][date] = true

	if model.IsWeekend(date) {
		state.WeekendDays[staff.ID]++
	}

	// A Night extends the run ending yesterday; any other working shift ends it
	if shiftType == model.ShiftNight {
		state.NightRun[staff.ID] = state.ConsecutiveNightsBefore(staff.ID, date) + 1
		state.LastNightDate[staff.ID] = date
	} else {
		state.NightRun[staff.ID] = 0
		state.LastNightDate[staff.ID] = ""
	}

	state.LastShift[staff.ID] = slot

	g.logger.Debug("Assigned staff",
		zap.String("staff_id", staff.ID),
		zap.String("date", date),
		zap.String("shift", string(shiftType)))
}

func (g *ScheduleGenerator) warn(msg string) {
	g.warnings = append(g.warnings, msg)
	g.logger.Debug("Construction shortfall", zap.String("warning", msg))
}

// buildResult analyzes the final roster and creates the generation result
func (g *ScheduleGenerator) buildResult(dates []string, iterations int, start time.Time) GenerationResult {
	assignments := g.state.Assignments()
	report := g.engine.Analyze(assignments)

	staffed := make(map[string]bool)
	for _, slot := range g.state.Slots {
		staffed[slot.Date] = true
	}
	unstaffed := []string{}
	for _, date := range dates {
		if !staffed[date] && len(g.shiftOrder(date)) > 0 {
			unstaffed = append(unstaffed, date)
		}
	}

	result := GenerationResult{
		Assignments: assignments,
		Analysis: GenerationAnalysis{
			Score:            report.Metrics.OverallScore,
			HardViolations:   len(report.HardViolations),
			SoftScore:        report.Metrics.SoftConstraintScore,
			GenerationTimeMs: time.Since(start).Milliseconds(),
			Iterations:       iterations,
		},
		Report:         report,
		Warnings:       g.warnings,
		UnstaffedDates: unstaffed,
		Success:        len(report.HardViolations) == 0,
	}

	g.logger.Debug("Roster generation finished",
		zap.Int("assignments", len(assignments)),
		zap.Int("hard_violations", result.Analysis.HardViolations),
		zap.Float64("score", result.Analysis.Score),
		zap.Int("iterations", iterations),
		zap.Strings("unstaffed_dates", unstaffed),
		zap.Bool("success", result.Success))

	return result
}

// failedResult creates a result for a run that produced nothing usable
func failedResult(reason string, start time.Time) GenerationResult {
	return GenerationResult{
		Assignments: []model.Assignment{},
		Analysis: GenerationAnalysis{
			GenerationTimeMs: time.Since(start).Milliseconds(),
		},
		Warnings:       []string{reason},
		UnstaffedDates: []string{},
		Success:        false,
	}
}
