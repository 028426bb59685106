package constraints

import (
	"fmt"
	"math"
	"slices"

	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/model"
)

// maxPreferenceScore is the magnitude of the strongest preference a staff member can express
const maxPreferenceScore = 5

// preferenceScore measures how well preferences are honoured.
// A positive preference that is not assigned, or a negative one that is, costs its magnitude.
// Score = 100 * (1 - cost / total magnitude); 100 when there are no preferences.
func (e *SoftConstraintEvaluator) preferenceScore(working []model.Assignment) (float64, []model.ConstraintViolation) {
	var violations []model.ConstraintViolation

	assigned := make(map[string]bool, len(working))
	for _, a := range working {
		assigned[preferenceKey(a.StaffID, a.Date, a.ShiftType)] = true
	}

	total := 0
	penalty := 0
	for _, pref := range e.preferences {
		magnitude := abs(pref.Score)
		if magnitude == 0 {
			continue
		}
		total += magnitude

		honoured := assigned[preferenceKey(pref.StaffID, pref.Date, pref.ShiftType)]
		var description string
		switch {
		case pref.Score > 0 && !honoured:
			description = fmt.Sprintf("Staff %s asked for %s shift on %s but was not assigned", pref.StaffID, pref.ShiftType, pref.Date)
		case pref.Score < 0 && honoured:
			description = fmt.Sprintf("Staff %s asked to avoid %s shift on %s but was assigned", pref.StaffID, pref.ShiftType, pref.Date)
		default:
			continue
		}

		penalty += magnitude
		violations = append(violations, model.ConstraintViolation{
			Type:        model.ViolationPreference,
			Description: description,
			Impact:      math.Min(1, float64(magnitude)/maxPreferenceScore),
			StaffIDs:    []string{pref.StaffID},
			Dates:       []string{pref.Date},
		})
	}

	if total == 0 {
		return 100, violations
	}
	return 100 * (1 - float64(penalty)/float64(total)), violations
}

// weekendFairnessScore penalises active staff whose weekend workload deviates from the mean
// by more than one day. Score = 100 - 10 * total excess deviation.
func (e *SoftConstraintEvaluator) weekendFairnessScore(working []model.Assignment) (float64, []model.ConstraintViolation) {
	var violations []model.ConstraintViolation

	active := e.roster.ActiveMembers()
	if len(active) < 2 {
		return 100, violations
	}

	// Count distinct weekend dates worked per staff member
	weekendDates := make(map[string]map[string]bool)
	for _, a := range working {
		if !model.IsWeekend(a.Date) {
			continue
		}
		if weekendDates[a.StaffID] == nil {
			weekendDates[a.StaffID] = make(map[string]bool)
		}
		weekendDates[a.StaffID][a.Date] = true
	}

	total := 0
	for _, s := range active {
		total += len(weekendDates[s.ID])
	}
	avg := float64(total) / float64(len(active))

	excess := 0.0
	for _, s := range active {
		count := len(weekendDates[s.ID])
		deviation := math.Abs(float64(count) - avg)
		if deviation <= 1 {
			continue
		}
		excess += deviation - 1
		violations = append(violations, model.ConstraintViolation{
			Type:        model.ViolationWeekendFairness,
			Description: fmt.Sprintf("Staff %s works %d weekend days, average is %.1f", s.ID, count, avg),
			Impact:      math.Min(1, (deviation-1)/2),
			StaffIDs:    []string{s.ID},
		})
	}

	return 100 - 10*excess, violations
}

// splitShiftScore penalises fragmented schedules: a single day off between two working days,
// or more than one working shift on the same date. Score = 100 - 10 * splits.
func (e *SoftConstraintEvaluator) splitShiftScore(working []model.Assignment) (float64, []model.ConstraintViolation) {
	var violations []model.ConstraintViolation

	shiftsByStaffDate := make(map[string]map[string]int)
	for _, a := range working {
		if shiftsByStaffDate[a.StaffID] == nil {
			shiftsByStaffDate[a.StaffID] = make(map[string]int)
		}
		shiftsByStaffDate[a.StaffID][a.Date]++
	}

	splits := 0
	for _, staffID := range sortedMapKeys(shiftsByStaffDate) {
		dates := shiftsByStaffDate[staffID]
		for _, date := range sortedMapKeys(dates) {
			if n := dates[date]; n > 1 {
				splits += n - 1
				violations = append(violations, model.ConstraintViolation{
					Type:        model.ViolationSplitShift,
					Description: fmt.Sprintf("Staff %s works %d shifts on %s", staffID, n, date),
					Impact:      0.6,
					StaffIDs:    []string{staffID},
					Dates:       []string{date},
				})
			}

			offDay := model.NextDate(date)
			returnDay := model.NextDate(offDay)
			if dates[offDay] == 0 && dates[returnDay] > 0 {
				splits++
				violations = append(violations, model.ConstraintViolation{
					Type:        model.ViolationSplitShift,
					Description: fmt.Sprintf("Staff %s has a single day off on %s between working days", staffID, offDay),
					Impact:      0.3,
					StaffIDs:    []string{staffID},
					Dates:       []string{date, offDay, returnDay},
				})
			}
		}
	}

	return 100 - 10*float64(splits), violations
}

// teamCompatibilityScore measures how cohesive each shift instance is.
// Cohesion is the share of the instance's teamed staff belonging to its largest team;
// instances with fewer than two teamed staff are not scored. Score = 100 * mean cohesion.
func (e *SoftConstraintEvaluator) teamCompatibilityScore(working []model.Assignment) (float64, []model.ConstraintViolation) {
	var violations []model.ConstraintViolation

	groups, keys := groupInstances(working)

	scored := 0
	cohesionSum := 0.0
	for _, key := range keys {
		teamCounts := make(map[string]int)
		teamed := 0
		for _, staffID := range groups[key] {
			staff, ok := e.roster.Get(staffID)
			if !ok || staff.TeamID == "" {
				continue
			}
			teamCounts[staff.TeamID]++
			teamed++
		}
		if teamed < 2 {
			continue
		}

		largest := 0
		for _, n := range teamCounts {
			largest = max(largest, n)
		}
		cohesion := float64(largest) / float64(teamed)
		scored++
		cohesionSum += cohesion

		if cohesion < 0.5 {
			violations = append(violations, model.ConstraintViolation{
				Type:        model.ViolationTeamCompatibility,
				Description: fmt.Sprintf("%s shift on %s mixes %d teams across %d staff", key.ShiftType, key.Date, len(teamCounts), teamed),
				Impact:      1 - cohesion,
				StaffIDs:    slices.Clone(groups[key]),
				Dates:       []string{key.Date},
			})
		}
	}

	if scored == 0 {
		return 100, violations
	}
	return 100 * cohesionSum / float64(scored), violations
}

// experienceBalanceScore requires a SENIOR or EXPERT on every shift instance.
// Score = 100 * balanced instances / instances.
func (e *SoftConstraintEvaluator) experienceBalanceScore(working []model.Assignment) (float64, []model.ConstraintViolation) {
	var violations []model.ConstraintViolation

	groups, keys := groupInstances(working)
	if len(keys) == 0 {
		return 100, violations
	}

	balanced := 0
	for _, key := range keys {
		hasSenior := false
		for _, staffID := range groups[key] {
			if staff, ok := e.roster.Get(staffID); ok && staff.ExperienceLevel.IsSenior() {
				hasSenior = true
				break
			}
		}
		if hasSenior {
			balanced++
			continue
		}

		impact := 0.5
		if key.ShiftType == model.ShiftNight {
			impact = 0.8
		}
		violations = append(violations, model.ConstraintViolation{
			Type:        model.ViolationExperienceBalance,
			Description: fmt.Sprintf("%s shift on %s has no senior or expert staff", key.ShiftType, key.Date),
			Impact:      impact,
			StaffIDs:    slices.Clone(groups[key]),
			Dates:       []string{key.Date},
		})
	}

	return 100 * float64(balanced) / float64(len(keys)), violations
}

// groupInstances groups working assignments into shift instances, returning the keys
// in date then shift-type order
func groupInstances(working []model.Assignment) (map[ShiftKey][]string, []ShiftKey) {
	groups := make(map[ShiftKey][]string)
	var keys []ShiftKey
	for _, a := range working {
		key := ShiftKey{Date: a.Date, ShiftType: a.ShiftType}
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], a.StaffID)
	}

	slices.SortFunc(keys, func(a, b ShiftKey) int {
		if a.Date != b.Date {
			if a.Date < b.Date {
				return -1
			}
			return 1
		}
		return slices.Index(model.WorkingShiftTypes, a.ShiftType) - slices.Index(model.WorkingShiftTypes, b.ShiftType)
	})
	return groups, keys
}

func preferenceKey(staffID, date string, shiftType model.ShiftType) string {
	return staffID + "|" + date + "|" + string(shiftType)
}

func sortedMapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
