package allocator

import (
	"sort"

	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/model"
)

// Candidate scoring weights
const (
	baseCandidateScore = 100.0

	// preferenceMultiplier turns a -5..5 preference into roughly a ±30 contribution
	preferenceMultiplier = 6.0

	// Workload: 10 points per 8 hours above the mean, capped
	workloadPenaltyPerShift = 10.0
	workloadPenaltyCap      = 20.0
	standardShiftHours      = 8.0

	nightRunPenalty       = 5.0
	seniorNightBonus      = 5.0
	weekendNudgePerDay    = 2.5
	weekendNudgeMagnitude = 5.0
)

// experienceBonus is the flat bonus per experience level
var experienceBonus = map[model.ExperienceLevel]float64{
	model.ExperienceNewbie: 0,
	model.ExperienceJunior: 5,
	model.ExperienceSenior: 10,
	model.ExperienceExpert: 15,
}

// candidate is a staff member eligible for a shift instance together with their score
type candidate struct {
	staff model.Staff
	score float64
}

// rankCandidates returns the available staff for a shift instance, best first.
// roleFilter restricts candidates to one role; RoleUnknown means any role.
// The sort is stable so equally scored candidates keep roster order.
func (g *ScheduleGenerator) rankCandidates(date string, shiftType model.ShiftType, roleFilter model.Role) []candidate {
	var candidates []candidate
	for _, staff := range g.roster.Members() {
		if roleFilter != model.RoleUnknown && staff.Role != roleFilter {
			continue
		}
		if !g.isAvailable(staff, date, shiftType) {
			continue
		}
		candidates = append(candidates, candidate{
			staff: staff,
			score: g.candidateScore(staff, date, shiftType),
		})
	}

	sortCandidates(candidates)
	return candidates
}

// bestCandidate returns the highest scoring available staff member, or nil if none is available
func (g *ScheduleGenerator) bestCandidate(date string, shiftType model.ShiftType, roleFilter model.Role) *model.Staff {
	candidates := g.rankCandidates(date, shiftType, roleFilter)
	if len(candidates) == 0 {
		return nil
	}
	return &candidates[0].staff
}

// candidateScore computes how desirable it is to put staff on this shift instance.
// Higher is better; the result is never below zero.
func (g *ScheduleGenerator) candidateScore(staff model.Staff, date string, shiftType model.ShiftType) float64 {
	state := g.state
	score := baseCandidateScore

	// Preference match
	if pref, ok := g.preferences[preferenceKey(staff.ID, date, shiftType)]; ok {
		score += float64(pref) * preferenceMultiplier
	}

	// Workload above the mean across active staff
	excess := float64(state.TotalHours[staff.ID]) - g.meanTotalHours()
	if excess > 0 {
		score -= min(workloadPenaltyCap, excess/standardShiftHours*workloadPenaltyPerShift)
	}

	// Running consecutive nights
	if shiftType == model.ShiftNight {
		if run := state.ConsecutiveNightsBefore(staff.ID, date); run > 0 {
			score -= float64(run) * nightRunPenalty
		}
	}

	// Experience
	score += experienceBonus[staff.ExperienceLevel]
	if shiftType == model.ShiftNight && staff.ExperienceLevel.IsSenior() {
		score += seniorNightBonus
	}

	// Weekend balance: favour staff with less weekend exposure than average
	if model.IsWeekend(date) {
		nudge := (g.meanWeekendDays() - float64(state.WeekendDays[staff.ID])) * weekendNudgePerDay
		score += max(-weekendNudgeMagnitude, min(weekendNudgeMagnitude, nudge))
	}

	return max(0, score)
}

// meanTotalHours returns the mean hours committed across active staff
func (g *ScheduleGenerator) meanTotalHours() float64 {
	active := g.roster.ActiveMembers()
	if len(active) == 0 {
		return 0
	}
	total := 0
	for _, s := range active {
		total += g.state.TotalHours[s.ID]
	}
	return float64(total) / float64(len(active))
}

// meanWeekendDays returns the mean weekend dates worked across active staff
func (g *ScheduleGenerator) meanWeekendDays() float64 {
	active := g.roster.ActiveMembers()
	if len(active) == 0 {
		return 0
	}
	total := 0
	for _, s := range active {
		total += g.state.WeekendDays[s.ID]
	}
	return float64(total) / float64(len(active))
}

// sortCandidates sorts by descending score, keeping input order on ties
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
}

func preferenceKey(staffID, date string, shiftType model.ShiftType) string {
	return staffID + "|" + date + "|" + string(shiftType)
}
