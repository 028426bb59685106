package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/model"
)

func newPreparedGenerator(hard model.HardConstraints, staff ...model.Staff) *ScheduleGenerator {
	g := newGenerator(1)
	g.reset(GenerationConfig{
		DateRange: model.DateRange{Start: "2025-01-05", End: "2025-01-11"},
		Staff:     staff,
		Hard:      hard,
	})
	return g
}

func TestIsAvailable(t *testing.T) {
	alice := newStaff("alice", model.RoleRegisteredNurse, model.ExperienceSenior)

	t.Run("inactive staff", func(t *testing.T) {
		inactive := alice
		inactive.Active = false
		g := newPreparedGenerator(model.HardConstraints{}, inactive)

		assert.False(t, g.isAvailable(inactive, "2025-01-06", model.ShiftDay))
	})

	t.Run("already working that date", func(t *testing.T) {
		g := newPreparedGenerator(model.HardConstraints{}, alice)
		g.commit(alice, "2025-01-06", model.ShiftDay)

		assert.False(t, g.isAvailable(alice, "2025-01-06", model.ShiftEvening))
		assert.True(t, g.isAvailable(alice, "2025-01-07", model.ShiftEvening))
	})

	t.Run("weekly cap", func(t *testing.T) {
		g := newPreparedGenerator(model.HardConstraints{MaxWeeklyHours: 16}, alice)
		g.commit(alice, "2025-01-06", model.ShiftDay)
		g.commit(alice, "2025-01-07", model.ShiftDay)

		assert.False(t, g.isAvailable(alice, "2025-01-08", model.ShiftDay))

		// 2025-01-12 starts a new week
		assert.True(t, g.isAvailable(alice, "2025-01-12", model.ShiftDay))
	})

	t.Run("consecutive night cap", func(t *testing.T) {
		g := newPreparedGenerator(model.HardConstraints{MaxConsecutiveNights: 2}, alice)
		g.commit(alice, "2025-01-06", model.ShiftNight)
		g.commit(alice, "2025-01-07", model.ShiftNight)

		assert.False(t, g.isAvailable(alice, "2025-01-08", model.ShiftNight))
		assert.True(t, g.isAvailable(alice, "2025-01-09", model.ShiftNight))
	})

	t.Run("night run reset by other shift", func(t *testing.T) {
		g := newPreparedGenerator(model.HardConstraints{MaxConsecutiveNights: 1}, alice)
		g.commit(alice, "2025-01-06", model.ShiftNight)
		g.commit(alice, "2025-01-07", model.ShiftEvening)

		assert.Equal(t, 0, g.state.ConsecutiveNightsBefore("alice", "2025-01-08"))
		assert.True(t, g.isAvailable(alice, "2025-01-08", model.ShiftNight))
	})

	t.Run("forbidden transition", func(t *testing.T) {
		g := newPreparedGenerator(model.HardConstraints{NoPatterns: []string{"N->D"}}, alice)
		g.commit(alice, "2025-01-06", model.ShiftNight)

		assert.False(t, g.isAvailable(alice, "2025-01-07", model.ShiftDay))
		assert.True(t, g.isAvailable(alice, "2025-01-07", model.ShiftNight))

		// Days off in between do not break the sequence
		assert.False(t, g.isAvailable(alice, "2025-01-09", model.ShiftDay))

		g.commit(alice, "2025-01-08", model.ShiftEvening)
		assert.True(t, g.isAvailable(alice, "2025-01-10", model.ShiftDay))
	})

	t.Run("minimum rest", func(t *testing.T) {
		g := newPreparedGenerator(model.HardConstraints{MinRestHours: 10}, alice)
		g.commit(alice, "2025-01-06", model.ShiftEvening)

		// Evening ends 23:00, Day starts 07:00: 8 hours rest
		assert.False(t, g.isAvailable(alice, "2025-01-07", model.ShiftDay))
		assert.True(t, g.isAvailable(alice, "2025-01-07", model.ShiftEvening))
	})
}

func TestCommit_UpdatesRunState(t *testing.T) {
	alice := newStaff("alice", model.RoleRegisteredNurse, model.ExperienceSenior)
	g := newPreparedGenerator(model.HardConstraints{}, alice)

	g.commit(alice, "2025-01-05", model.ShiftNight)
	g.commit(alice, "2025-01-06", model.ShiftNight)

	state := g.state
	assert.Len(t, state.Slots, 2)
	assert.Equal(t, 1, state.Slots[1].Index)
	assert.Equal(t, 16, state.WeekHours("alice", "2025-01-06"))
	assert.Equal(t, 16, state.TotalHours["alice"])
	assert.Equal(t, 2, state.NightRun["alice"])
	assert.Equal(t, "2025-01-06", state.LastNightDate["alice"])
	assert.Equal(t, 1, state.WeekendDays["alice"])
	assert.Equal(t, state.Slots[1], state.LastShift["alice"])
	assert.True(t, state.IsAssigned("alice", "2025-01-05"))
}

func TestCanSwap(t *testing.T) {
	a := newStaff("a", model.RoleRegisteredNurse, model.ExperienceSenior)
	b := newStaff("b", model.RoleRegisteredNurse, model.ExperienceSenior)
	g := newPreparedGenerator(model.HardConstraints{}, a, b)

	g.commit(a, "2025-01-06", model.ShiftDay)
	g.commit(b, "2025-01-06", model.ShiftNight)
	g.commit(b, "2025-01-07", model.ShiftDay)

	slots := g.state.Slots

	// Swapping a's Day for b's next-day Day would put b on two shifts on the 6th
	assert.False(t, g.canSwap(slots[0], slots[2]))

	// Swapping owners within the same date keeps one shift each
	assert.True(t, g.canSwap(slots[0], slots[1]))
}
