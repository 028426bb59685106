package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRange_Dates(t *testing.T) {
	dates, err := DateRange{Start: "2024-02-27", End: "2024-03-01"}.Dates()
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01"}, dates)
}

func TestDateRange_SingleDay(t *testing.T) {
	dates, err := DateRange{Start: "2025-01-06", End: "2025-01-06"}.Dates()
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-06"}, dates)
}

func TestDateRange_Invalid(t *testing.T) {
	_, err := DateRange{Start: "2025-01-07", End: "2025-01-06"}.Dates()
	assert.Error(t, err)

	_, err = DateRange{Start: "not-a-date", End: "2025-01-06"}.Dates()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}

func TestIsNextDay(t *testing.T) {
	assert.True(t, IsNextDay("2025-01-31", "2025-02-01"))
	assert.True(t, IsNextDay("2024-12-31", "2025-01-01"))
	assert.False(t, IsNextDay("2025-01-06", "2025-01-06"))
	assert.False(t, IsNextDay("2025-01-06", "2025-01-08"))
	assert.False(t, IsNextDay("garbage", "2025-01-08"))
}

func TestWeekStart(t *testing.T) {
	// 2025-01-05 is a Sunday
	assert.Equal(t, "2025-01-05", WeekStart("2025-01-05"))
	assert.Equal(t, "2025-01-05", WeekStart("2025-01-11"))
	assert.Equal(t, "2025-01-12", WeekStart("2025-01-12"))
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend("2025-01-04"))
	assert.True(t, IsWeekend("2025-01-05"))
	assert.False(t, IsWeekend("2025-01-06"))
	assert.False(t, IsWeekend("garbage"))
}
