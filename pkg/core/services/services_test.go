package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KNOCKYONG/shifteasy-sub001/internal/config"
	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/model"
)

func newTestConfig(minDay int, staffIDs ...string) *config.Config {
	staff := make([]config.StaffMember, 0, len(staffIDs))
	for _, id := range staffIDs {
		staff = append(staff, config.StaffMember{ID: id, Name: id, Role: "RN", ExperienceLevel: "SENIOR"})
	}

	cfg := &config.Config{
		DateRange: config.DateRange{Start: "2025-01-06", End: "2025-01-06"},
		Staff:     staff,
		HardConstraints: config.HardConstraints{
			MinStaffPerShift: map[string]int{"D": minDay},
		},
	}
	config.ApplyDefaults(cfg)
	return cfg
}

func TestGenerateRota_Success(t *testing.T) {
	cfg := newTestConfig(2, "alice", "bob")
	cfg.Optimization = config.Optimization{Enabled: true, MaxIterations: 10, Seed: 5}

	result, err := GenerateRota(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, int64(5), result.Seed)
	assert.True(t, result.Result.Success)
	assert.Len(t, result.Result.Assignments, 2)
}

func TestGenerateRota_InsufficientStaffIsNotAnError(t *testing.T) {
	cfg := newTestConfig(3, "alice")

	result, err := GenerateRota(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, result.Result.Success)
	assert.Equal(t, 1, result.Result.Analysis.HardViolations)
	assert.NotEmpty(t, result.Result.Warnings)
}

func TestGenerateRota_RandomSeedWhenUnset(t *testing.T) {
	cfg := newTestConfig(1, "alice")

	result, err := GenerateRota(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	assert.NotZero(t, result.Seed)
}

func TestGenerateRota_InvalidOverride(t *testing.T) {
	cfg := newTestConfig(1, "alice")
	cfg.StaffingOverrides = []config.StaffingOverride{
		{RRule: "NOT_AN_RRULE", MinStaffPerShift: map[string]int{"D": 2}},
	}

	_, err := GenerateRota(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build scenario")
}

func TestGenerateRota_HonoursStaffingOverrides(t *testing.T) {
	cfg := newTestConfig(1, "alice", "bob", "carol")
	cfg.DateRange = config.DateRange{Start: "2025-01-10", End: "2025-01-11"}
	cfg.StaffingOverrides = []config.StaffingOverride{
		{RRule: "FREQ=WEEKLY;BYDAY=SA", MinStaffPerShift: map[string]int{"D": 3}},
	}

	result, err := GenerateRota(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	perDate := make(map[string]int)
	for _, a := range result.Result.Assignments {
		perDate[a.Date]++
	}
	assert.Equal(t, map[string]int{"2025-01-10": 1, "2025-01-11": 3}, perDate)
}

func TestAuditRota(t *testing.T) {
	cfg := newTestConfig(2, "alice", "bob")

	result, err := AuditRota(context.Background(), cfg, []model.Assignment{
		{StaffID: "alice", ShiftType: model.ShiftDay, Date: "2025-01-06"},
	}, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, result.Analysis.HardViolations, 1)
	assert.Equal(t, model.ViolationMinStaffing, result.Analysis.HardViolations[0].Type)
	assert.Equal(t, "add 1 more staff", result.Analysis.HardViolations[0].Suggestion)
}

func TestAuditRotas_PreservesOrder(t *testing.T) {
	cfg := newTestConfig(2, "alice", "bob")

	valid := []model.Assignment{
		{StaffID: "alice", ShiftType: model.ShiftDay, Date: "2025-01-06"},
		{StaffID: "bob", ShiftType: model.ShiftDay, Date: "2025-01-06"},
	}
	short := valid[:1]

	var rosters []RosterInput
	for i := 0; i < 10; i++ {
		if i%2 == 0 {
			rosters = append(rosters, RosterInput{Name: "valid", Assignments: valid})
		} else {
			rosters = append(rosters, RosterInput{Name: "short", Assignments: short})
		}
	}

	results, err := AuditRotas(context.Background(), cfg, rosters, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, results, 10)

	for i, r := range results {
		assert.Equal(t, rosters[i].Name, r.Name)
		assert.Equal(t, r.Name == "valid", r.Analysis.IsValid())
	}
}

func TestAuditRotas_CancelledContext(t *testing.T) {
	cfg := newTestConfig(1, "alice")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := AuditRotas(ctx, cfg, []RosterInput{{Name: "roster"}}, zap.NewNop())
	assert.ErrorIs(t, err, context.Canceled)
}
