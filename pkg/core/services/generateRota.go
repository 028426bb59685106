package services

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/KNOCKYONG/shifteasy-sub001/internal/config"
	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/allocator"
)

// RotaResult represents the result of generating a rota
type RotaResult struct {
	// RunID identifies this generation run in logs
	RunID  string
	Seed   int64
	Result allocator.GenerationResult
}

// GenerateRota builds a roster for the scenario described by cfg.
// Infeasible scenarios are not errors: shortfalls are reported in the result's warnings and analysis.
// An error is returned only when the configuration cannot be converted into a scenario.
func GenerateRota(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*RotaResult, error) {
	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID))

	logger.Debug("Converting config to scenario")
	scenario, err := cfg.ToModel()
	if err != nil {
		return nil, fmt.Errorf("failed to build scenario: %w", err)
	}

	logger.Debug("Scenario built",
		zap.String("start", scenario.DateRange.Start),
		zap.String("end", scenario.DateRange.End),
		zap.Int("staff_count", len(scenario.Staff)),
		zap.Int("preference_count", len(scenario.Preferences)),
		zap.Int("override_dates", len(scenario.Hard.DateMinimums)))

	seed := scenario.Optimization.Seed
	if seed == 0 {
		seed = rand.Int63()
		logger.Debug("No seed configured, using random seed", zap.Int64("seed", seed))
	}

	generator := allocator.NewScheduleGenerator(logger, rand.New(rand.NewSource(seed)))
	result := generator.Generate(ctx, allocator.GenerationConfig{
		DateRange:   scenario.DateRange,
		Staff:       scenario.Staff,
		Shifts:      scenario.Shifts,
		Hard:        scenario.Hard,
		Soft:        scenario.Soft,
		Preferences: scenario.Preferences,
		Optimization: allocator.OptimizationConfig{
			Enabled:       scenario.Optimization.Enabled,
			MaxIterations: scenario.Optimization.MaxIterations,
		},
	})

	logger.Info("Rota generated",
		zap.Int("assignments", len(result.Assignments)),
		zap.Int("hard_violations", result.Analysis.HardViolations),
		zap.Float64("score", result.Analysis.Score),
		zap.Int("warnings", len(result.Warnings)),
		zap.Bool("success", result.Success))

	for _, warning := range result.Warnings {
		logger.Warn("Generation warning", zap.String("warning", warning))
	}

	return &RotaResult{
		RunID:  runID,
		Seed:   seed,
		Result: result,
	}, nil
}
