package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KNOCKYONG/shifteasy-sub001/internal/config"
	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/constraints"
	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/model"
)

// maxConcurrentAudits bounds the number of rosters analyzed at once
const maxConcurrentAudits = 4

// RosterInput is a named assignment set to audit
type RosterInput struct {
	Name        string
	Assignments []model.Assignment
}

// AuditResult is the analysis of one roster
type AuditResult struct {
	Name     string
	Analysis *model.ScheduleAnalysis
}

// AuditRota analyzes a single assignment set, generated or hand-edited, against the scenario's rules
func AuditRota(ctx context.Context, cfg *config.Config, assignments []model.Assignment, logger *zap.Logger) (*AuditResult, error) {
	results, err := AuditRotas(ctx, cfg, []RosterInput{{Name: "roster", Assignments: assignments}}, logger)
	if err != nil {
		return nil, err
	}
	return &results[0], nil
}

// AuditRotas analyzes several assignment sets concurrently with one shared engine.
// Results are returned in input order.
func AuditRotas(ctx context.Context, cfg *config.Config, rosters []RosterInput, logger *zap.Logger) ([]AuditResult, error) {
	scenario, err := cfg.ToModel()
	if err != nil {
		return nil, fmt.Errorf("failed to build scenario: %w", err)
	}

	engine := constraints.NewEngine(constraints.Config{
		Hard:        scenario.Hard,
		Soft:        scenario.Soft,
		Staff:       scenario.Staff,
		Shifts:      scenario.Shifts,
		Preferences: scenario.Preferences,
	})

	logger.Debug("Auditing rosters", zap.Int("count", len(rosters)))

	results := make([]AuditResult, len(rosters))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentAudits)

	for i, roster := range rosters {
		i, roster := i, roster
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("failed to audit roster %q: %w", roster.Name, err)
			}

			analysis := engine.Analyze(roster.Assignments)
			results[i] = AuditResult{Name: roster.Name, Analysis: analysis}

			logger.Debug("Roster audited",
				zap.String("name", roster.Name),
				zap.Int("assignments", len(roster.Assignments)),
				zap.Int("hard_violations", len(analysis.HardViolations)),
				zap.Float64("score", analysis.Metrics.OverallScore))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
