package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KNOCKYONG/shifteasy-sub001/internal/config"
	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/services"
)

// AnalyzeCmd creates the analyze command
func AnalyzeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <assignments_file> [assignments_file...]",
		Short: "Audit one or more rosters against the configured rules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("analyze command", zap.Strings("files", args))

			rosters := make([]services.RosterInput, 0, len(args))
			for _, path := range args {
				assignments, err := config.LoadAssignments(path)
				if err != nil {
					return fmt.Errorf("failed to load %s: %w", path, err)
				}
				rosters = append(rosters, services.RosterInput{
					Name:        filepath.Base(path),
					Assignments: assignments,
				})
			}

			results, err := services.AuditRotas(app.Ctx, app.Cfg, rosters, app.Logger)
			if err != nil {
				return err
			}

			invalid := 0
			for _, r := range results {
				fmt.Printf("\n=== %s ===\n", r.Name)
				fmt.Print(r.Analysis.FormatReport())
				if !r.Analysis.IsValid() {
					invalid++
				}
			}
			fmt.Println()

			if invalid > 0 {
				return fmt.Errorf("%d of %d rosters have hard constraint violations", invalid, len(results))
			}
			return nil
		},
	}
}
