package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KNOCKYONG/shifteasy-sub001/internal/config"
	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/services"
)

// GenerateCmd creates the generate command
func GenerateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a roster for the configured date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			showReport, _ := cmd.Flags().GetBool("report")

			app.Logger.Debug("generate command",
				zap.String("out", out),
				zap.Bool("report", showReport))

			result, err := services.GenerateRota(app.Ctx, app.Cfg, app.Logger)
			if err != nil {
				return err
			}
			generation := result.Result

			// Display results
			if generation.Success {
				fmt.Printf("\n✓ Roster generated with no hard violations\n\n")
			} else {
				fmt.Printf("\n⚠️  Roster generated with %d hard violations\n\n", generation.Analysis.HardViolations)
			}

			fmt.Printf("Run ID:      %s\n", result.RunID)
			fmt.Printf("Seed:        %d\n", result.Seed)
			fmt.Printf("Assignments: %d\n", len(generation.Assignments))
			fmt.Printf("Score:       %.1f (soft %.1f)\n", generation.Analysis.Score, generation.Analysis.SoftScore)
			fmt.Printf("Iterations:  %d\n", generation.Analysis.Iterations)
			fmt.Printf("Time:        %dms\n\n", generation.Analysis.GenerationTimeMs)

			fmt.Print(renderRoster(generation.Assignments))

			if len(generation.Warnings) > 0 {
				fmt.Printf("\nWarnings (%d):\n", len(generation.Warnings))
				for _, w := range generation.Warnings {
					fmt.Printf("  - %s\n", w)
				}
			}

			if len(generation.UnstaffedDates) > 0 {
				fmt.Printf("\n⚠️  No staff assigned on %d dates: %s\n",
					len(generation.UnstaffedDates), strings.Join(generation.UnstaffedDates, ", "))
			}

			if showReport && generation.Report != nil {
				fmt.Printf("\n%s", generation.Report.FormatReport())
			}

			if out != "" {
				if err := config.WriteAssignments(out, generation.Assignments); err != nil {
					return err
				}
				fmt.Printf("\nRoster written to %s\n", out)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringP("out", "o", "", "Write the generated assignments to this file")
	cmd.Flags().Bool("report", false, "Print the full analysis report")

	return cmd
}
