package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	appstrategy "github.com/turtacn/StratFit-Intelligence/internal/application/strategy"
	"github.com/turtacn/StratFit-Intelligence/pkg/types/strategy"
)

// NewOptimizeCmd creates the optimize command.
func NewOptimizeCmd() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "optimize [narrative]",
		Short: "Find the force-strength assignment that maximizes the score",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			narrative, err := readNarrative(cmd, opts, args)
			if err != nil {
				return err
			}

			result, err := cliCtx.Service.Optimize(cmd.Context(), &appstrategy.AnalyzeRequest{Narrative: narrative})
			if err != nil {
				return err
			}
			return PrintResult(cmd, newOptimizationView(result))
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "read the narrative from a file (\"-\" for stdin)")
	return cmd
}

type optimizationView struct {
	*strategy.OptimizationResult
}

func newOptimizationView(r *strategy.OptimizationResult) *optimizationView {
	return &optimizationView{OptimizationResult: r}
}

func (v *optimizationView) TableHeaders() []string {
	return []string{"FORCE", "OPTIMAL STRENGTH"}
}

func (v *optimizationView) TableRows() [][]string {
	forces := make([]string, 0, len(v.OptimalStrengths))
	for f := range v.OptimalStrengths {
		forces = append(forces, f)
	}
	sort.Strings(forces)

	rows := make([][]string, 0, len(forces)+1)
	for _, f := range forces {
		rows = append(rows, []string{f, fmt.Sprintf("%.2f", v.OptimalStrengths[f])})
	}
	rows = append(rows, []string{"achieved score", fmt.Sprintf("%.4f", v.AchievedScore)})
	return rows
}
