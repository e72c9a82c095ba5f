package cli

import (
	"github.com/spf13/cobra"

	appstrategy "github.com/turtacn/StratFit-Intelligence/internal/application/strategy"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	Projected []float64
	Observed  []float64
}

// NewValidateCmd creates the validate command, which scores a projected
// series against observed outcomes.
func NewValidateCmd() *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Compare projected scores against observed outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			metrics, err := cliCtx.Service.Validate(cmd.Context(), &appstrategy.ValidateRequest{
				Projected: opts.Projected,
				Observed:  opts.Observed,
			})
			if err != nil {
				return err
			}
			return PrintResult(cmd, metrics)
		},
	}

	cmd.Flags().Float64SliceVar(&opts.Projected, "projected", nil, "projected score series (comma separated)")
	cmd.Flags().Float64SliceVar(&opts.Observed, "observed", nil, "observed outcome series (comma separated)")
	_ = cmd.MarkFlagRequired("projected")
	_ = cmd.MarkFlagRequired("observed")
	return cmd
}
