package cli

import (
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect engine configuration",
	}
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

// newConfigShowCmd prints the effective configuration after defaults, file,
// and environment overrides are applied.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			return printJSON(cmd, cliCtx.Config)
		},
	}
}
