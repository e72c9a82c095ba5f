package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	appstrategy "github.com/turtacn/StratFit-Intelligence/internal/application/strategy"
	"github.com/turtacn/StratFit-Intelligence/internal/config"
	"github.com/turtacn/StratFit-Intelligence/internal/infrastructure/monitoring/logging"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	Concurrency int
	ItemTimeout time.Duration
}

// NewBatchCmd creates the batch command, which analyzes several narrative
// files in one run.
func NewBatchCmd() *cobra.Command {
	opts := &BatchOptions{}

	cmd := &cobra.Command{
		Use:   "batch <file>...",
		Short: "Score several strategy narratives in one run",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			// Batch runs can outlive a calibration edit.  Watch the file so
			// the operator sees when results span two calibrations; the
			// running batch keeps the calibration it started with.
			if cliCtx.ConfigFile != "" {
				config.Watch(cliCtx.ConfigFile, func(*config.Config) {
					cliCtx.Logger.Warn("calibration file changed during batch run; changes apply from the next invocation",
						logging.String("config_file", cliCtx.ConfigFile),
					)
				})
			}

			reqs := make([]*appstrategy.AnalyzeRequest, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read narrative file %s: %w", path, err)
				}
				reqs = append(reqs, &appstrategy.AnalyzeRequest{Narrative: string(data)})
			}

			br, err := appstrategy.BatchAnalyze(cmd.Context(), cliCtx.Service, reqs,
				appstrategy.WithMaxConcurrency(opts.Concurrency),
				appstrategy.WithItemTimeout(opts.ItemTimeout),
			)
			if err != nil {
				return err
			}
			appstrategy.LogBatchOutcome(cliCtx.Logger, br)
			return PrintResult(cmd, br)
		},
	}

	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 0, "max narratives analyzed concurrently (default: CPU count)")
	cmd.Flags().DurationVar(&opts.ItemTimeout, "item-timeout", time.Minute, "per-narrative timeout")
	return cmd
}
