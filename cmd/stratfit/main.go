// Command stratfit is the CLI entry point for the StratFit-Intelligence
// strategic scoring engine.
package main

import (
	"os"

	appstrategy "github.com/turtacn/StratFit-Intelligence/internal/application/strategy"
	"github.com/turtacn/StratFit-Intelligence/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
	appstrategy.EngineVersion = version
}

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
