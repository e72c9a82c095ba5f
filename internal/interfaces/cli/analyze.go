package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	appstrategy "github.com/turtacn/StratFit-Intelligence/internal/application/strategy"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/frameworkops"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/integrator"
	"github.com/turtacn/StratFit-Intelligence/pkg/types/strategy"
)

// AnalyzeOptions holds flags for the analyze command.
type AnalyzeOptions struct {
	File         string
	ExtendedFile string
}

// NewAnalyzeCmd creates the analyze command.  The narrative is read from a
// file, from stdin with "-", or from the positional argument.
func NewAnalyzeCmd() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [narrative]",
		Short: "Score a strategy narrative",
		Long:  "Analyze mines the narrative into framework factors, scores them, and\nreports the integrated strategic fit score with sensitivity analysis\nand prioritized recommendations.",
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
			extended, err := readExtended(opts.ExtendedFile)
			if err != nil {
				return err
			}

			result, err := cliCtx.Service.Analyze(cmd.Context(), &appstrategy.AnalyzeRequest{
				Narrative: narrative,
				Extended:  extended,
			})
			if err != nil {
				return err
			}
			return PrintResult(cmd, newAnalysisView(result))
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "read the narrative from a file (\"-\" for stdin)")
	cmd.Flags().StringVar(&opts.ExtendedFile, "extended", "", "JSON file with BCG, Ansoff, and Blue Ocean inputs")
	return cmd
}

// readNarrative resolves the narrative from flag, stdin, or argument.
func readNarrative(cmd *cobra.Command, opts *AnalyzeOptions, args []string) (string, error) {
	switch {
	case opts.File == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read narrative from stdin: %w", err)
		}
		return string(data), nil
	case opts.File != "":
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return "", fmt.Errorf("read narrative file: %w", err)
		}
		return string(data), nil
	case len(args) == 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("a narrative is required: pass it as an argument or via --file")
	}
}

// readExtended loads optional extended framework inputs from a JSON file.
func readExtended(path string) (*frameworkops.ExtendedInputs, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read extended inputs: %w", err)
	}
	var in frameworkops.ExtendedInputs
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse extended inputs: %w", err)
	}
	return &in, nil
}

// analysisView wraps the result for table rendering without changing its
// JSON shape.
type analysisView struct {
	*strategy.AnalysisResult
}

func newAnalysisView(r *strategy.AnalysisResult) *analysisView {
	return &analysisView{AnalysisResult: r}
}

func (v *analysisView) TableHeaders() []string {
	return []string{"METRIC", "VALUE"}
}

func (v *analysisView) TableRows() [][]string {
	rows := [][]string{
		{"integrated score", fmt.Sprintf("%.4f", v.IntegratedScore)},
		{"environmental", fmt.Sprintf("%.4f", v.Scores.Environmental)},
		{"competitive", fmt.Sprintf("%.4f", v.Scores.Competitive)},
		{"capability", fmt.Sprintf("%.4f", v.Scores.Capability)},
		{"coupling effect", fmt.Sprintf("%.4f", v.CouplingEffect)},
	}
	for _, fw := range integrator.SortedExtended(v.Scores.Extended) {
		rows = append(rows, []string{string(fw), fmt.Sprintf("%.4f", v.Scores.Extended[fw])})
	}
	if v.MonteCarlo != nil {
		rows = append(rows, []string{
			"confidence band",
			fmt.Sprintf("[%.4f, %.4f]", v.MonteCarlo.Lower, v.MonteCarlo.Upper),
		})
	}
	for i, rec := range v.Recommendations {
		rows = append(rows, []string{
			fmt.Sprintf("recommendation %d", i+1),
			fmt.Sprintf("%s (priority %.2f)", rec.Title, rec.Priority()),
		})
	}
	if v.Degraded {
		rows = append(rows, []string{"degraded", v.DegradedReason})
	}
	return rows
}

func (v *analysisView) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Integrated strategic fit score: %.4f  (range %s)\n", v.IntegratedScore, v.ScoreRange)
	fmt.Fprintf(&sb, "Frameworks: environmental %.4f, competitive %.4f, capability %.4f\n",
		v.Scores.Environmental, v.Scores.Competitive, v.Scores.Capability)
	for _, fw := range integrator.SortedExtended(v.Scores.Extended) {
		fmt.Fprintf(&sb, "Extended %s score: %.4f\n", fw, v.Scores.Extended[fw])
	}
	if v.MonteCarlo != nil {
		fmt.Fprintf(&sb, "90%% confidence band: [%.4f, %.4f] over %d trials\n",
			v.MonteCarlo.Lower, v.MonteCarlo.Upper, v.MonteCarlo.Trials)
	}
	for i, rec := range v.Recommendations {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, rec.Title)
	}
	if v.Degraded {
		fmt.Fprintf(&sb, "Warning: analysis degraded (%s)\n", v.DegradedReason)
	}
	return strings.TrimRight(sb.String(), "\n")
}
