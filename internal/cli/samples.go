package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spacesedan/sentiview/internal/analysis"
)

func init() {
	RootCmd.AddCommand(samplesCmd)
}

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Render every canned agent reply",
	Args:  cobra.NoArgs,
	RunE:  runSamples,
}

func runSamples(cmd *cobra.Command, _ []string) error {
	renderer, err := newRenderer()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, sample := range analysis.Samples() {
		if format == formatTerm {
			fmt.Fprintf(out, "── sample %d ──\n", i+1)
		}
		if err := writeResponse(out, renderer.Render(sample)); err != nil {
			return err
		}
	}
	return nil
}
