package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render an analysis reply read from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	renderer, err := newRenderer()
	if err != nil {
		return err
	}

	return writeResponse(cmd.OutOrStdout(), renderer.Render(string(text)))
}
