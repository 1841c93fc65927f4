package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spacesedan/sentiview/config"
	"github.com/spacesedan/sentiview/internal/logging"
	"github.com/spacesedan/sentiview/internal/present"
	"github.com/spacesedan/sentiview/internal/render"
)

const (
	formatTerm = "term"
	formatHTML = "html"
	formatJSON = "json"
)

var (
	presetName string
	stylesPath string
	format     string
	theme      string
	width      int
	verbose    bool

	appConfig config.AppConfig
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:               "sentiview [command] [flags]",
	Short:             "Render feedback analysis replies as sentiment-styled cards",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVar(&presetName, "preset", "", "Rule preset: "+strings.Join(render.PresetNames(), " or ")+" (default from SENTIVIEW_PRESET)")
	flags.StringVar(&stylesPath, "styles", "", "TOML file overriding sentiment palettes (default from SENTIVIEW_STYLES)")
	flags.StringVarP(&format, "format", "f", formatTerm, "Output format: term, html or json")
	flags.StringVar(&theme, "theme", "dark", "Terminal markdown theme: dark, light or notty")
	flags.IntVar(&width, "width", present.DefaultWidth, "Terminal card width")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with ctx. It is called by main.main().
func Execute(ctx context.Context) {
	if err := RootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	config.LoadEnv(config.AppEnv())
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := logging.ParseLevel(cfg.LogLevel)
	if verbose {
		level = slog.LevelDebug
	}
	logging.InitLoggerTo(cmd.ErrOrStderr(), level)

	appConfig = cfg
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// newRenderer builds a renderer from the flags, falling back to the
// environment configuration.
func newRenderer() (*render.Renderer, error) {
	name := presetName
	if name == "" {
		name = appConfig.Preset
	}
	path := stylesPath
	if path == "" {
		path = appConfig.StylesPath
	}
	return render.Configure(name, path)
}

func writeResponse(w io.Writer, resp render.Response) error {
	switch format {
	case formatTerm, "":
		out, err := present.Terminal(resp, present.TerminalOptions{Width: width, Style: theme})
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, out)
		return err
	case formatHTML:
		_, err := fmt.Fprintln(w, present.HTML(resp))
		return err
	case formatJSON:
		data, err := present.JSON(resp)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	return fmt.Errorf("unknown format %q (want term, html or json)", format)
}

// readInput reads the file named by args[0], or stdin when there is no
// argument or it is "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return data, nil
	}
	return io.ReadAll(cmd.InOrStdin())
}
