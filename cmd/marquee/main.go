package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/vango-dev/marquee/internal/config"
	"github.com/vango-dev/marquee/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌┬┐┌─┐┬─┐┌─┐ ┬ ┬┌─┐┌─┐
  │││├─┤├┬┘│─┼┐│ │├┤ ├┤
  ┴ ┴┴ ┴┴└─└─┘└└─┘└─┘└─┘
`

// globalFlags are shared by every command.
type globalFlags struct {
	dir      string
	logLevel string
	noColor  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "marquee",
		Short: "Develop and publish the marquee ticket listing app",
		Long: `marquee is a hash-routed single-page app for theatrical ticket listings.

The CLI serves a built bundle with live reload, inspects the app's
route table, and publishes the bundle to S3.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.noColor {
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.dir, "dir", "C", ".", "Project directory containing marquee.json or marquee.yaml")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides log.level")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		serveCmd(flags),
		routesCmd(),
		resolveCmd(),
		publishCmd(flags),
		versionCmd(),
	)
	return rootCmd
}

// load reads the project config and builds the logger it asks for.
func (f *globalFlags) load(stderr io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(f.dir)
	if err != nil {
		return nil, nil, err
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// printError prints coded errors with their detail and suggestion, and
// anything else on one line.
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errors.FormatError(err))
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", errors.SuccessMark(), fmt.Sprintf(format, args...))
}

// info prints an indented info line.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
