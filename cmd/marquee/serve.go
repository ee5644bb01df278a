package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vango-dev/marquee/internal/devserver"
	"github.com/vango-dev/marquee/internal/errors"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port     int
		host     string
		noReload bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the built bundle for development",
		Long: `Serve build.dist with live reload and an API proxy.

Every path that is not a file serves index.html, /api/* is proxied to
api.baseURL, and /metrics exposes request metrics. Browsers reload when
the bundle changes.

Examples:
  marquee serve
  marquee serve --port=8080
  MARQUEE_API_URL=https://api.example.com marquee serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := flags.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Dev.Port = port
			}
			if host != "" {
				cfg.Dev.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			srv, err := devserver.New(devserver.Options{
				Dist:         cfg.DistPath(),
				APIBaseURL:   cfg.API.BaseURL,
				Reload:       cfg.ReloadEnabled() && !noReload,
				PollInterval: cfg.PollInterval(),
				Logger:       logger,
			})
			if err != nil {
				return errors.New("M180").Wrap(err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			fmt.Fprint(out, banner)
			success(out, "Serving %s", cfg.DistPath())
			info(out, "Local:  http://%s", cfg.DevAddress())
			info(out, "API:    %s", cfg.API.BaseURL)
			fmt.Fprintln(out)

			if err := srv.ListenAndServe(ctx, cfg.DevAddress()); err != nil {
				return errors.New("M180").Wrap(err)
			}
			fmt.Fprintln(out, "\n  Shutting down...")
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().BoolVar(&noReload, "no-reload", false, "Disable live reload")

	return cmd
}
