package main

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vango-dev/marquee/internal/app"
	"github.com/vango-dev/marquee/internal/errors"
	"github.com/vango-dev/marquee/pkg/hashroute"
)

// appRouter builds a router carrying the app's route table without a
// backend. Handlers are registered but never invoked.
func appRouter() *hashroute.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := hashroute.New(hashroute.NewMemoryLocation(""), hashroute.WithLogger(logger))
	app.New(app.Config{
		Router: r,
		Mount:  app.MountFunc(func(string) {}),
		Logger: logger,
	})
	return r
}

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the app's routes in match order",
		Long: `List the app's hash routes in the order they are matched.

The first route whose pattern matches a fragment wins, so a literal
route listed before a parameterized one with the same shape shadows it.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for i, route := range appRouter().Routes() {
				fmt.Fprintf(out, "%2d  %s\n", i+1, route.Pattern)
			}
		},
	}
}

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <fragment>",
		Short: "Show which route a URL fragment resolves to",
		Long: `Resolve a URL fragment against the app's route table and print the
matched pattern with its decoded params and query.

Examples:
  marquee resolve '#/date/2025-06-01'
  marquee resolve '/search?q=Les%20Mis'
  marquee resolve 'cocast?names=A,B'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd.OutOrStdout(), args[0])
		},
	}
}

func runResolve(out io.Writer, fragment string) error {
	path := strings.TrimPrefix(fragment, "#")
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	m := appRouter().MatchRoute(path)
	if m.Route == nil {
		return errors.New("M120").
			WithDetail(fmt.Sprintf("no route matches %q; the app would redirect to %s", path, hashroute.DefaultFallback)).
			WithSuggestion("Run 'marquee routes' to list the registered patterns")
	}

	fmt.Fprintf(out, "route:  %s\n", m.Route.Pattern)
	printPairs(out, "params", m.Params)
	printPairs(out, "query", m.Query)
	return nil
}

func printPairs(out io.Writer, label string, pairs map[string]string) {
	if len(pairs) == 0 {
		fmt.Fprintf(out, "%s: -\n", label)
		return
	}
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(out, "%s:\n", label)
	for _, k := range keys {
		fmt.Fprintf(out, "  %s = %q\n", k, pairs[k])
	}
}
