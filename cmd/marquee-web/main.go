//go:build js && wasm

// Command marquee-web is the browser build of marquee.
//
//	GOOS=js GOARCH=wasm go build -o dist/marquee.wasm ./cmd/marquee-web
package main

import (
	"log/slog"
	"os"
	"syscall/js"

	"github.com/vango-dev/marquee/internal/app"
	"github.com/vango-dev/marquee/internal/views"
	"github.com/vango-dev/marquee/pkg/api"
	"github.com/vango-dev/marquee/pkg/hashroute"
	"github.com/vango-dev/marquee/pkg/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	router := hashroute.New(hashroute.NewBrowserLocation(), hashroute.WithLogger(logger.With("component", "router")))
	mount := app.NewDOMMount("app")

	a := app.New(app.Config{
		Router:  router,
		Backend: api.New(origin(), api.WithLogger(logger.With("component", "api"))),
		Store:   store.New(store.NewLocalStorage()),
		Views:   views.MustNew(),
		Mount:   mount,
		Logger:  logger.With("component", "app"),
	})
	a.BindDOM(mount)
	a.Start()

	select {}
}

// origin returns the page origin; the backend is served from the same host.
func origin() string {
	return js.Global().Get("location").Get("origin").String()
}
