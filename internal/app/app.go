// Package app wires the router, API client, store and views into the
// marquee single-page application.
package app

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/vango-dev/marquee/internal/views"
	"github.com/vango-dev/marquee/pkg/api"
	"github.com/vango-dev/marquee/pkg/hashroute"
	"github.com/vango-dev/marquee/pkg/store"
)

// Mount receives rendered HTML for the application root.
type Mount interface {
	Render(html string)
}

// MountFunc adapts a function to Mount.
type MountFunc func(html string)

// Render implements Mount.
func (f MountFunc) Render(html string) { f(html) }

// Backend is the subset of the API client the views use.
type Backend interface {
	SearchEvents(ctx context.Context, q string) ([]api.Event, error)
	EventsByDate(ctx context.Context, date string) ([]api.Event, error)
	Event(ctx context.Context, id string) (*api.Event, error)
	CoCast(ctx context.Context, names []string) (*api.CoCastResult, error)
	Heatmap(ctx context.Context, year, month int) ([]api.HeatmapDay, error)
	Me(ctx context.Context) (*api.User, error)
	Subscriptions(ctx context.Context) ([]api.Subscription, error)
	Subscribe(ctx context.Context, eventID string) (*api.Subscription, error)
	Unsubscribe(ctx context.Context, eventID string) error
	StartRefresh(ctx context.Context, eventID string) (*api.Task, error)
	WaitTask(ctx context.Context, id string, interval time.Duration, onUpdate func(*api.Task)) (*api.Task, error)
}

// Config configures an App.
type Config struct {
	Router   *hashroute.Router
	Backend  Backend
	Store    *store.Store
	Views    *views.Renderer
	Mount    Mount
	Logger   *slog.Logger
	Now      func() time.Time
	Poll     time.Duration
	Debounce time.Duration
}

// App holds the view controllers.
type App struct {
	router   *hashroute.Router
	backend  Backend
	store    *store.Store
	views    *views.Renderer
	mount    Mount
	logger   *slog.Logger
	now      func() time.Time
	poll     time.Duration
	debounce time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	searchMu    sync.Mutex
	searchTimer *time.Timer

	listMu sync.Mutex
	list   *listView
}

// listView remembers the list on screen so filter changes can re-render it
// from the cache.
type listView struct {
	path    string
	key     string
	heading string
	query   string
}

// New creates the app and registers its routes on cfg.Router.
func New(cfg Config) *App {
	a := &App{
		router:   cfg.Router,
		backend:  cfg.Backend,
		store:    cfg.Store,
		views:    cfg.Views,
		mount:    cfg.Mount,
		logger:   cfg.Logger,
		now:      cfg.Now,
		poll:     cfg.Poll,
		debounce: cfg.Debounce,
	}
	if a.logger == nil {
		a.logger = slog.Default().With("component", "app")
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.poll <= 0 {
		a.poll = 2 * time.Second
	}
	if a.debounce <= 0 {
		a.debounce = 300 * time.Millisecond
	}
	if a.store == nil {
		a.store = store.New(nil)
	}
	if a.views == nil {
		a.views = views.MustNew()
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.registerRoutes()
	return a
}

// Start begins routing and dispatches the current fragment.
func (a *App) Start() (stop func()) {
	stopRouter := a.router.Start()
	return func() {
		stopRouter()
		a.Close()
	}
}

// Close cancels in-flight fetches and waits for them to return.
func (a *App) Close() {
	a.cancel()
	a.searchMu.Lock()
	if a.searchTimer != nil {
		a.searchTimer.Stop()
	}
	a.searchMu.Unlock()
	a.wg.Wait()
}

// Wait blocks until in-flight fetches finish.
func (a *App) Wait() {
	a.wg.Wait()
}

// Store returns the app's state store.
func (a *App) Store() *store.Store {
	return a.store
}

// RouteTable returns the registered patterns in match order.
func (a *App) RouteTable() []string {
	routes := a.router.Routes()
	patterns := make([]string, len(routes))
	for i, r := range routes {
		patterns[i] = r.Pattern
	}
	return patterns
}

// show renders html unconditionally.
func (a *App) show(html string, err error) {
	if err != nil {
		a.logger.Error("render failed", "error", err)
		return
	}
	a.mount.Render(html)
}

// showIf renders html only while the fragment is still path. Fetches are
// not cancelled on navigation, so a slow response must not paint over a
// newer view.
func (a *App) showIf(path string, html string, err error) {
	if current := a.router.CurrentPath(); current != path {
		a.logger.Debug("dropping stale render", "path", path, "current", current)
		return
	}
	a.show(html, err)
}

func (a *App) showError(path string, err error) {
	a.logger.Warn("fetch failed", "path", path, "error", err)
	html, rerr := a.views.Error(err)
	a.showIf(path, html, rerr)
}

// fetch runs fn on its own goroutine with the app context.
func (a *App) fetch(fn func(ctx context.Context)) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		fn(a.ctx)
	}()
}

func splitNames(raw string) []string {
	var names []string
	for _, n := range strings.Split(raw, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}
