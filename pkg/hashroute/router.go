package hashroute

import (
	"log/slog"
	"strings"
	"sync"
)

// DefaultFallback is where unmatched fragments are redirected.
const DefaultFallback = "/"

// Router matches the location fragment against registered routes and
// dispatches to their handlers.
type Router struct {
	loc      Location
	logger   *slog.Logger
	fallback string

	mu      sync.RWMutex
	routes  []*Route
	current *Current
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithFallback sets the path unmatched fragments are redirected to.
func WithFallback(path string) Option {
	return func(r *Router) {
		if path != "" {
			r.fallback = path
		}
	}
}

// New creates a router bound to loc.
func New(loc Location, opts ...Option) *Router {
	r := &Router{
		loc:      loc,
		logger:   slog.Default().With("component", "router"),
		fallback: DefaultFallback,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// On registers handler for pattern. Patterns are not checked for overlap;
// the earliest registration that matches a path wins.
func (r *Router) On(pattern string, handler Handler) {
	r.mu.Lock()
	r.routes = append(r.routes, &Route{Pattern: pattern, Handler: handler})
	r.mu.Unlock()
}

// Routes returns a copy of the route table in registration order.
func (r *Router) Routes() []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routes := make([]Route, len(r.routes))
	for i, route := range r.routes {
		routes[i] = *route
	}
	return routes
}

// Start subscribes the router to fragment changes and dispatches the
// current fragment once.
func (r *Router) Start() (stop func()) {
	stop = r.loc.Listen(r.HandleRoute)
	r.HandleRoute()
	return stop
}

// CurrentPath returns the fragment without its leading "#", or "/" when
// no fragment is set.
func (r *Router) CurrentPath() string {
	path := strings.TrimPrefix(r.loc.Hash(), "#")
	if path == "" {
		return "/"
	}
	return path
}

// Current returns the last matched navigation.
func (r *Router) Current() (Current, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current == nil {
		return Current{}, false
	}
	return *r.current, true
}

// HandleRoute dispatches the current fragment.
//
// On a match the snapshot is recorded and the handler called. Panics in
// the handler are not recovered. On no match the router logs a warning and
// replaces the location with the fallback path.
func (r *Router) HandleRoute() {
	path := r.CurrentPath()
	m := r.MatchRoute(path)
	if m.Route == nil {
		r.logger.Warn("no route matched", "path", path, "redirect", r.fallback)
		r.Navigate(r.fallback, WithReplace())
		return
	}

	r.mu.Lock()
	r.current = &Current{Path: path, Params: m.Params, Query: m.Query}
	r.mu.Unlock()

	r.logger.Debug("route matched", "path", path, "pattern", m.Route.Pattern)
	m.Route.Handler(m.Params, m.Query)
}

// MatchRoute resolves path (which may carry a "?query" suffix) against the
// route table in registration order.
func (r *Router) MatchRoute(path string) Match {
	pathname, rawQuery := splitPathAndQuery(path)
	query := ParseQuery(rawQuery)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, route := range r.routes {
		if params := MatchPath(route.Pattern, pathname); params != nil {
			return Match{Route: route, Params: params, Query: query}
		}
	}
	return Match{Params: Params{}, Query: query}
}

// Async wraps fn so each invocation runs on its own goroutine. The router
// returns immediately and gives no ordering between overlapping runs.
func Async(fn Handler) Handler {
	return func(params Params, query Query) {
		go fn(params, query)
	}
}
