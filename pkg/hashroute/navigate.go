package hashroute

import "strings"

// NavigateOptions configures navigation behavior.
type NavigateOptions struct {
	// Replace replaces the current history entry instead of pushing.
	Replace bool

	// Params are query parameters appended to the path with BuildQuery.
	Params map[string]any
}

// NavigateOption is a functional option for Navigate.
type NavigateOption func(*NavigateOptions)

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *NavigateOptions) {
		o.Replace = true
	}
}

// WithParams appends query parameters to the navigation path.
// Empty values are dropped, as in BuildQuery.
func WithParams(params map[string]any) NavigateOption {
	return func(o *NavigateOptions) {
		o.Params = params
	}
}

// Navigate updates the fragment to path. It does not call any handler;
// dispatch happens when the Location delivers the change notification.
func (r *Router) Navigate(path string, opts ...NavigateOption) {
	var options NavigateOptions
	for _, opt := range opts {
		opt(&options)
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(options.Params) > 0 {
		if q := BuildQuery(options.Params); q != "" {
			if strings.Contains(path, "?") {
				path += "&" + q[1:]
			} else {
				path += q
			}
		}
	}

	r.logger.Debug("navigate", "path", path, "replace", options.Replace)
	r.loc.SetHash("#"+path, options.Replace)
}

// Back navigates back in history.
func (r *Router) Back() {
	r.loc.Back()
}

// Forward navigates forward in history.
func (r *Router) Forward() {
	r.loc.Forward()
}
