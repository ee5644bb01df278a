package hashroute

// Params are the decoded values bound to :name segments of a pattern.
type Params map[string]string

// Query holds the decoded key/value pairs of the fragment's query string.
// Repeated keys keep the last value.
type Query map[string]string

// Handler handles a matched navigation.
type Handler func(params Params, query Query)

// Route is a registered pattern and its handler.
type Route struct {
	// Pattern is the path pattern (e.g., "/event/:id")
	Pattern string

	// Handler is invoked when Pattern matches
	Handler Handler
}

// Match is the result of matching a fragment path against the route table.
type Match struct {
	// Route is the first matching route, or nil when nothing matched.
	Route *Route

	// Params are the extracted :name bindings (empty on no match).
	Params Params

	// Query is parsed even when no route matched.
	Query Query
}

// Current is the snapshot of the last successfully matched navigation.
type Current struct {
	Path   string
	Params Params
	Query  Query
}

// Location abstracts the browser fragment and its history.
type Location interface {
	// Hash returns the raw fragment including the leading "#", or "".
	Hash() string

	// SetHash updates the fragment. With replace set the current history
	// entry is overwritten instead of a new one being pushed.
	SetHash(hash string, replace bool)

	// Back navigates back in history.
	Back()

	// Forward navigates forward in history.
	Forward()

	// Listen registers fn for fragment-change notifications.
	Listen(fn func()) (stop func())
}
