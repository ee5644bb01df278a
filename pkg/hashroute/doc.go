// Package hashroute implements fragment-based client routing for marquee.
//
// The router provides:
//   - Ordered route registration with literal and :param segments
//   - Query parsing and serialization for the "?..." suffix of the fragment
//   - Push/Replace navigation through a pluggable Location
//   - Fallback redirect for unmatched fragments
//
// # Fragment Format
//
// The fragment is the sole routing signal:
//
//	#/segment1/segment2?key=value&key2=value2
//
// The leading "#" is stripped before matching. An absent fragment is "/".
//
// # Matching
//
// Routes are tried in registration order and the first match wins. A
// generic route registered before a literal one shadows it:
//
//	r.On("/user/:id", showUser)
//	r.On("/user/settings", settings) // never reached for /user/settings
//
// Segment counts must be equal; there are no catch-all or optional segments.
//
// # Usage
//
//	loc := hashroute.NewMemoryLocation("")
//	r := hashroute.New(loc)
//	r.On("/date", func(params hashroute.Params, query hashroute.Query) {
//	    // query["d"] == "2025-06-01"
//	})
//	stop := r.Start()
//	defer stop()
//
//	r.Navigate("/date?d=2025-06-01")
//	loc.Dispatch()
//
// Handlers are fire-and-forget. The router neither awaits nor orders work a
// handler starts on another goroutine, and it does not recover handler panics.
package hashroute
