// Package devserver serves a built marquee bundle during development.
//
// The server is a chi router with four mounts:
//
//	/api/*             reverse proxy to the configured backend
//	/metrics           Prometheus metrics for the dev server itself
//	/_marquee/reload   live-reload WebSocket
//	/*                 files from the dist directory, index.html fallback
//
// Since the application routes on the URL fragment, every unknown path
// serves index.html and the router takes over in the browser. A polling
// Watcher over the dist directory tells connected browsers to reload
// whenever the bundle is rebuilt.
package devserver
