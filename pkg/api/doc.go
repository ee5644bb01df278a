// Package api is the client for the marquee ticket backend.
//
// Every method is a thin wrapper over one REST endpoint and returns the
// decoded JSON body. Requests carry an X-Request-ID and an OpenTelemetry
// client span; non-2xx responses become *Error.
//
//	c := api.New("https://tickets.example.com")
//	events, err := c.EventsByDate(ctx, "2025-06-01")
package api
