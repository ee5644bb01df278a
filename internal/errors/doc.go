// Package errors provides structured, actionable errors for the marquee CLI.
//
// Each error carries a short code (e.g., "M101") that maps to a category,
// a one-line message and a longer explanation:
//
//	err := errors.New("M101").
//	    Wrap(ioErr).
//	    WithSuggestion("Run marquee from the project root")
//
//	fmt.Fprintln(os.Stderr, err.Format())
//
// Categories:
//   - config: marquee.json / marquee.yaml problems
//   - cli: bad flags or arguments
//   - api: backend request failures surfaced to the terminal
//   - publish: bundle upload failures
//   - server: dev server startup failures
package errors
