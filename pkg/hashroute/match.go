package hashroute

import (
	"net/url"
	"strings"
)

// MatchPath compares pattern and path segment by segment.
// It returns nil on any mismatch, otherwise the (possibly empty) bindings.
func MatchPath(pattern, path string) Params {
	patternSegs := splitPath(pattern)
	pathSegs := splitPath(path)
	if len(patternSegs) != len(pathSegs) {
		return nil
	}

	params := make(Params)
	for i, seg := range patternSegs {
		if strings.HasPrefix(seg, ":") {
			params[seg[1:]] = decodeComponent(pathSegs[i])
			continue
		}
		if seg != pathSegs[i] {
			return nil
		}
	}
	return params
}

// splitPath splits on "/" and drops empty segments, so leading, trailing
// and doubled slashes are tolerated.
func splitPath(path string) []string {
	if path == "" {
		return nil
	}

	segments := make([]string, 0, strings.Count(path, "/")+1)
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '/' {
			if i > start {
				segments = append(segments, path[start:i])
			}
			start = i + 1
		}
	}
	return segments
}

// splitPathAndQuery splits on the first "?". The query has no leading "?".
func splitPathAndQuery(input string) (path, query string) {
	path, query, _ = strings.Cut(input, "?")
	return path, query
}

// decodeComponent decodes with decodeURIComponent semantics: "+" stays a
// literal plus. Text with a malformed escape is returned as-is.
func decodeComponent(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// encodeComponent encodes with encodeURIComponent semantics so that the
// output decodes back through decodeComponent.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
