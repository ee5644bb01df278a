package hashroute

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// ParseQuery parses "a=1&b=2" into a Query.
//
// Pairs split on the first "="; a key without "=" gets "". Empty keys are
// skipped and malformed input degrades to partial bindings.
func ParseQuery(raw string) Query {
	query := make(Query)
	if raw == "" {
		return query
	}

	for _, pair := range strings.Split(raw, "&") {
		key, value, hasValue := strings.Cut(pair, "=")
		if key == "" {
			continue
		}
		if hasValue {
			value = decodeComponent(value)
		}
		query[decodeComponent(key)] = value
	}
	return query
}

// BuildQuery serializes params into "?k=v&..." with keys in sorted order.
//
// Nil values, nil pointers and empty strings are omitted, so a round trip
// through ParseQuery drops those keys. Returns "" when nothing remains.
func BuildQuery(params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if omitValue(v) {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(encodeComponent(k))
		b.WriteByte('=')
		b.WriteString(encodeComponent(formatValue(params[k])))
	}
	return b.String()
}

func omitValue(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return true
		}
		return omitValue(rv.Elem().Interface())
	}
	return false
}

func formatValue(v any) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		return formatValue(rv.Elem().Interface())
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", v)
}
