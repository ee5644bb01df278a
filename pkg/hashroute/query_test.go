package hashroute

import (
	"reflect"
	"testing"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Query
	}{
		{"empty", "", Query{}},
		{"simple", "a=1&b=2", Query{"a": "1", "b": "2"}},
		{"last key wins", "a=1&b=2&a=3", Query{"a": "3", "b": "2"}},
		{"missing equals", "flag&a=1", Query{"flag": "", "a": "1"}},
		{"split on first equals", "expr=a=b", Query{"expr": "a=b"}},
		{"stray ampersands", "&&a=1&", Query{"a": "1"}},
		{"empty key skipped", "=x&a=1", Query{"a": "1"}},
		{"decoded", "q=Les%20Mis%C3%A9rables&k%20y=v", Query{"q": "Les Misérables", "k y": "v"}},
		{"plus is literal", "q=a+b", Query{"q": "a+b"}},
		{"malformed escape", "q=%E0%A4%A", Query{"q": "%E0%A4%A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQuery(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseQuery(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestBuildQuery(t *testing.T) {
	var nilPtr *string
	city := "Tokyo"

	tests := []struct {
		name   string
		params map[string]any
		want   string
	}{
		{"nil map", nil, ""},
		{"omits empty and nil", map[string]any{"a": "1", "b": "", "c": nil}, "?a=1"},
		{"all omitted", map[string]any{"b": "", "c": nil}, ""},
		{"sorted keys", map[string]any{"z": "1", "a": "2"}, "?a=2&z=1"},
		{"encoded", map[string]any{"q": "a b&c=d"}, "?q=a%20b%26c%3Dd"},
		{"numbers and bools", map[string]any{"page": 2, "soldout": false}, "?page=2&soldout=false"},
		{"pointers", map[string]any{"city": &city, "none": nilPtr}, "?city=Tokyo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildQuery(tt.params); got != tt.want {
				t.Errorf("BuildQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQueryRoundTrip(t *testing.T) {
	t.Run("NonEmptyValuesSurvive", func(t *testing.T) {
		params := map[string]any{"q": "Les Misérables", "d": "2025-06-01", "x": "a+b"}
		got := ParseQuery(BuildQuery(params)[1:])
		want := Query{"q": "Les Misérables", "d": "2025-06-01", "x": "a+b"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("round trip = %v, want %v", got, want)
		}
	})

	t.Run("EmptyValuesDropped", func(t *testing.T) {
		params := map[string]any{"q": "x", "empty": "", "missing": nil}
		built := BuildQuery(params)
		got := ParseQuery(built[1:])
		if _, ok := got["empty"]; ok {
			t.Error("empty-string key should be dropped by the round trip")
		}
		if _, ok := got["missing"]; ok {
			t.Error("nil key should be dropped by the round trip")
		}
		if got["q"] != "x" {
			t.Errorf("q = %q, want %q", got["q"], "x")
		}
	})

	t.Run("ParsedEmptyValueNotRebuilt", func(t *testing.T) {
		parsed := ParseQuery("flag")
		if v, ok := parsed["flag"]; !ok || v != "" {
			t.Fatalf("ParseQuery(flag) = %v", parsed)
		}
		if got := BuildQuery(map[string]any{"flag": parsed["flag"]}); got != "" {
			t.Errorf("BuildQuery of empty value = %q, want \"\"", got)
		}
	})
}
