package hashroute

import (
	"reflect"
	"testing"
)

func TestMatchPath(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    Params
	}{
		{"root", "/", "/", Params{}},
		{"literal", "/search", "/search", Params{}},
		{"param", "/event/:id", "/event/42", Params{"id": "42"}},
		{"decoded param", "/detail/:id", "/detail/123%20A", Params{"id": "123 A"}},
		{"plus stays literal", "/detail/:id", "/detail/a+b", Params{"id": "a+b"}},
		{"two params", "/cast/:a/with/:b", "/cast/x/with/y", Params{"a": "x", "b": "y"}},
		{"trailing slash", "/search", "/search/", Params{}},
		{"doubled slashes", "/a/:b", "//a//c", Params{"b": "c"}},
		{"malformed escape kept raw", "/event/:id", "/event/%GG", Params{"id": "%GG"}},
		{"fewer segments", "/a/:b", "/a", nil},
		{"more segments", "/a", "/a/b", nil},
		{"literal mismatch", "/a/:b", "/x/y", nil},
		{"case sensitive", "/Search", "/search", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchPath(tt.pattern, tt.path)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("MatchPath(%q, %q) = %v, want nil", tt.pattern, tt.path, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("MatchPath(%q, %q) = nil, want %v", tt.pattern, tt.path, tt.want)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MatchPath(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
			}
		})
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"/", []string{}},
		{"/a/b", []string{"a", "b"}},
		{"a//b/", []string{"a", "b"}},
	}
	for _, tt := range tests {
		got := splitPath(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitPath(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitPath(%q) = %v, want %v", tt.in, got, tt.want)
			}
		}
	}
}
