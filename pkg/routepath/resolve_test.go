package routepath

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		current string
		target  string
		want    string
	}{
		{"dot appends", "/a/b/c", "./d", "/a/b/c/d"},
		{"dot ignores trailing slash", "/a/b/c/", "./d", "/a/b/c/d"},
		{"dot alone keeps path", "/a/b", "./", "/a/b/"},
		{"parent replaces last", "/a/b/c", "../d", "/a/b/d"},
		{"parent twice", "/a/b/c", "../../d", "/a/d"},
		{"parent with trailing slash", "/a/b/c/", "../d", "/a/b/d"},
		{"parent past root", "/a", "../../d", "/d"},
		{"parent from empty", "", "../d", "/d"},
		{"parent nested target", "/a/b", "../x/y", "/a/x/y"},
		{"absolute unchanged", "/a/b", "/x/y", "/x/y"},
		{"bare unchanged", "/a/b", "x", "x"},
		{"empty target", "/a/b", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.current, tt.target)
			if err != nil {
				t.Fatalf("Resolve(%q, %q) error: %v", tt.current, tt.target, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.current, tt.target, got, tt.want)
			}
		})
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		target string
		want   error
	}{
		{"./a\\b", ErrBackslashInPath},
		{"/a\x00", ErrNullByteInPath},
		{"/a%00b", ErrNullByteInPath},
		{"/a%2", ErrInvalidPercentEscape},
		{"/a%GG", ErrInvalidPercentEscape},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			_, err := Resolve("/base", tt.target)
			if !errors.Is(err, tt.want) {
				t.Errorf("Resolve(%q) error = %v, want %v", tt.target, err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	for _, p := range []string{"/", "/a/b", "/a%20b", "/caf%C3%A9", "404"} {
		if err := Validate(p); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", p, err)
		}
	}
}
