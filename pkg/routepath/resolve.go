// Package routepath resolves and validates location paths.
package routepath

import (
	"errors"
	"strings"
)

// Path validation errors.
var (
	ErrBackslashInPath      = errors.New("path contains backslash")
	ErrNullByteInPath       = errors.New("path contains null byte")
	ErrInvalidPercentEscape = errors.New("invalid percent escape sequence")
)

// Resolve resolves target against the current location path.
//
// A target starting with "./" is appended to current, so from "/a/b/c"
// "./d" resolves to "/a/b/c/d". Each leading "../" drops one trailing
// segment of current before appending, so "../d" resolves to "/a/b/d".
// Any other target is returned unchanged. A single trailing slash on
// current is ignored.
func Resolve(current, target string) (string, error) {
	if err := Validate(target); err != nil {
		return "", err
	}

	base := strings.TrimSuffix(current, "/")

	switch {
	case strings.HasPrefix(target, "./"):
		return base + target[1:], nil

	case strings.HasPrefix(target, "../"):
		for strings.HasPrefix(target, "../") {
			if i := strings.LastIndex(base, "/"); i >= 0 {
				base = base[:i]
			} else {
				base = ""
			}
			target = target[3:]
		}
		return base + "/" + target, nil
	}

	return target, nil
}

// Validate rejects paths that must never reach the location bar.
func Validate(path string) error {
	// SECURITY: Reject backslash.
	if strings.Contains(path, "\\") {
		return ErrBackslashInPath
	}

	// SECURITY: Reject NUL byte (both literal and encoded).
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return ErrNullByteInPath
	}

	if strings.Contains(path, "%") {
		return validatePercentEscapes(path)
	}
	return nil
}

// validatePercentEscapes checks that all percent-escapes are valid.
// Valid escapes are %XX where X is a hex digit (0-9, a-f, A-F).
func validatePercentEscapes(path string) error {
	i := 0
	for i < len(path) {
		if path[i] == '%' {
			if i+2 >= len(path) {
				return ErrInvalidPercentEscape
			}
			if !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
				return ErrInvalidPercentEscape
			}
			i += 3
		} else {
			i++
		}
	}
	return nil
}

// isHexDigit returns true if c is a valid hex digit.
func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
