package router

import "strings"

// Separator splits a path into segments.
const Separator = "/"

// Tokenize splits a path into its non-empty segments.
// Leading, trailing and repeated separators are ignored, so
// "/a//b/" and "a/b" both yield ["a", "b"].
func Tokenize(path string) []string {
	if path == "" {
		return nil
	}

	segments := make([]string, 0, strings.Count(path, Separator)+1)
	for _, seg := range strings.Split(path, Separator) {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}
