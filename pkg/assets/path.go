// Package assets resolves exercise display records and locates their media,
// falling back through a fixed list of conventional paths when the declared
// one cannot be served.
package assets

import (
	"path"
	"strings"
)

const (
	// PlaceholderPath is served whenever no usable media exists.
	PlaceholderPath = "/assets/exercises/placeholder.png"

	// MaxAttempts bounds the fallback cascade.
	MaxAttempts = 6
)

// devPrefixes are source-tree locations that only exist in a development
// checkout. Longest first.
var devPrefixes = []string{
	"../src/",
	"./src/",
	"/src/",
	"src/",
	"../public/",
	"./public/",
	"/public/",
	"public/",
	"../",
	"./",
}

// IsURL reports whether p is absolute (scheme or protocol-relative) and must
// not be rewritten.
func IsURL(p string) bool {
	lower := strings.ToLower(p)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(lower, "//")
}

// StripDevPrefix removes leading development-only directories.
func StripDevPrefix(p string) string {
	for {
		trimmed := false
		for _, prefix := range devPrefixes {
			if strings.HasPrefix(p, prefix) {
				p = strings.TrimPrefix(p, prefix)
				trimmed = true
				break
			}
		}
		if !trimmed {
			return p
		}
	}
}

// FixAssetPath rewrites a declared media path into a servable one: dev
// prefixes stripped and a leading slash guaranteed. URLs pass through and an
// empty path becomes the placeholder.
func FixAssetPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return PlaceholderPath
	}
	if IsURL(p) {
		return p
	}
	p = StripDevPrefix(p)
	if p == "" {
		return PlaceholderPath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// fileName is the last path element of p, ignoring any query string.
func fileName(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return path.Base(p)
}
