package slug

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from a product name.
//
// Examples:
//   - "Slim Fit Shirt"     → "slim-fit-shirt"
//   - "  Hello   World!  " → "hello-world"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// WithSuffix appends a uniqueness suffix, used when generating
// placeholder products whose names would otherwise collide.
func WithSuffix(name, suffix string) string {
	base := Generate(name)
	if base == "" {
		return Generate(suffix)
	}
	return base + "-" + Generate(suffix)
}
