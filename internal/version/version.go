// Package version exposes the release version embedded from the VERSION file.
package version

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var raw string

// Get returns the embedded version string with surrounding whitespace removed.
func Get() string {
	return strings.TrimSpace(raw)
}
