// Package version exposes build-time version information.
package version

import "fmt"

// Set via -ldflags at build time. "dev" is the default for local builds.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Short returns the bare version string.
func Short() string {
	return Version
}

// Info returns a human-readable version line.
func Info() string {
	return fmt.Sprintf("storefront %s (commit %s, built %s)", Version, GitCommit, BuildDate)
}

// Map returns version fields for JSON responses.
func Map() map[string]string {
	return map[string]string{
		"version": Version,
		"commit":  GitCommit,
		"built":   BuildDate,
	}
}
