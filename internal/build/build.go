// Package build holds build-time metadata injected via -ldflags.
package build

// Populated at link time; the defaults identify development builds.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
