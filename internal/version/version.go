// Package version holds the build version string, overridable at link time
// with -ldflags "-X github.com/tmokveld/theseus-lib/internal/version.Version=...".
package version

// Version is the build version reported by the --version CLI flag.
var Version = "dev"
