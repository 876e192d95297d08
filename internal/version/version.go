// Package version carries the build metadata injected at link time.
package version

var (
	// Version is the release version, set via -ldflags.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)
