package version

import (
	"fmt"
	"runtime"
)

// Build metadata, overridden with -ldflags "-X" at release time
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the bare version, falling back to "dev"
func Short() string {
	if Version == "" {
		return "dev"
	}
	return Version
}

// Full returns version, commit, build date and Go runtime
func Full() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, %s %s/%s)",
		Short(), Commit, Date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
