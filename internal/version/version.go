package version

import (
	"fmt"
	"runtime"
)

// Build information. Populated at build-time via ldflags:
//
//	go build -ldflags "-X github.com/zgpcy/calltimer/internal/version.Version=v1.0.0"
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns version information
func Info() map[string]string {
	return map[string]string{
		"version":    Version,
		"git_commit": GitCommit,
		"build_date": BuildDate,
		"go_version": runtime.Version(),
	}
}

// String returns a one-line summary suitable for `calltimer version`
func String() string {
	return fmt.Sprintf("calltimer %s (commit %s, built %s, %s)",
		Version, GitCommit, BuildDate, runtime.Version())
}
