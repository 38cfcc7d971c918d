// Package version reports build information for the runway binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at build time with -ldflags "-X github.com/longkey1/runway/internal/version.Version=..."
var (
	Version   = "dev"
	CommitSHA = ""
	BuildTime = ""
)

// Short returns only the version number
func Short() string {
	return Version
}

// Info returns the version number with commit, build time and Go version
func Info() string {
	commit := CommitSHA
	built := BuildTime
	if commit == "" || built == "" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, s := range bi.Settings {
				switch s.Key {
				case "vcs.revision":
					if commit == "" {
						commit = s.Value
					}
				case "vcs.time":
					if built == "" {
						built = s.Value
					}
				}
			}
		}
	}
	if commit == "" {
		commit = "unknown"
	}
	if built == "" {
		built = "unknown"
	}

	return fmt.Sprintf("runway %s\n  commit: %s\n  built:  %s\n  go:     %s", Version, commit, built, runtime.Version())
}
