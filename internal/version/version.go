// Package version provides build-time version information for superdiff.
//
// Build-time variables are injected via ldflags:
//
//	go build -ldflags "
//	  -X github.com/superdiff-go/superdiff/internal/version.Version=x.y.z
//	  -X github.com/superdiff-go/superdiff/internal/version.Commit=$(git rev-parse HEAD)
//	  -X github.com/superdiff-go/superdiff/internal/version.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)
//	"
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build-time variables injected via ldflags.
var (
	// Version is the semantic version following SemVer 2.0.0.
	// Release format: "1.2.3"
	// Dev format: "1.2.3-dev.N+HASH" (next patch + dev + commits since release + short SHA)
	// Default: "0.0.0" for local/development builds
	Version = "0.0.0"

	// Commit is the full git commit SHA.
	Commit = "unknown"

	// Date is the build timestamp in RFC3339 format.
	Date = "unknown"
)

func init() {
	// If ldflags weren't provided, try to get VCS info from build info
	if Commit == "unknown" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs.revision":
					Commit = setting.Value
				case "vcs.time":
					Date = setting.Value
				}
			}
		}
	}
}

// ApplicationName is the canonical name of this application.
const ApplicationName = "superdiff"

// String returns a human-readable version string, as printed by --version.
func String() string {
	platform := fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
	if Commit != "unknown" && len(Commit) >= 8 {
		return fmt.Sprintf("%s version %s (commit: %s, built: %s, %s, %s)",
			ApplicationName, Version, Commit[:8], Date, runtime.Version(), platform)
	}
	return fmt.Sprintf("%s version %s (%s, %s)", ApplicationName, Version, runtime.Version(), platform)
}
