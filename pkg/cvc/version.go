package cvc

import "runtime/debug"

var (
	Version   = "v0.0.0-in-progress"
	GitCommit = "unknown"
)

// LibraryVersion returns the semantic version populated at build time via
// ldflags. In development it defaults to v0.0.0-in-progress.
func LibraryVersion() string {
	return Version
}

// EngineVersion returns the version of the curve arithmetic module linked
// into the binary, or "unknown" when build info is unavailable.
func EngineVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path == "github.com/cloudflare/circl" {
			return dep.Version
		}
	}
	return "unknown"
}
