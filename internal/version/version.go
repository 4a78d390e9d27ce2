package version

// Version contains the application version information.
// Set via ldflags in release builds:
// go build -ldflags "-X git.home.luguber.info/inful/docnav/internal/version.Version=v0.3.0".
var Version = "dev"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders version and build metadata on one line.
func String() string {
	return Version + " (commit " + GitCommit + ", built " + BuildTime + ")"
}
