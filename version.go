package lingosnip

// Version information for lingosnip.
// These values can be overridden at build time using ldflags:
//
//	go build -ldflags "-X github.com/TessaraLabs/lingosnip.Version=1.0.0"
const (
	// Name is the application name.
	Name = "lingosnip"

	// Description is a short description of the application.
	Description = "Language-conditional snippet generator for template deployment pipelines"

	// Version is the semantic version of the application.
	// Override at build time with ldflags for releases.
	Version = "0.1.0"

	// Repository is the source code repository URL.
	Repository = "https://github.com/TessaraLabs/lingosnip"

	// License is the software license.
	License = "MIT"
)

// BuildInfo contains build-time information.
// These are typically set via ldflags during build.
var (
	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// FullVersion returns the version string with optional build info.
func FullVersion() string {
	v := Version
	if GitCommit != "unknown" && GitCommit != "" {
		short := GitCommit
		if len(short) > 7 {
			short = short[:7]
		}
		v += "+" + short
	}
	return v
}
