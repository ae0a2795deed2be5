// Package version provides information about the build version of a phishguard binary.
package version

// BuildInfo holds version information about the binary build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information for the named service. The version, commit, and date
// variables are intended to be set at build time using -ldflags.
func Info(service string) BuildInfo {
	// Set via -ldflags "-X 'phishguard/internal/core/version.version=v0.1.0'
	// -X 'phishguard/internal/core/version.commit=abcd' -X 'phishguard/internal/core/version.date=2026-10-19'"
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// String is the one-line form printed by -version flags
func (b BuildInfo) String() string {
	return b.Service + " " + b.Version + " (" + b.Commit + ", " + b.Date + ")"
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
