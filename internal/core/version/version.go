// Package version provides information about the build version of the service.
package version

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service" example:"airwatch-api"`
	Version string `json:"version" example:"v1.4.0"`
	Commit  string `json:"commit" example:"3f2c1e9"`
	Date    string `json:"date" example:"2024-06-01"`
}

// Info returns the build information. The version, commit, and date variables
// are set at build time using -ldflags.
func Info() BuildInfo {
	// -ldflags "-X 'airwatch/internal/core/version.version=v0.0.1'
	// -X 'airwatch/internal/core/version.commit=abcd' -X 'airwatch/internal/core/version.date=2025-09-02'"
	return BuildInfo{
		Service: "airwatch-api",
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
