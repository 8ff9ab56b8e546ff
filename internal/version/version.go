// Package version reports the build provenance of the running binary.
package version

import (
	"runtime/debug"
)

var (
	// These are set via -ldflags during release builds
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Info carries the version information for the running binary.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
	Date    string `json:"date,omitempty"`
}

// Get returns the version information, falling back to the VCS stamp
// embedded by the Go toolchain when ldflags did not provide one.
func Get() Info {
	info := Info{
		Version: Version,
		Commit:  Commit,
		Date:    Date,
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = setting.Value
			}
		case "vcs.time":
			if info.Date == "" {
				info.Date = setting.Value
			}
		}
	}
	return info
}

// String renders the info on a single line.
func (i Info) String() string {
	out := i.Version
	if i.Commit == "" {
		return out
	}

	commit := i.Commit
	if len(commit) > 12 {
		commit = commit[:12]
	}
	out += " (" + commit
	if i.Date != "" {
		out += ", " + i.Date
	}
	return out + ")"
}
