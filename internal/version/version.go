// Package version reports the build version of shoplist.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time:
//
//	go build -ldflags="-X github.com/muurk/shoplist/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/shoplist/internal/version.Commit=abc1234"
var (
	Version = ""
	Commit  = ""
)

func init() {
	if Version == "" || Commit == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			fillFromSettings(info.Main.Version, info.Settings)
		}
	}
	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// fillFromSettings uses the module version and VCS stamps recorded by the
// go tool for any value not set through ldflags.
func fillFromSettings(moduleVersion string, settings []debug.BuildSetting) {
	var rev string
	dirty := false
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if Commit == "" && rev != "" {
		if len(rev) > 7 {
			rev = rev[:7]
		}
		Commit = rev
		if dirty {
			Commit += "-dirty"
		}
	}
	if Version == "" && moduleVersion != "" && moduleVersion != "(devel)" {
		Version = moduleVersion
	}
}

// Full returns the version and commit, e.g. "v0.3.0 (commit: abc1234)".
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
