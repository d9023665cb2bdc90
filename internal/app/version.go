package app

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/heartmarshall/nova-backend/internal/app.Version=1.4.0".
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// BuildVersion describes the running binary. When Commit was not injected
// it falls back to the VCS stamp the go tool embeds in module builds.
func BuildVersion() string {
	commit, built := Commit, BuildTime
	if commit == "" || built == "" {
		c, b, dirty := vcsStamp()
		if commit == "" {
			commit = c
			if dirty {
				commit += "-dirty"
			}
		}
		if built == "" {
			built = b
		}
	}
	if commit == "" {
		return Version
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, commit, built)
}

func vcsStamp() (revision, modified string, dirty bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", "", false
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
			if len(revision) > 12 {
				revision = revision[:12]
			}
		case "vcs.time":
			modified = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	return revision, modified, dirty
}
