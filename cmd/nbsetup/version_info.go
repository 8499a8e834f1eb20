package main

import (
	"runtime/debug"
)

var readBuildInfo = debug.ReadBuildInfo

const shortRevisionLen = 7

// initVersion fills in the version for builds that did not go through
// GoReleaser's ldflags. "go install pkg@version" carries a module version;
// a local checkout build only has VCS stamps, which become "dev+<rev>".
func initVersion() {
	if version != defaultVersion {
		return
	}

	info, ok := readBuildInfo()
	if !ok || info == nil {
		return
	}

	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
		return
	}

	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if revision == "" {
		return
	}

	if len(revision) > shortRevisionLen {
		revision = revision[:shortRevisionLen]
	}
	version = defaultVersion + "+" + revision
	if modified {
		version += ".dirty"
	}
}
