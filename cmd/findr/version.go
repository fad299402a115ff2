package main

import "runtime/debug"

// buildVersion may be set with -ldflags "-X main.buildVersion=v1.2.3".
var buildVersion string

var version = getVersion(buildVersion)

func getVersion(override string) string {
	if override != "" {
		return override
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	var revision string
	dirty := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if revision == "" {
		return "dev"
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if dirty {
		return revision + "-dirty"
	}
	return revision
}
