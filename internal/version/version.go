package version

import (
	"runtime/debug"
	"strings"
)

const devel = "(devel)"

// String reports the module version randomtemp was built from, or "(devel)"
// for local and pseudo-versioned builds. A known VCS revision is appended.
func String() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return devel
	}
	return describe(info.Main.Version, setting(info, "vcs.revision"))
}

func describe(version, revision string) string {
	if version == "" || version == devel || strings.Contains(version, "+dirty") || isPseudoVersion(version) {
		version = devel
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	if revision == "" {
		return version
	}
	return version + " " + revision
}

func setting(info *debug.BuildInfo, key string) string {
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}

// isPseudoVersion matches vX.Y.Z-yyyymmddhhmmss-abcdefabcdef and the
// pre-release forms thereof.
func isPseudoVersion(version string) bool {
	version, _, _ = strings.Cut(version, "+")
	parts := strings.Split(version, "-")
	if len(parts) < 3 {
		return false
	}
	stamp := parts[len(parts)-2]
	if i := strings.LastIndexByte(stamp, '.'); i >= 0 {
		stamp = stamp[i+1:]
	}
	hash := parts[len(parts)-1]
	return len(stamp) == 14 && onlyRunes(stamp, "0123456789") &&
		len(hash) >= 12 && onlyRunes(strings.ToLower(hash), "0123456789abcdef")
}

func onlyRunes(s, allowed string) bool {
	for _, r := range s {
		if !strings.ContainsRune(allowed, r) {
			return false
		}
	}
	return true
}
