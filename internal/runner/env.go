package runner

import (
	"runtime"
	"strings"
)

// withTempDir points every name in vars at dir. Existing entries for those
// names are dropped and everything else keeps its original order.
func withTempDir(env []string, vars []string, dir string) []string {
	out := make([]string, 0, len(env)+len(vars))
	for _, entry := range env {
		key, _, ok := strings.Cut(entry, "=")
		if ok && isTempVar(key, vars) {
			continue
		}
		out = append(out, entry)
	}
	for _, name := range vars {
		out = append(out, name+"="+dir)
	}
	return out
}

func withVar(env []string, name, value string) []string {
	return withTempDir(env, []string{name}, value)
}

func isTempVar(key string, vars []string) bool {
	for _, name := range vars {
		if envKeyEqual(key, name) {
			return true
		}
	}
	return false
}

func envKeyEqual(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func lookupEnv(env []string, key string) string {
	value := ""
	for _, entry := range env {
		k, v, ok := strings.Cut(entry, "=")
		if ok && envKeyEqual(k, key) {
			value = v
		}
	}
	return value
}
