package runner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ActiveEnv is set on every child to the file the wrapper launched. A
// wrapper that finds its own binary there was started as another wrapper's
// target, which happens when two copies of the shim sit on PATH.
const ActiveEnv = "RANDOMTEMP_ACTIVE"

var (
	// ErrNotFound indicates no executable with the requested name is on PATH.
	ErrNotFound = errors.New("executable not found")
	// ErrSelfInvocation indicates the only match on PATH is randomtemp itself.
	ErrSelfInvocation = errors.New("refusing to launch randomtemp as its own target; set RANDOMTEMP_EXECUTABLE or put the real tool on PATH")
)

// locate finds the file to execute for name. Names with a directory part are
// used as given. Bare names are searched on PATH, skipping relative entries
// (as os/exec does) and any file that is the running wrapper.
func locate(name, self string, env []string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrNotFound)
	}
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return name, nil
	}

	selfInfo := statOrNil(self)
	sawSelf := false
	for _, dir := range filepath.SplitList(lookupEnv(env, "PATH")) {
		if dir == "" || !filepath.IsAbs(dir) {
			continue
		}
		for _, candidate := range executableCandidates(dir, name, env) {
			if !isExecutable(candidate) {
				continue
			}
			if selfInfo != nil {
				if info := statOrNil(candidate); info != nil && os.SameFile(info, selfInfo) {
					sawSelf = true
					continue
				}
			}
			return candidate, nil
		}
	}
	if sawSelf {
		return "", fmt.Errorf("%s: %w", name, ErrSelfInvocation)
	}
	return "", fmt.Errorf("%s: %w", name, ErrNotFound)
}

// launchedAsTarget reports whether env marks self as the target of another
// wrapper.
func launchedAsTarget(self string, env []string) bool {
	marked := statOrNil(lookupEnv(env, ActiveEnv))
	if marked == nil {
		return false
	}
	selfInfo := statOrNil(self)
	return selfInfo != nil && os.SameFile(marked, selfInfo)
}

func statOrNil(path string) os.FileInfo {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	return info
}
