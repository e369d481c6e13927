//go:build !unix

package runner

import (
	"os"
	"path/filepath"
	"strings"
)

// TempVars lists the variables Windows programs consult for a temp directory.
var TempVars = []string{"TEMP", "TMP"}

var forwardedSignals []os.Signal

const defaultPathExt = ".com;.exe;.bat;.cmd"

func executableCandidates(dir, name string, env []string) []string {
	base := filepath.Join(dir, name)
	var out []string
	if filepath.Ext(name) != "" {
		out = append(out, base)
	}
	pathExt := lookupEnv(env, "PATHEXT")
	if pathExt == "" {
		pathExt = defaultPathExt
	}
	for _, ext := range filepath.SplitList(pathExt) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		out = append(out, base+strings.ToLower(ext))
	}
	return out
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func stateOutcome(ps *os.ProcessState) Outcome {
	code := ps.ExitCode()
	if code < 0 {
		code = 1
	}
	return Exited(code)
}
