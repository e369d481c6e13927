// Package resolve decides which program randomtemp stands in for.
package resolve

import (
	"path/filepath"
	"runtime"
	"strings"
)

// Inputs are the raw values resolution works from. Override is the value of
// RANDOMTEMP_EXECUTABLE (after config layering); Self is the path of the
// running wrapper binary.
type Inputs struct {
	Override string
	Args     []string
	Self     string
}

// Target is the program to launch and the arguments it receives.
type Target struct {
	Executable string
	Args       []string
}

// Resolve always yields a Target. Whether the executable actually exists is
// decided at launch time.
func Resolve(in Inputs) Target {
	if in.Override != "" {
		return Target{Executable: in.Override, Args: clone(in.Args)}
	}
	if len(in.Args) > 0 {
		return Target{Executable: in.Args[0], Args: clone(in.Args[1:])}
	}
	return Target{Executable: SelfName(in.Self), Args: []string{}}
}

// SelfName strips the directory and the platform executable suffix from the
// wrapper's own path, so a copy installed as cl.exe resolves to "cl".
func SelfName(self string) string {
	name := filepath.Base(self)
	if runtime.GOOS == "windows" {
		ext := filepath.Ext(name)
		if strings.EqualFold(ext, ".exe") {
			name = strings.TrimSuffix(name, ext)
		}
	}
	return name
}

func clone(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	return out
}
