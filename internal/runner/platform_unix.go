//go:build unix

package runner

import (
	"os"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/unix"
)

// TempVars lists the variables children consult for a temp directory.
// TMPDIR is the POSIX one; TMP and TEMP are honored by enough ported
// toolchains to be worth overriding too.
var TempVars = []string{"TMPDIR", "TMP", "TEMP"}

// forwardedSignals reach only the wrapper's pid when sent with kill(2), so
// they are passed on to the child. SIGINT from a terminal already reaches
// the whole process group.
var forwardedSignals = []os.Signal{syscall.SIGTERM}

func executableCandidates(dir, name string, _ []string) []string {
	return []string{filepath.Join(dir, name)}
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	mode := info.Mode()
	return mode.IsRegular() && mode&0o111 != 0
}

// stateOutcome converts a finished child into an Outcome. A child killed by
// a signal reports 128+signal, as shells do.
func stateOutcome(ps *os.ProcessState) Outcome {
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		sig := ws.Signal()
		name := unix.SignalName(sig)
		if name == "" {
			name = sig.String()
		}
		return Outcome{Code: 128 + int(sig), Signal: name}
	}
	return Exited(ps.ExitCode())
}
