package runner

import "fmt"

// ExitSpawnFailure is reported when the executable could not be started at
// all. It matches the shell's "command not found" status.
const ExitSpawnFailure = 127

// Outcome is the result of one attempt. Err is non-nil only when the child
// never ran, and Code is then the status the wrapper should report for it.
// Setup marks attempts that failed before a launch was even tried.
type Outcome struct {
	Code   int
	Err    error
	Signal string
	Setup  bool
}

// Exited reports a child that ran and terminated with code.
func Exited(code int) Outcome {
	return Outcome{Code: code}
}

// SpawnFailed reports a child that could not be located or started.
func SpawnFailed(err error) Outcome {
	return Outcome{Code: ExitSpawnFailure, Err: err}
}

// SetupFailed reports an attempt whose preparation failed, so nothing was
// launched.
func SetupFailed(code int, err error) Outcome {
	return Outcome{Code: code, Err: err, Setup: true}
}

// Success reports whether the outcome ends the retry loop.
func (o Outcome) Success() bool {
	return o.Err == nil && o.Code == 0
}

func (o Outcome) String() string {
	switch {
	case o.Err != nil && o.Setup:
		return fmt.Sprintf("setup failed: %v", o.Err)
	case o.Err != nil:
		return fmt.Sprintf("launch failed: %v", o.Err)
	case o.Signal != "":
		return fmt.Sprintf("killed by %s", o.Signal)
	default:
		return fmt.Sprintf("exit status %d", o.Code)
	}
}
