// Package runner launches the wrapped executable with its temp variables
// redirected and reports how it ended.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime/trace"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/syntax"
)

// Invocation describes one launch.
type Invocation struct {
	Executable string
	Args       []string
	TempDir    string
}

// Runner starts children that share the wrapper's stdio.
type Runner struct {
	// Self is the wrapper's own binary; PATH lookups never resolve to it.
	Self string

	environ func() []string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	logger  *log.Logger
}

// New returns a Runner wired to the process's environment and stdio.
func New(self string, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		Self:    self,
		environ: os.Environ,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		logger:  logger,
	}
}

// Preflight fails with ErrSelfInvocation when this wrapper was itself
// launched as another wrapper's target.
func (r *Runner) Preflight() error {
	if launchedAsTarget(r.Self, r.environ()) {
		return fmt.Errorf("%s was launched by another randomtemp: %w", r.Self, ErrSelfInvocation)
	}
	return nil
}

// Run launches inv and blocks until the child exits. The child is never
// killed on the wrapper's behalf, but termination signals sent to the
// wrapper are relayed to it. ctx only labels the trace region.
func (r *Runner) Run(ctx context.Context, inv Invocation) Outcome {
	env := withTempDir(r.environ(), TempVars, inv.TempDir)

	path, err := locate(inv.Executable, r.Self, env)
	if err != nil {
		return SpawnFailed(err)
	}
	marker := path
	if abs, err := filepath.Abs(path); err == nil {
		marker = abs
	}
	env = withVar(env, ActiveEnv, marker)

	argv := append([]string{inv.Executable}, inv.Args...)
	r.logger.Debug("launching", "path", path, "command", quoteCommand(argv), "tmp", inv.TempDir)

	cmd := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Env:    env,
		Stdin:  r.stdin,
		Stdout: r.stdout,
		Stderr: r.stderr,
	}

	trace.WithRegion(ctx, "randomtemp.child", func() {
		if err = cmd.Start(); err != nil {
			return
		}
		stop := r.relaySignals(cmd.Process)
		err = cmd.Wait()
		stop()
	})
	if cmd.ProcessState == nil {
		return SpawnFailed(fmt.Errorf("start %s: %w", path, err))
	}
	return stateOutcome(cmd.ProcessState)
}

// relaySignals passes forwardedSignals on to p until stop is called.
func (r *Runner) relaySignals(p *os.Process) (stop func()) {
	if len(forwardedSignals) == 0 {
		return func() {}
	}
	ch := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(ch, forwardedSignals...)
	go func() {
		for {
			select {
			case sig := <-ch:
				r.logger.Debug("relaying signal", "signal", sig, "pid", p.Pid)
				_ = p.Signal(sig)
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
	}
}

func quoteCommand(argv []string) string {
	parts := make([]string, len(argv))
	for i, arg := range argv {
		quoted, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			quoted = fmt.Sprintf("%q", arg)
		}
		parts[i] = quoted
	}
	return strings.Join(parts, " ")
}
