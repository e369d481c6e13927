// Package retry drives the attempt loop: each attempt gets a fresh temp
// directory, and any failure is retried until the trial budget runs out.
//
// Failures are never classified. A genuine compile error is retried just
// like a temp-file collision.
package retry

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/randomtemp/randomtemp/internal/resolve"
	"github.com/randomtemp/randomtemp/internal/runner"
)

// ExitSetupFailure is reported when the last attempt could not even create
// its temp directory.
const ExitSetupFailure = 1

// ErrExhausted indicates every trial failed.
var ErrExhausted = errors.New("all attempts failed")

// PathSource hands out a fresh temp directory per attempt.
type PathSource interface {
	Next(base string) (string, error)
}

// Launcher runs one child to completion.
type Launcher interface {
	Run(ctx context.Context, inv runner.Invocation) runner.Outcome
}

// Phase is the state machine's position.
type Phase int

const (
	Attempting Phase = iota
	Succeeded
	Exhausted
)

func (p Phase) String() string {
	switch p {
	case Attempting:
		return "attempting"
	case Succeeded:
		return "succeeded"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is a snapshot between transitions. Trial is the 0-based index of the
// next attempt while Attempting; Last is the most recent attempt's outcome.
type State struct {
	Phase Phase
	Trial int
	Last  runner.Outcome
}

// Terminal reports whether no further attempts will be made.
func (s State) Terminal() bool {
	return s.Phase != Attempting
}

// Attempt records one iteration of the loop.
type Attempt struct {
	Index    int
	TempPath string
	Outcome  runner.Outcome
}

// Plan is the fixed input to a run.
type Plan struct {
	Target    resolve.Target
	BaseDir   string
	MaxTrials int
}

// Result is what a finished run reports. Err wraps ErrExhausted on failure.
type Result struct {
	ExitCode int
	Attempts []Attempt
	Err      error
}

// Controller owns the retry loop for a single wrapper invocation.
type Controller struct {
	plan     Plan
	paths    PathSource
	launcher Launcher
	logger   *log.Logger
}

// New returns a Controller. MaxTrials below 1 is treated as 1.
func New(plan Plan, paths PathSource, launcher Launcher, logger *log.Logger) *Controller {
	if plan.MaxTrials < 1 {
		plan.MaxTrials = 1
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{plan: plan, paths: paths, launcher: launcher, logger: logger}
}

// Start is the initial state.
func Start() State {
	return State{Phase: Attempting}
}

// Step performs one attempt from s and returns the next state. Terminal
// states are returned unchanged with a zero Attempt.
func (c *Controller) Step(ctx context.Context, s State) (State, Attempt) {
	if s.Terminal() {
		return s, Attempt{}
	}

	attempt := Attempt{Index: s.Trial}
	path, err := c.paths.Next(c.plan.BaseDir)
	if err != nil {
		attempt.Outcome = runner.SetupFailed(ExitSetupFailure, err)
	} else {
		attempt.TempPath = path
		c.logger.Debug("attempt", "trial", s.Trial+1, "max_trials", c.plan.MaxTrials, "tmp", path)
		attempt.Outcome = c.launcher.Run(ctx, runner.Invocation{
			Executable: c.plan.Target.Executable,
			Args:       c.plan.Target.Args,
			TempDir:    path,
		})
	}

	return c.next(ctx, s, attempt.Outcome), attempt
}

func (c *Controller) next(ctx context.Context, s State, outcome runner.Outcome) State {
	if outcome.Success() {
		return State{Phase: Succeeded, Trial: s.Trial, Last: outcome}
	}
	if s.Trial+1 >= c.plan.MaxTrials {
		return State{Phase: Exhausted, Trial: s.Trial, Last: outcome}
	}
	if err := ctx.Err(); err != nil {
		c.logger.Warn("interrupted, not retrying", "attempt", s.Trial+1, "outcome", outcome)
		return State{Phase: Exhausted, Trial: s.Trial, Last: outcome}
	}
	c.logger.Warn("attempt failed, retrying", "attempt", s.Trial+1, "max_trials", c.plan.MaxTrials, "outcome", outcome)
	return State{Phase: Attempting, Trial: s.Trial + 1, Last: outcome}
}

// Run steps from Start until a terminal state. Reporting the result is left
// to the caller.
func (c *Controller) Run(ctx context.Context) Result {
	var attempts []Attempt
	s := Start()
	for !s.Terminal() {
		var a Attempt
		s, a = c.Step(ctx, s)
		attempts = append(attempts, a)
	}

	res := Result{ExitCode: s.Last.Code, Attempts: attempts}
	if s.Phase == Exhausted {
		res.Err = fmt.Errorf("%w after %d of %d: %s", ErrExhausted, len(attempts), c.plan.MaxTrials, s.Last)
	}
	return res
}
