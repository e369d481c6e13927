package cli

import (
	"context"
	"io"
	"os"

	"github.com/randomtemp/randomtemp/internal/config"
	"github.com/randomtemp/randomtemp/internal/retry"
	"github.com/randomtemp/randomtemp/internal/runner"
	"github.com/randomtemp/randomtemp/internal/tempdir"
	"github.com/randomtemp/randomtemp/internal/version"
)

type app struct {
	self   string
	stderr io.Writer
	getwd  func() (string, error)

	exitCode int
}

func newApp() *app {
	self, err := os.Executable()
	if err != nil {
		self = os.Args[0]
	}
	return &app{
		self:   self,
		stderr: os.Stderr,
		getwd:  os.Getwd,
	}
}

func (a *app) run(ctx context.Context, args []string) int {
	logger := newLogger(a.stderr, config.DefaultLogLevel)

	cfg, err := config.FromEnv(config.Sources{Args: args, Self: a.self, Getwd: a.getwd})
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		return 1
	}
	logger.SetLevel(cfg.LogLevel)
	for _, problem := range cfg.Problems() {
		logger.Warn("using default", "reason", problem)
	}
	logger.Debug("starting",
		"version", version.String(),
		"executable", cfg.Executable,
		"basedir", cfg.BaseDir,
		"maxtrial", cfg.MaxTrials,
	)

	launcher := runner.New(a.self, logger)
	if err := launcher.Preflight(); err != nil {
		logger.Error("refusing to start", "err", err)
		return runner.ExitSpawnFailure
	}

	ctrl := retry.New(retry.Plan{
		Target:    cfg.Target(),
		BaseDir:   cfg.BaseDir,
		MaxTrials: cfg.MaxTrials,
	}, tempdir.New(), launcher, logger)

	res := ctrl.Run(ctx)
	if res.Err != nil {
		logger.Error("giving up", "err", res.Err)
	}
	return res.ExitCode
}
