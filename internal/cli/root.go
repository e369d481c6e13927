package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/randomtemp/randomtemp/internal/config"
)

// Execute runs randomtemp against the process's own arguments and returns the
// status the process should exit with.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp()
	cmd := newRootCommand(app)
	cmd.SetArgs(os.Args[1:])
	return execute(ctx, cmd, app)
}

func execute(ctx context.Context, cmd *cobra.Command, app *app) int {
	if err := cmd.ExecuteContext(ctx); err != nil {
		newLogger(app.stderr, config.DefaultLogLevel).Error("command failed", "err", err)
		return 1
	}
	return app.exitCode
}

// newRootCommand builds a command that interprets nothing: every argument,
// including --help, belongs to the wrapped program.
func newRootCommand(app *app) *cobra.Command {
	return &cobra.Command{
		Use:                "randomtemp [executable] [args...]",
		Short:              "Run a program with a fresh temp directory, retrying on failure",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.exitCode = app.run(cmd.Context(), args)
			return nil
		},
	}
}
