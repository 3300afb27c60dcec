// Package main is the entry point for the gitopsctl application.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gitopsware/gitopsctl/cmd"
	"github.com/gitopsware/gitopsctl/internal/buildmeta"
	"github.com/gitopsware/gitopsctl/pkg/cli/ui/confirm"
	"github.com/gitopsware/gitopsctl/pkg/utils/notify"
)

func main() {
	exitCode := runSafely(os.Args[1:], runWithArgs, os.Stderr)

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

//nolint:nonamedreturns // Named return simplifies panic recovery logic.
func runSafely(args []string, runner func([]string) int, errWriter io.Writer) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			panicMessage := fmt.Sprintf("panic recovered: %v\n%s", r, debug.Stack())
			notify.WriteMessage(notify.Message{
				Type:    notify.ErrorType,
				Content: panicMessage,
				Writer:  errWriter,
			})

			exitCode = 1
		}
	}()

	exitCode = runner(args)

	return exitCode
}

func runWithArgs(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cmd.NewRootCmd(buildmeta.Version, buildmeta.Commit, buildmeta.Date)
	rootCmd.SetArgs(args)
	rootCmd.SetContext(ctx)

	err := cmd.Execute(rootCmd)
	if err != nil {
		// Interrupts and explicit cancellation are a clean exit, matching the
		// behavior operators expect from interactive pipeline tooling.
		if errors.Is(err, confirm.ErrCancelled) || errors.Is(err, context.Canceled) {
			notify.Warningf(rootCmd.ErrOrStderr(), "operation cancelled")

			return 0
		}

		notify.Errorf(rootCmd.ErrOrStderr(), "%v", err)

		return 1
	}

	return 0
}
