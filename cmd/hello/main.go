// Command hello greets the world on the standard output.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/a-peyrard/hello-godi/app"
	"github.com/a-peyrard/hello-godi/godi"
	"github.com/a-peyrard/hello-godi/runner"
)

func main() {
	ctx, stop := runner.WithSyscallKillableContext(context.Background())
	err := run(ctx, os.Stderr)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// run greets once, logging on logOut. The standard output only carries the greeting.
func run(ctx context.Context, logOut io.Writer) (err error) {
	cfg, err := app.LoadConfig(".env")
	if err != nil {
		_, _ = fmt.Fprintf(logOut, "failed to start: %v\n", err)
		return err
	}
	logger, err := app.NewLogger(logOut, cfg.LogLevel)
	if err != nil {
		_, _ = fmt.Fprintf(logOut, "failed to start: %v\n", err)
		return err
	}

	resolver := app.NewResolver(cfg, logger)
	defer func() {
		if closeErr := resolver.Close(); closeErr != nil {
			logger.Error().Err(closeErr).Msg("failed to close components")
			err = errors.Join(err, closeErr)
		}
	}()
	if event := logger.Trace(); event.Enabled() {
		event.Msgf("components before running:\n%s", resolver.Describe())
	}

	if err := runner.Run(ctx, resolver); err != nil {
		logger.Error().Err(err).Msg("failed to run")
		return err
	}

	reporter, err := godi.Resolve[*app.MetricsReporter](resolver)
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve metrics reporter")
		return err
	}
	if err := reporter.Report(); err != nil {
		logger.Warn().Err(err).Msg("failed to report metrics")
	}

	logger.Info().Msg("bye.")
	return nil
}
