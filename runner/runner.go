package runner

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/a-peyrard/hello-godi/godi"
	"golang.org/x/sync/errgroup"
)

// Runnable represents a component that can be run with a context.
type Runnable interface {
	Run(ctx context.Context) error
}

// RunnableFunc adapts a plain function to a Runnable.
type RunnableFunc func(ctx context.Context) error

func (f RunnableFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Run resolves every Runnable registered in the resolver and runs them with RunAll.
func Run(ctx context.Context, resolver *godi.Resolver) error {
	runnables, err := godi.ResolveAll[Runnable](resolver)
	if err != nil {
		return fmt.Errorf("failed to resolve runnables:\n\t%w", err)
	}
	return RunAll(ctx, runnables...)
}

// RunAll runs all the provided runnables concurrently and waits for all of them to finish.
// A single runnable is run on the caller goroutine.
//
// This method is blocking and will return an error if any of the runnables returns an error.
func RunAll(parentCtx context.Context, runnables ...Runnable) error {
	if len(runnables) == 1 {
		return runnables[0].Run(parentCtx)
	}

	group, ctx := errgroup.WithContext(parentCtx)

	for _, runnable := range runnables {
		runnable := runnable
		group.Go(func() error {
			return runnable.Run(ctx)
		})
	}

	return group.Wait()
}

// WithSyscallKillableContext returns a context cancelled on SIGINT or SIGTERM.
func WithSyscallKillableContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
