package greeting

import (
	"context"
	"fmt"

	"github.com/a-peyrard/hello-godi/runner"
)

// NewRunner greets once per run, failing when the greeting could not be written.
//
// @provider named="greeting.runner"
func NewRunner(
	greeter Greeter, // @inject named="greeting.service"
) runner.Runnable {
	return runner.RunnableFunc(func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		greeter.SayHello()
		if err := greeter.Err(); err != nil {
			return fmt.Errorf("failed to greet:\n\t%w", err)
		}
		return nil
	})
}
