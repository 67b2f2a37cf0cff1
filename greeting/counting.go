package greeting

import "github.com/prometheus/client_golang/prometheus"

type countingGreeter struct {
	inner   Greeter
	counter prometheus.Counter
}

// NewCountingGreeter counts the greetings of the service.
//
// @decorator named="greeting.service"
// @when named="app.metrics.enabled" equals="true"
func NewCountingGreeter(
	greeter Greeter,
	counter prometheus.Counter, // @inject named="greeting.counter"
) Greeter {
	return &countingGreeter{
		inner:   greeter,
		counter: counter,
	}
}

// SayHello only counts the greetings actually written.
func (c *countingGreeter) SayHello() {
	c.inner.SayHello()
	if c.inner.Err() == nil {
		c.counter.Inc()
	}
}

func (c *countingGreeter) Err() error {
	return c.inner.Err()
}
