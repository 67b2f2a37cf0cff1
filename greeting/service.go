// Package greeting holds the service greeting the world.
package greeting

import (
	"io"

	"github.com/rs/zerolog"
)

const message = "Hello, World!\n"

type (
	// Greeter greets. Err reports the failure of the last greeting, if any.
	Greeter interface {
		SayHello()
		Err() error
	}

	// Service writes the greeting line on its output.
	Service struct {
		out    io.Writer
		logger *zerolog.Logger
		err    error
	}
)

func NewService(out io.Writer, logger *zerolog.Logger) *Service {
	return &Service{
		out:    out,
		logger: logger,
	}
}

// ProvideGreeter builds the service greeting on the standard output.
//
// @provider named="greeting.service"
func ProvideGreeter(
	out io.Writer, // @inject named="greeting.output"
	logger *zerolog.Logger,
) Greeter {
	return NewService(out, logger)
}

// SayHello writes "Hello, World!" and a line feed. A failed write is kept for Err.
func (s *Service) SayHello() {
	_, s.err = io.WriteString(s.out, message)
	if s.err != nil {
		s.logger.Error().Err(s.err).Msg("failed to write greeting")
		return
	}
	s.logger.Debug().Msg("greeted the world")
}

func (s *Service) Err() error {
	return s.err
}
