package app

import (
	"io"
	"os"
)

// NewOutput gives the standard output, read when the greeting service is built.
//
// @provider named="greeting.output"
func NewOutput() io.Writer {
	return os.Stdout
}
