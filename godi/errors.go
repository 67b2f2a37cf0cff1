package godi

import (
	"errors"
	"fmt"
)

var (
	ErrNoProvider        = errors.New("no providers found")
	ErrMultipleProviders = errors.New("multiple providers found")
)

// ResolutionError is returned when a request can not be matched to exactly the
// number of providers it expects.
type ResolutionError struct {
	Query string
	Found int
}

func (e *ResolutionError) Error() string {
	if e.Found == 0 {
		return fmt.Sprintf("%s for %s", ErrNoProvider, e.Query)
	}
	return fmt.Sprintf("%s for %s, expected one and only one, got %d", ErrMultipleProviders, e.Query, e.Found)
}

func (e *ResolutionError) Unwrap() error {
	if e.Found == 0 {
		return ErrNoProvider
	}
	return ErrMultipleProviders
}
