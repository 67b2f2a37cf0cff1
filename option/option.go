// Package option holds the functional options shared by the resolver and the config loader.
package option

// Option mutates the options struct T.
type Option[T any] func(opts *T)

// Apply runs the options in order on defaults and returns it.
func Apply[T any](defaults *T, opts ...Option[T]) *T {
	for _, opt := range opts {
		if opt != nil {
			opt(defaults)
		}
	}
	return defaults
}
