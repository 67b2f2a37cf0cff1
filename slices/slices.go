// Package slices holds the generic helpers the generator renders with.
package slices

// Map returns mapper applied to every item, in order.
func Map[F any, T any](items []F, mapper func(F) T) []T {
	mapped := make([]T, 0, len(items))
	for _, item := range items {
		mapped = append(mapped, mapper(item))
	}
	return mapped
}

// Filter returns the items matching keep, nil when none does.
func Filter[T any](items []T, keep func(T) bool) []T {
	var kept []T
	for _, item := range items {
		if keep(item) {
			kept = append(kept, item)
		}
	}
	return kept
}
