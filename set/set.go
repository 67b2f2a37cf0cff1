// Package set is a map backed set of comparable values.
package set

type Set[T comparable] map[T]struct{}

func New[T comparable](values ...T) Set[T] {
	s := make(Set[T], len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts value and tells if it was missing.
func (s Set[T]) Add(value T) bool {
	if s.Contains(value) {
		return false
	}
	s[value] = struct{}{}
	return true
}

func (s Set[T]) Contains(value T) bool {
	_, found := s[value]
	return found
}

func (s Set[T]) Len() int {
	return len(s)
}
