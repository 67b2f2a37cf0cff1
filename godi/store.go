package godi

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Store keeps the built components, one per name.
type Store struct {
	inner sync.Map
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Put(name Name, comp reflect.Value) {
	s.inner.Store(name, comp)
}

func (s *Store) Get(name Name) (comp reflect.Value, found bool) {
	raw, found := s.inner.Load(name)
	if found {
		return raw.(reflect.Value), true
	}

	return reflect.Value{}, false
}

// ListNames returns the names of the stored components, sorted by their string representation.
func (s *Store) ListNames() []Name {
	names := make([]Name, 0)
	s.inner.Range(func(name, _ any) bool {
		names = append(names, name.(Name))
		return true
	})
	sort.Slice(names, func(i, j int) bool {
		return names[i].String() < names[j].String()
	})
	return names
}

func (s *Store) Close() error {
	closeErrors := make([]error, 0)
	s.inner.Range(func(name, rawComp any) bool {
		comp := rawComp.(reflect.Value)
		if !comp.IsValid() || !comp.Type().Implements(CloseableType) {
			return true
		}
		if comp.Kind() == reflect.Interface || comp.Kind() == reflect.Pointer {
			if comp.IsNil() {
				return true
			}
		}
		if err := comp.Interface().(Closeable).Close(); err != nil {
			closeErrors = append(
				closeErrors,
				fmt.Errorf("failed to close component %s:\n\t%w", name, err),
			)
		}
		return true // continue iteration
	})

	return errors.Join(closeErrors...)
}
