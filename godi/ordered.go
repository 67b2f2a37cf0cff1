package godi

import (
	"sort"
	"sync"
	"sync/atomic"
)

// orderedList is kept sorted by compare. Readers get the current snapshot without locking,
// writers replace it. An item goes before the items it compares equal to.
type orderedList[T any] struct {
	mu       sync.Mutex
	snapshot atomic.Pointer[[]T]
	compare  func(a, b T) int
}

func newOrderedList[T any](compare func(a, b T) int) *orderedList[T] {
	l := &orderedList[T]{compare: compare}
	l.snapshot.Store(&[]T{})
	return l
}

func (l *orderedList[T]) insert(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	current := *l.snapshot.Load()
	pos := sort.Search(len(current), func(i int) bool {
		return l.compare(current[i], item) >= 0
	})
	// the capped prefix forces a copy
	next := append(append(current[:pos:pos], item), current[pos:]...)
	l.snapshot.Store(&next)
}

func (l *orderedList[T]) items() []T {
	return *l.snapshot.Load()
}

// buildLocks gives a mutex per component name, so a singleton is built once.
// A mutex is forgotten when nobody holds or waits for it anymore.
type buildLocks struct {
	mu     sync.Mutex
	byName map[Name]*nameLock
}

type nameLock struct {
	sync.Mutex
	users int
}

func newBuildLocks() *buildLocks {
	return &buildLocks{byName: make(map[Name]*nameLock)}
}

// lock blocks until the name is free and returns the function releasing it.
func (b *buildLocks) lock(name Name) (unlock func()) {
	b.mu.Lock()
	l, found := b.byName[name]
	if !found {
		l = &nameLock{}
		b.byName[name] = l
	}
	l.users++
	b.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		b.mu.Lock()
		defer b.mu.Unlock()
		if l.users--; l.users == 0 {
			delete(b.byName, name)
		}
	}
}
