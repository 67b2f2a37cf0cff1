package godi

import (
	"fmt"
	"slices"
	"strings"
)

// Tracker follows the components being built along a resolution path, to detect cycles.
type Tracker struct {
	path []Name
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// NewTrackerFrom starts a branch of the resolution path, pushes on it leave other untouched.
func NewTrackerFrom(other *Tracker) *Tracker {
	return &Tracker{path: slices.Clone(other.path)}
}

// Push enters the build of n, it fails when n is already being built on this path.
func (tracker *Tracker) Push(n Name) error {
	if idx := slices.Index(tracker.path, n); idx >= 0 {
		return fmt.Errorf("cycle found:\n%s", formatCycle(append(slices.Clone(tracker.path[idx:]), n)))
	}
	tracker.path = append(tracker.path, n)
	return nil
}

func (tracker *Tracker) Pop() Name {
	if len(tracker.path) == 0 {
		panic("tracker: pop from empty path")
	}
	n := tracker.path[len(tracker.path)-1]
	tracker.path = tracker.path[:len(tracker.path)-1]
	return n
}

// formatCycle indents each step of the cycle one tab further.
func formatCycle(cycle []Name) string {
	var b strings.Builder
	for i, n := range cycle {
		b.WriteString(strings.Repeat("\t", i))
		if i > 0 {
			b.WriteString(" -> ")
		}
		b.WriteString(n.String())
		b.WriteByte('\n')
	}
	return b.String()
}
