package port

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shinji-kodama/portlauncher/internal/model"
)

const (
	// DefaultRangeStart is the first port handed out.
	DefaultRangeStart = 8000

	// DefaultRangeEnd is the exclusive upper bound of the range. Together
	// with DefaultRangeStart it gives 1000 assignable ports.
	DefaultRangeEnd = 9000
)

// ErrNoFreePorts is returned when every port in the range is assigned.
var ErrNoFreePorts = errors.New("no free ports available")

// Prober reports whether a port is free on the host. *Scanner satisfies it.
type Prober interface {
	IsPortAvailable(port int, protocol string) bool
}

// FindFreePort returns the lowest port in [start, end) that does not appear
// as a value in used.
//
// used maps application name to assigned port. FindFreePort only reads it;
// recording the result is the caller's job and must happen under the same
// lock as the call (see Table.Claim).
func FindFreePort(used map[string]int, start, end int) (int, error) {
	return findFreePort(used, start, end, nil)
}

// findFreePort is FindFreePort with an extra veto. skip may be nil.
func findFreePort(used map[string]int, start, end int, skip func(int) bool) (int, error) {
	// Build the set of taken ports once instead of walking every value
	// for every candidate.
	taken := make(map[int]struct{}, len(used))
	for _, p := range used {
		taken[p] = struct{}{}
	}

	for candidate := start; candidate < end; candidate++ {
		if _, ok := taken[candidate]; ok {
			continue
		}
		if skip != nil && skip(candidate) {
			continue
		}
		return candidate, nil
	}
	return 0, fmt.Errorf("%w in range %d-%d", ErrNoFreePorts, start, end-1)
}

// Table is the process-wide assignment table. The zero value is not usable;
// create one with NewTable and share the pointer.
//
// Entries are never removed. Launching the same name again replaces its
// entry, which implicitly makes the previous port available again.
type Table struct {
	mu          sync.Mutex
	start       int
	end         int
	assignments map[string]model.Assignment

	// prober, when set, vetoes candidates that are bound on the host.
	prober Prober

	// now is swapped in tests.
	now func() time.Time
}

// NewTable creates an empty Table that hands out ports in [start, end).
func NewTable(start, end int) *Table {
	return &Table{
		start:       start,
		end:         end,
		assignments: make(map[string]model.Assignment),
		now:         time.Now,
	}
}

// SetProber attaches a host probe. Must be called before the table is
// shared between goroutines.
func (t *Table) SetProber(p Prober) {
	t.prober = p
}

// Range returns the [start, end) bounds the table allocates from.
func (t *Table) Range() (start, end int) {
	return t.start, t.end
}

// Claim finds the lowest free port and records it for name in a single
// critical section. launchID is stored alongside for log correlation.
//
// On ErrNoFreePorts the table is left unchanged.
func (t *Table) Claim(name, launchID string) (model.Assignment, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	used := make(map[string]int, len(t.assignments))
	for n, a := range t.assignments {
		used[n] = a.Port
	}

	var skip func(int) bool
	if t.prober != nil {
		skip = func(p int) bool { return !t.prober.IsPortAvailable(p, "tcp") }
	}

	p, err := findFreePort(used, t.start, t.end, skip)
	if err != nil {
		return model.Assignment{}, err
	}

	a := model.Assignment{
		Name:       name,
		Port:       p,
		LaunchID:   launchID,
		AssignedAt: t.now(),
	}
	t.assignments[name] = a
	return a, nil
}

// Lookup returns the current assignment for name.
func (t *Table) Lookup(name string) (model.Assignment, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	a, ok := t.assignments[name]
	return a, ok
}

// Len returns the number of applications holding a port.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.assignments)
}

// Snapshot returns a copy of all assignments sorted by port.
func (t *Table) Snapshot() []model.Assignment {
	t.mu.Lock()
	out := make([]model.Assignment, 0, len(t.assignments))
	for _, a := range t.assignments {
		out = append(out, a)
	}
	t.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Port < out[j].Port
	})
	return out
}
