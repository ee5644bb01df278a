package hashroute

import "sync"

// MemoryLocation is an in-process Location with a history stack.
//
// Fragment changes are queued rather than delivered immediately; Dispatch
// drains the queue the way the browser event loop delivers hashchange
// events. Setting the fragment to its current value queues nothing.
type MemoryLocation struct {
	mu        sync.Mutex
	entries   []string
	index     int
	pending   int
	listeners map[int]func()
	nextID    int

	dispatchMu sync.Mutex
}

// NewMemoryLocation creates a location whose only history entry is hash.
func NewMemoryLocation(hash string) *MemoryLocation {
	return &MemoryLocation{
		entries:   []string{hash},
		listeners: make(map[int]func()),
	}
}

// Hash returns the current fragment.
func (l *MemoryLocation) Hash() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries[l.index]
}

// SetHash pushes or replaces the current entry.
func (l *MemoryLocation) SetHash(hash string, replace bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.entries[l.index] == hash {
		return
	}
	if replace {
		l.entries[l.index] = hash
	} else {
		l.entries = append(l.entries[:l.index+1], hash)
		l.index++
	}
	l.pending++
}

// Back moves one entry back, if possible.
func (l *MemoryLocation) Back() {
	l.traverse(-1)
}

// Forward moves one entry forward, if possible.
func (l *MemoryLocation) Forward() {
	l.traverse(1)
}

func (l *MemoryLocation) traverse(delta int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.index + delta
	if next < 0 || next >= len(l.entries) {
		return
	}
	changed := l.entries[next] != l.entries[l.index]
	l.index = next
	if changed {
		l.pending++
	}
}

// Listen registers fn for change notifications.
func (l *MemoryLocation) Listen(fn func()) (stop func()) {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.listeners[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.listeners, id)
		l.mu.Unlock()
	}
}

// Len returns the number of history entries.
func (l *MemoryLocation) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Pending returns the number of undelivered change notifications.
func (l *MemoryLocation) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}

// Dispatch delivers queued notifications one at a time until none remain,
// including any queued by listeners while dispatching. It returns the
// number delivered.
func (l *MemoryLocation) Dispatch() int {
	l.dispatchMu.Lock()
	defer l.dispatchMu.Unlock()

	delivered := 0
	for {
		l.mu.Lock()
		if l.pending == 0 {
			l.mu.Unlock()
			return delivered
		}
		l.pending--
		listeners := make([]func(), 0, len(l.listeners))
		for id := 0; id < l.nextID; id++ {
			if fn, ok := l.listeners[id]; ok {
				listeners = append(listeners, fn)
			}
		}
		l.mu.Unlock()

		for _, fn := range listeners {
			fn()
		}
		delivered++
	}
}
