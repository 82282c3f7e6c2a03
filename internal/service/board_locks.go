package service

import "sync"

// boardLocks serialises mutations per board id. Entries are dropped once no
// caller holds or waits on them.
type boardLocks struct {
	mu    sync.Mutex
	locks map[string]*boardLock
}

type boardLock struct {
	mu      sync.Mutex
	waiters int
}

func newBoardLocks() *boardLocks {
	return &boardLocks{locks: make(map[string]*boardLock)}
}

// Lock blocks until the board is free and returns the matching unlock.
func (l *boardLocks) Lock(id string) func() {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &boardLock{}
		l.locks[id] = entry
	}
	entry.waiters++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.waiters--
		if entry.waiters == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *boardLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
