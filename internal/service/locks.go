package service

import (
	"sync"

	"github.com/google/uuid"
)

// tripLocks hands out one mutex per trip so that load, transition and persist
// of a selection run as a single writer within this process. Entries are
// dropped once nobody holds or waits for them.
type tripLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*tripLock
}

type tripLock struct {
	sync.Mutex
	refs int
}

func newTripLocks() *tripLocks {
	return &tripLocks{locks: make(map[uuid.UUID]*tripLock)}
}

// lock blocks until the trip's mutex is held and returns its release func.
func (l *tripLocks) lock(tripID uuid.UUID) (unlock func()) {
	l.mu.Lock()
	tl, ok := l.locks[tripID]
	if !ok {
		tl = &tripLock{}
		l.locks[tripID] = tl
	}
	tl.refs++
	l.mu.Unlock()

	tl.Lock()
	return func() {
		tl.Unlock()
		l.mu.Lock()
		tl.refs--
		if tl.refs == 0 {
			delete(l.locks, tripID)
		}
		l.mu.Unlock()
	}
}

func (l *tripLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
