package service

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTripLocks_SerializesAndReleases(t *testing.T) {
	locks := newTripLocks()
	tripID := uuid.New()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock(tripID)
			defer unlock()

			mu.Lock()
			inside++
			maxSeen = max(maxSeen, inside)
			mu.Unlock()

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Zero(t, locks.size(), "idle trips hold no entry")
}

func TestTripLocks_IndependentTrips(t *testing.T) {
	locks := newTripLocks()

	unlockA := locks.lock(uuid.New())
	unlockB := locks.lock(uuid.New()) // must not block on A

	assert.Equal(t, 2, locks.size())
	unlockA()
	unlockB()
	assert.Zero(t, locks.size())
}
