// Package guard implements the per-entity re-entrancy guard for
// mutating transitions.  While a transition for a given entity id is
// in flight, a second request for the same id is rejected; requests
// for different ids proceed concurrently.  The guard is a boolean
// in-flight flag per key, never a lock held across a blocking
// operation, and is released unconditionally whether the transition
// succeeded or failed.
package guard

import (
	"fmt"
	"sync"
)

// Guard tracks in-flight transition keys.
type Guard struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

// New returns an empty guard.
func New() *Guard {
	return &Guard{inflight: make(map[string]struct{})}
}

// Key builds the guard key for an entity kind and id.
func Key(kind string, id uint64) string {
	return fmt.Sprintf("%s:%d", kind, id)
}

// TryAcquire marks the key in flight.  It returns false when a
// transition for the same key is already running.
func (g *Guard) TryAcquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inflight[key]; busy {
		return false
	}
	g.inflight[key] = struct{}{}
	return true
}

// Release clears the key.  Releasing a key that is not held is a
// no-op so deferred releases stay safe on every path.
func (g *Guard) Release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inflight, key)
}
