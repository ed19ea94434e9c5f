package services

import "sync"

// syncGuard serializes syncs per user. A second sync for the same user while
// one is running is rejected rather than queued, because the caller holds an
// open HTTP request and queuing would only pile up identical work.
type syncGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newSyncGuard() *syncGuard {
	return &syncGuard{active: make(map[string]struct{})}
}

// tryAcquire reports whether the caller may start a sync for userID.
func (g *syncGuard) tryAcquire(userID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[userID]; busy {
		return false
	}
	g.active[userID] = struct{}{}
	return true
}

// release marks the user's sync as finished.
func (g *syncGuard) release(userID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, userID)
}
