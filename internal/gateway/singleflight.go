package gateway

import (
	"fmt"
	"sync"
)

// busyGuard enforces single-flight per feature instance. The site's UI
// disables triggers while a request runs, but the gateway does not trust
// that: a second concurrent call for the same feature fails with ErrBusy.
type busyGuard struct {
	mu   sync.Mutex
	busy map[string]bool
}

func newBusyGuard() *busyGuard {
	return &busyGuard{busy: make(map[string]bool)}
}

// acquire marks the feature as in flight, or fails if it already is.
func (g *busyGuard) acquire(feature string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy[feature] {
		return fmt.Errorf("%s: %w", feature, ErrBusy)
	}
	g.busy[feature] = true
	return nil
}

func (g *busyGuard) release(feature string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.busy, feature)
}
