// File: services/inflight/inflight.go
package inflight

import (
	"errors"
	"sync"
)

// ErrBusy is returned when the same action is already running.
var ErrBusy = errors.New("request already in progress")

// Guard rejects a second submission of an action while the first is running.
type Guard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewGuard() *Guard {
	return &Guard{active: make(map[string]struct{})}
}

// Acquire marks key as running. The returned release must be called once the action ends.
func (g *Guard) Acquire(key string) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[key]; busy {
		return nil, ErrBusy
	}
	g.active[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.active, key)
			g.mu.Unlock()
		})
	}, nil
}

// Active reports how many actions are running.
func (g *Guard) Active() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.active)
}
