package memory

import (
	"sync"

	"github.com/google/uuid"
)

// TurnGuard serializes turns per session. Concurrent requests for the same
// session are processed one at a time; different sessions never block each
// other.
type TurnGuard struct {
	locks sync.Map // uuid.UUID -> *sync.Mutex
}

func NewTurnGuard() *TurnGuard {
	return &TurnGuard{}
}

// Lock acquires the session's mutex and returns the unlock func.
func (g *TurnGuard) Lock(sessionId uuid.UUID) func() {
	v, _ := g.locks.LoadOrStore(sessionId, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
