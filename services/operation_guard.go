package services

import (
	"sync"
	"sync/atomic"
)

// OperationGuard keeps load and save from overlapping each other and keeps
// edits out of the store while it is being flushed or overwritten.
type OperationGuard struct {
	busy atomic.Bool
	mu   sync.RWMutex
}

// Exclusive is taken by load and save. A second caller fails fast instead
// of queueing.
func (g *OperationGuard) Exclusive() (release func(), err error) {
	if !g.busy.CompareAndSwap(false, true) {
		return nil, ErrOperationInProgress
	}
	g.mu.Lock()
	return func() {
		g.mu.Unlock()
		g.busy.Store(false)
	}, nil
}

// Shared is taken by every mutation outside load and save.
func (g *OperationGuard) Shared() (release func(), err error) {
	if g.busy.Load() {
		return nil, ErrOperationInProgress
	}
	g.mu.RLock()
	return g.mu.RUnlock, nil
}

// Busy reports whether a load or save is running.
func (g *OperationGuard) Busy() bool {
	return g.busy.Load()
}
