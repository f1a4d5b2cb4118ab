// Package trylock provides a non-reentrant mutex that never blocks: callers
// either acquire it immediately or skip their work.
package trylock

import "sync/atomic"

// Mutex is safe for concurrent use. The zero value is unlocked.
type Mutex struct {
	held atomic.Bool
}

// TryAcquire takes the lock if it is free and reports whether it did.
func (m *Mutex) TryAcquire() bool {
	return m.held.CompareAndSwap(false, true)
}

// Release frees the lock. Releasing an unlocked Mutex is a no-op.
func (m *Mutex) Release() {
	m.held.Store(false)
}

// Held reports whether the lock is currently taken.
func (m *Mutex) Held() bool {
	return m.held.Load()
}
