package lockkit

// Guarded couples a value of type T with the RWMutex protecting it,
// so the value cannot be reached without going through the lock. The
// design keeps the "which lock protects which data" relationship in
// the type instead of in documentation.
//
// Because the lock lives inside Guarded, a Guarded value inherits the
// lock's no-copy semantics; it is always handled through the pointer
// returned by NewGuarded, and copying that pointer shares the lock
// rather than splitting it.
type Guarded[T any] struct {
	rw    *RWMutex
	value T
}

// NewGuarded returns a Guarded wrapping value behind a fresh lock.
func NewGuarded[T any](value T) *Guarded[T] {
	return &Guarded[T]{rw: NewRWMutex(), value: value}
}

// Read runs fn with the lock held in shared mode. fn must treat the
// value as read-only; mutating through the pointer under a shared
// hold is a data race with other readers.
func (g *Guarded[T]) Read(fn func(*T)) {
	g.rw.WithRLock(func() { fn(&g.value) })
}

// Write runs fn with the lock held in exclusive mode. fn may freely
// mutate the value.
func (g *Guarded[T]) Write(fn func(*T)) {
	g.rw.WithLock(func() { fn(&g.value) })
}
