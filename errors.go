package lockkit

import "fmt"

// LockMisuseError describes a broken locking invariant: a release by a
// goroutine that does not hold the lock, an unbalanced release count,
// or a shared-to-exclusive upgrade attempt on the same lock.
//
// Misuse is a programmer error, not a transient condition, so lockkit
// surfaces it immediately by panicking with a *LockMisuseError rather
// than returning it or silently correcting the state. Tests can assert
// on the panic value with errors.As after recover.
type LockMisuseError struct {
	// Op is the operation that detected the misuse, e.g. "RWMutex.Lock".
	Op string

	// Reason states which invariant the caller broke.
	Reason string
}

func (e *LockMisuseError) Error() string {
	return fmt.Sprintf("lockkit: %s: %s", e.Op, e.Reason)
}

// misuse panics with a *LockMisuseError for the given operation.
func misuse(op, reason string) {
	panic(&LockMisuseError{Op: op, Reason: reason})
}
