// Package lockkit provides lock-based synchronization primitives for
// protecting shared mutable state: a failure-aware one-time
// initialization guard, a writer-preference reader-writer lock with
// misuse detection, and a re-entrant mutex.
//
// The primitives optimize for correctness under moderate contention,
// not for maximum throughput; they are deliberately lock-based, not
// lock-free.
//
// # Quick Start
//
//	var cfg lockkit.Once
//
//	func config() (*Config, error) {
//		err := cfg.Do(loadConfig)
//		...
//	}
//
//	rw := lockkit.NewRWMutex()
//	rw.WithRLock(func() { /* shared read */ })
//	rw.WithLock(func() { /* exclusive write */ })
//
// # API Overview
//
// The package provides:
//   - One-time initialization: [Once], [Lazy]
//   - Shared/exclusive locking: [RWMutex], [Guarded]
//   - Re-entrant locking: [RecursiveMutex]
//   - Misuse reporting: [LockMisuseError]
//   - Version information: [GetInfo], [Version]
//
// A reference consumer, a concurrent read-mostly DNS cache built on
// [RWMutex], lives in the domaincache subpackage.
//
// # Error Handling
//
// lockkit distinguishes two failure classes. Data-dependent failures
// — an initializer or fetch returning an error — are returned to the
// caller and are retryable. Programmer errors — releasing a lock that
// is not held, unbalanced release counts, shared-to-exclusive upgrade
// attempts — indicate a broken invariant and cause a panic carrying
// a [LockMisuseError] at the point of misuse.
//
// # Why Not Double-Checked Locking
//
// The classic lazy-initialization shortcut reads an unsynchronized
// "ready" flag, takes a lock only on the miss path, and re-checks:
//
//	if !ready {          // unsynchronized read: data race
//		mu.Lock()
//		if !ready {
//			obj = build()
//			ready = true // racing write
//		}
//		mu.Unlock()
//	}
//	obj.Use()
//
// The flag read races the locked write, so a goroutine can observe
// ready == true before the writes that built obj are visible to it,
// and operate on a half-initialized object. [Once] closes the hole by
// making the fast-path check an atomic acquire-load paired with a
// release-store performed only after the initializer has returned:
// the check and the completion transition share one synchronization
// relation instead of racing.
//
// # Deadlock Detection
//
// Building with the "lockdebug" tag swaps the plain mutex underneath
// every primitive for a deadlock-detecting one, which reports
// lock-order inversions and suspiciously long holds. Semantics are
// unchanged; see [GetInfo] to query which variant is active.
package lockkit
