package lockkit

import (
	"sync/atomic"

	"github.com/kolkov/lockkit/internal/lock"
)

// Once runs an initializer exactly once across any number of
// concurrent callers, with a retry on failure.
//
// It differs from sync.Once in two ways:
//
//  1. The initializer may fail. An error returned by the initializer
//     leaves the guard in its not-started state, so a later call
//     re-attempts initialization instead of wedging the guard into a
//     permanently broken "completed" state. The error is returned to
//     the caller whose attempt ran the initializer; callers that were
//     blocked behind a failed attempt re-attempt themselves.
//  2. Completion is observable through Done.
//
// Memory visibility: every caller whose Do returns nil observes all
// writes performed by the single successful initializer run. The fast
// path is an atomic acquire-load of the completion flag, paired with
// the release-store executed after the initializer returns — the safe
// form of the check that the double-checked-locking idiom gets wrong.
// A plain (non-atomic) flag read racing the locked write would be a
// data race on both the flag and the guarded object, and could expose
// a handle to an object whose construction is not yet visible.
//
// The zero value is ready to use. A Once must not be copied after
// first use.
type Once struct {
	// done is 1 once an initializer run has completed successfully.
	// It is set with a release store strictly after the initializer
	// returns, and read with an acquire load on the fast path.
	// done==0 with mu held is the "in progress" state.
	done atomic.Uint32

	// mu serializes initializer attempts so that losers of the race
	// block until the winner's run has fully completed (or failed).
	mu lock.Mutex
}

// Do calls init and marks the guard complete if — and only if — init
// returns nil. Across all concurrent calls on the same guard, init
// runs on exactly one goroutine at a time, and at most one run ever
// succeeds. Do only returns nil after a successful run has fully
// completed, on this goroutine or another.
//
// If init returns an error, Do returns that error unchanged and the
// guard stays retryable: the next Do call attempts initialization
// again. If init panics, the panic propagates and the guard likewise
// stays retryable.
//
// Do(nil) panics with a *LockMisuseError.
//
// Because Do blocks until the in-flight run returns, init must not
// call Do on the same guard; doing so deadlocks.
func (o *Once) Do(init func() error) error {
	if init == nil {
		misuse("Once.Do", "nil initializer")
	}
	if o.done.Load() == 1 {
		return nil
	}
	return o.doSlow(init)
}

func (o *Once) doSlow(init func() error) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	// Re-check under the lock: another caller may have completed the
	// run while we were blocked. This second check is safe precisely
	// because it happens inside the same synchronization relation as
	// the store below.
	if o.done.Load() == 1 {
		return nil
	}
	if err := init(); err != nil {
		return err
	}
	o.done.Store(1)
	return nil
}

// Done reports whether a successful initializer run has completed.
// A true result carries the same visibility guarantee as Do returning
// nil.
func (o *Once) Done() bool {
	return o.done.Load() == 1
}

// Lazy is a lazily-initialized value of type T guarded by a Once.
//
// It implements the guarded-singleton pattern: one instance, built on
// first use, accessed through a single accessor. All callers of Get
// share the one successfully constructed value; construction errors
// are returned and re-attempted on the next Get.
//
//	var conn = lockkit.NewLazy(dialBackend)
//
//	func handle() error {
//		c, err := conn.Get()
//		...
//	}
type Lazy[T any] struct {
	once  Once
	init  func() (T, error)
	value T
}

// NewLazy returns a Lazy that builds its value with init on the first
// Get call. init must not be nil.
func NewLazy[T any](init func() (T, error)) *Lazy[T] {
	if init == nil {
		misuse("NewLazy", "nil initializer")
	}
	return &Lazy[T]{init: init}
}

// Get returns the lazily-constructed value, building it if no
// successful construction has happened yet. Concurrent first calls
// run the constructor exactly once; every caller that receives a nil
// error observes the fully constructed value.
func (l *Lazy[T]) Get() (T, error) {
	err := l.once.Do(func() error {
		v, err := l.init()
		if err != nil {
			return err
		}
		l.value = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return l.value, nil
}
