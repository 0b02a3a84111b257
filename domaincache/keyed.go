package domaincache

import (
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/kolkov/lockkit"
	"github.com/kolkov/lockkit/internal/lock"
)

// KeyedMutex manages an independent mutex per string key, created
// lazily on first acquisition. It serializes work on one domain
// without contending work on any other.
//
// Mutexes are never removed once created; domain names form a small,
// stable key set, so entries live for the lifetime of the cache.
type KeyedMutex struct {
	locks *xsync.MapOf[string, *lock.Mutex]
}

// NewKeyedMutex returns an empty keyed mutex registry.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: xsync.NewMapOf[string, *lock.Mutex]()}
}

// Lock acquires the mutex for key, creating it on first use. Several
// goroutines may race to create the entry; LoadOrCompute guarantees
// they all acquire the same mutex.
func (km *KeyedMutex) Lock(key string) {
	mu, _ := km.locks.LoadOrCompute(key, func() *lock.Mutex {
		return &lock.Mutex{}
	})
	mu.Lock()
}

// Unlock releases the mutex for key. Unlocking a key that was never
// locked panics with a *lockkit.LockMisuseError: it means release and
// acquire calls are not paired, which is a programmer error, not a
// condition to ignore.
func (km *KeyedMutex) Unlock(key string) {
	mu, ok := km.locks.Load(key)
	if !ok {
		panic(&lockkit.LockMisuseError{
			Op:     "KeyedMutex.Unlock",
			Reason: "release of a key that was never locked",
		})
	}
	mu.Unlock()
}

// With runs fn while holding the mutex for key, releasing it on every
// exit path including a panic out of fn.
func (km *KeyedMutex) With(key string, fn func()) {
	km.Lock(key)
	defer km.Unlock(key)
	fn()
}
