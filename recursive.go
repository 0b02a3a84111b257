// Copyright 2025 The lockkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lockkit

import (
	"sync"

	"github.com/petermattis/goid"

	"github.com/kolkov/lockkit/internal/lock"
)

// RecursiveMutex is a re-entrant mutual-exclusion lock: the goroutine
// holding it may acquire it again without blocking itself. Each
// acquisition increments a depth counter; the lock becomes available
// to other goroutines only after the owner has released it as many
// times as it acquired it.
//
// RecursiveMutex is an escape hatch, not a recommended design. The
// usual reason to reach for it — a locked public method calling
// another locked public method on the same value — is better handled
// by extracting the shared logic into an unexported method that
// assumes the lock is held, and having every public entry point
// acquire the lock once:
//
//	func (s *Store) Put(k, v string) {
//		s.mu.Lock()
//		defer s.mu.Unlock()
//		s.putLocked(k, v)
//	}
//
//	// putLocked requires s.mu to be held.
//	func (s *Store) putLocked(k, v string) { ... }
//
// Holding a lock across a public call boundary while invariants are
// mid-mutation is fragile; prefer the refactor.
//
// A RecursiveMutex must be created with NewRecursiveMutex and must
// not be copied after first use.
type RecursiveMutex struct {
	mu   lock.Mutex // guards owner and depth; backs cond
	cond *sync.Cond // waiters for depth to reach 0

	// owner is the goroutine ID of the current holder, 0 when free.
	// Invariant: depth > 0 iff owner != 0.
	owner int64
	depth int
}

// NewRecursiveMutex returns an unlocked re-entrant mutex.
func NewRecursiveMutex() *RecursiveMutex {
	rm := &RecursiveMutex{}
	rm.cond = sync.NewCond(&rm.mu)
	return rm
}

// Lock acquires the mutex. If the calling goroutine already owns it,
// the acquisition depth is incremented and Lock returns immediately;
// otherwise Lock blocks until the mutex is free and takes ownership
// at depth 1.
func (rm *RecursiveMutex) Lock() {
	if rm.cond == nil {
		misuse("RecursiveMutex.Lock", "RecursiveMutex used without NewRecursiveMutex")
	}
	gid := goid.Get()

	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.owner == gid {
		rm.depth++
		return
	}
	for rm.owner != 0 {
		rm.cond.Wait()
	}
	rm.owner = gid
	rm.depth = 1
}

// Unlock releases one level of the mutex. When the depth reaches
// zero, ownership is cleared and one waiting goroutine (if any) is
// woken. Unlock of an unlocked mutex, or by a goroutine other than
// the owner, panics with a *LockMisuseError: acquire and release
// calls must be balanced and issued by the owning goroutine.
func (rm *RecursiveMutex) Unlock() {
	if rm.cond == nil {
		misuse("RecursiveMutex.Unlock", "RecursiveMutex used without NewRecursiveMutex")
	}
	gid := goid.Get()

	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.owner == 0 {
		misuse("RecursiveMutex.Unlock", "release of an unlocked lock")
	}
	if rm.owner != gid {
		misuse("RecursiveMutex.Unlock", "release by a goroutine that is not the owner")
	}
	rm.depth--
	if rm.depth == 0 {
		rm.owner = 0
		rm.cond.Signal()
	}
}

// Held reports whether the calling goroutine currently owns the
// mutex.
func (rm *RecursiveMutex) Held() bool {
	if rm.cond == nil {
		return false
	}
	gid := goid.Get()
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return rm.owner == gid
}

// With runs fn while holding the mutex, releasing it on every exit
// path including a panic out of fn.
func (rm *RecursiveMutex) With(fn func()) {
	rm.Lock()
	defer rm.Unlock()
	fn()
}
