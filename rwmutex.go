// Copyright 2025 The lockkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lockkit

import (
	"sync"

	"github.com/petermattis/goid"

	"github.com/kolkov/lockkit/internal/lock"
)

// RWMutex is a shared/exclusive (reader-writer) lock. The lock can be
// held by an arbitrary number of shared holders or by a single
// exclusive holder, never both.
//
// Starvation policy (writer preference): once a goroutine is waiting
// in Lock, new RLock calls block until that writer has acquired and
// released the lock. This keeps writers from starving under
// read-heavy load; readers cannot starve because they are all
// admitted together whenever no writer is active or waiting.
//
// Misuse detection: RWMutex tracks holders by goroutine ID. The
// following invariant violations are detected and surfaced as panics
// carrying *LockMisuseError instead of silently deadlocking or
// corrupting state:
//
//   - Lock by a goroutine already holding the lock in shared mode
//     (the forbidden shared-to-exclusive upgrade; upgrading is not
//     supported and would self-deadlock)
//   - Lock or RLock by the goroutine currently holding the lock
//     exclusively
//   - Unlock without an exclusive hold, or by a goroutine other than
//     the exclusive holder
//   - RUnlock by a goroutine holding no shared lock
//
// As a consequence of holder tracking, a shared or exclusive hold
// must be released by the goroutine that acquired it; handing a held
// lock to another goroutine for release is not supported.
//
// Re-entrant RLock by a goroutine already holding shared mode is
// granted immediately — the lock is already shared, so admitting an
// existing holder again cannot violate the mode invariant, and making
// it wait behind a pending writer would self-deadlock. Each RLock
// still requires a matching RUnlock.
//
// An RWMutex must be created with NewRWMutex and must not be copied
// or relocated while held.
type RWMutex struct {
	// mu is the ExclusiveLock collaborator guarding every field
	// below; it also backs both condition variables.
	mu lock.Mutex

	// readerGate blocks RLock callers while a writer is active or
	// waiting. Broadcast when the lock becomes available to readers.
	readerGate *sync.Cond

	// writerGate blocks Lock callers while the lock is held in either
	// mode. Signalled when the lock becomes free.
	writerGate *sync.Cond

	// readers maps the goroutine ID of each active shared holder to
	// its hold count. len(readers) > 0 means Shared mode.
	readers map[int64]int

	// writer is the goroutine ID of the exclusive holder, 0 when no
	// writer is active. Non-zero means Exclusive mode.
	writer int64

	// pendingWriters counts goroutines blocked in Lock. New readers
	// wait while this is non-zero (writer preference).
	pendingWriters int
}

// NewRWMutex returns an unlocked reader-writer lock.
func NewRWMutex() *RWMutex {
	rw := &RWMutex{
		readers: make(map[int64]int),
	}
	rw.readerGate = sync.NewCond(&rw.mu)
	rw.writerGate = sync.NewCond(&rw.mu)
	return rw
}

// ensure rejects use of a zero-value RWMutex with a clear error
// instead of a nil condition variable dereference.
func (rw *RWMutex) ensure(op string) {
	if rw.readerGate == nil {
		misuse(op, "RWMutex used without NewRWMutex")
	}
}

// RLock acquires the lock in shared mode, blocking while an exclusive
// holder is present or a Lock call is waiting. Multiple goroutines
// may hold shared mode simultaneously.
func (rw *RWMutex) RLock() {
	rw.ensure("RWMutex.RLock")
	gid := goid.Get()

	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.writer == gid {
		misuse("RWMutex.RLock", "shared acquisition while holding the lock exclusively")
	}
	if rw.readers[gid] > 0 {
		// Already a shared holder; grant immediately. See type docs.
		rw.readers[gid]++
		return
	}
	for rw.writer != 0 || rw.pendingWriters > 0 {
		rw.readerGate.Wait()
	}
	rw.readers[gid]++
}

// RUnlock releases one shared hold by the calling goroutine. When the
// last shared hold is released and writers are waiting, one writer is
// woken. RUnlock by a goroutine holding no shared lock panics with a
// *LockMisuseError.
func (rw *RWMutex) RUnlock() {
	rw.ensure("RWMutex.RUnlock")
	gid := goid.Get()

	rw.mu.Lock()
	defer rw.mu.Unlock()

	n := rw.readers[gid]
	if n == 0 {
		misuse("RWMutex.RUnlock", "shared release by a goroutine holding no shared lock")
	}
	if n == 1 {
		delete(rw.readers, gid)
	} else {
		rw.readers[gid] = n - 1
	}
	if len(rw.readers) == 0 && rw.pendingWriters > 0 {
		rw.writerGate.Signal()
	}
}

// Lock acquires the lock in exclusive mode, blocking until no shared
// or exclusive holder remains. While held, all other acquisitions in
// either mode block.
//
// Lock by a goroutine already holding shared mode is the forbidden
// upgrade and panics with a *LockMisuseError; waiting would deadlock,
// because the shared hold can never be released by a blocked caller.
func (rw *RWMutex) Lock() {
	rw.ensure("RWMutex.Lock")
	gid := goid.Get()

	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.writer == gid {
		misuse("RWMutex.Lock", "recursive exclusive acquisition")
	}
	if rw.readers[gid] > 0 {
		misuse("RWMutex.Lock", "shared-to-exclusive upgrade on the same lock")
	}
	rw.pendingWriters++
	for rw.writer != 0 || len(rw.readers) > 0 {
		rw.writerGate.Wait()
	}
	rw.pendingWriters--
	rw.writer = gid
}

// Unlock releases the exclusive hold. The next waiting writer is
// woken if one exists; otherwise all waiting readers are admitted.
// Unlock without holding exclusive mode, or by a goroutine other than
// the holder, panics with a *LockMisuseError.
func (rw *RWMutex) Unlock() {
	rw.ensure("RWMutex.Unlock")
	gid := goid.Get()

	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.writer == 0 {
		misuse("RWMutex.Unlock", "exclusive release of an unlocked lock")
	}
	if rw.writer != gid {
		misuse("RWMutex.Unlock", "exclusive release by a goroutine that is not the holder")
	}
	rw.writer = 0
	if rw.pendingWriters > 0 {
		rw.writerGate.Signal()
	} else {
		rw.readerGate.Broadcast()
	}
}

// TryRLock attempts to acquire shared mode without blocking and
// reports whether it succeeded. Unlike RLock, contention — including
// the caller's own exclusive hold — yields false rather than a block
// or a panic, since no deadlock can result from declining.
func (rw *RWMutex) TryRLock() bool {
	rw.ensure("RWMutex.TryRLock")
	gid := goid.Get()

	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.readers[gid] > 0 {
		rw.readers[gid]++
		return true
	}
	if rw.writer != 0 || rw.pendingWriters > 0 {
		return false
	}
	rw.readers[gid]++
	return true
}

// TryLock attempts to acquire exclusive mode without blocking and
// reports whether it succeeded.
func (rw *RWMutex) TryLock() bool {
	rw.ensure("RWMutex.TryLock")
	gid := goid.Get()

	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.writer != 0 || len(rw.readers) > 0 {
		return false
	}
	rw.writer = gid
	return true
}

// WithRLock runs fn while holding the lock in shared mode. The lock
// is released on every exit path, including a panic out of fn.
func (rw *RWMutex) WithRLock(fn func()) {
	rw.RLock()
	defer rw.RUnlock()
	fn()
}

// WithLock runs fn while holding the lock in exclusive mode. The lock
// is released on every exit path, including a panic out of fn.
func (rw *RWMutex) WithLock(fn func()) {
	rw.Lock()
	defer rw.Unlock()
	fn()
}

// RLocker returns a sync.Locker whose Lock and Unlock methods call
// RLock and RUnlock.
func (rw *RWMutex) RLocker() sync.Locker {
	return (*rLocker)(rw)
}

type rLocker RWMutex

func (r *rLocker) Lock()   { (*RWMutex)(r).RLock() }
func (r *rLocker) Unlock() { (*RWMutex)(r).RUnlock() }
