// Copyright 2025 The lockkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lock supplies the plain mutual-exclusion primitive that the
// higher-level lockkit types are built on.
//
// The primitives in the parent package never touch sync.Mutex directly;
// they acquire through lock.Mutex so that a single build tag switches
// the entire module between the standard library mutex and a
// deadlock-detecting one:
//
//	go build ./...                 // sync.Mutex (production)
//	go build -tags lockdebug ./... // deadlock.Mutex (debugging)
//
// The lockdebug variant wraps github.com/sasha-s/go-deadlock, which
// reports lock-order inversions and acquisitions held past a timeout.
// It is strictly a diagnostic aid: both variants provide identical
// mutual-exclusion semantics and satisfy sync.Locker, so either can
// back a sync.Cond.
package lock

// Debug reports whether the deadlock-detecting mutex variant was
// compiled in (build tag "lockdebug").
const Debug = debugBuild
