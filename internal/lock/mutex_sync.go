// Copyright 2025 The lockkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !lockdebug

package lock

import "sync"

const debugBuild = false

// Mutex is a plain mutual-exclusion lock. In the default build it is
// equivalent to sync.Mutex; with the "lockdebug" build tag it applies
// deadlock detection.
//
// The zero value is an unlocked mutex. A Mutex must not be copied
// after first use.
type Mutex struct {
	sync.Mutex
}
