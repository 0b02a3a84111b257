// Copyright 2025 The lockkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build lockdebug

package lock

import (
	"github.com/sasha-s/go-deadlock"
)

const debugBuild = true

// Mutex is a mutual-exclusion lock with deadlock detection applied.
// See the !lockdebug variant for the production type.
type Mutex struct {
	deadlock.Mutex
}
