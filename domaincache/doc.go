// Package domaincache implements a concurrent read-mostly cache of
// resolved DNS records, keyed by domain name. It is the reference
// consumer for the lockkit primitives: lookups run under the shared
// mode of a single lockkit.RWMutex, mutations under its exclusive
// mode, and the miss path coalesces resolver calls per domain through
// a keyed mutex so that one slow fetch never serializes the whole
// cache.
//
// Concurrency contract:
//   - Find calls from any number of goroutines proceed without
//     blocking each other.
//   - Upsert blocks, and is blocked by, every concurrent Find and
//     Upsert.
//   - No reader ever observes a partially written record; an absent
//     domain yields an explicit miss, never undefined state.
//
// Example:
//
//	cache := domaincache.New(logger)
//	cache.Upsert("example.com", domaincache.Record{Type: "A", Value: "192.0.2.10", TTL: 300})
//	rec, ok := cache.Find("example.com")
package domaincache
