package domaincache

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/kolkov/lockkit"
)

// Record is a resolved DNS record. The cache treats it as an opaque
// value; it is stored and returned whole, never piecewise.
type Record struct {
	Type  string // record type, e.g. "A", "AAAA", "PTR"
	Value string // resolved value, e.g. "192.0.2.10"
	TTL   uint32 // time to live in seconds
}

// Cache is a read-mostly mapping from domain name to resolved record,
// guarded by one reader-writer lock. A Cache must be created with New.
type Cache struct {
	// rw guards entries. Shared mode for lookups, exclusive mode for
	// mutations.
	rw      *lockkit.RWMutex
	entries map[string]Record

	// fetchMu serializes miss-path fetches per domain so concurrent
	// GetOrFetch calls for the same domain resolve it once. It is
	// deliberately separate from rw: a slow fetch holds only its own
	// domain's key, never the cache lock.
	fetchMu *KeyedMutex

	logger log.Logger
}

// New returns an empty cache. A nil logger is replaced by a nop
// logger, keeping the library silent by default.
func New(logger log.Logger) *Cache {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Cache{
		rw:      lockkit.NewRWMutex(),
		entries: make(map[string]Record),
		fetchMu: NewKeyedMutex(),
		logger:  log.With(logger, "component", "domaincache"),
	}
}

// Find looks up the record for domain under the lock's shared mode.
// The second result is false when the domain is absent. Concurrent
// Find calls do not block each other.
func (c *Cache) Find(domain string) (Record, bool) {
	c.rw.RLock()
	defer c.rw.RUnlock()
	rec, ok := c.entries[domain]
	return rec, ok
}

// Upsert inserts or overwrites the record for domain under the lock's
// exclusive mode.
func (c *Cache) Upsert(domain string, rec Record) {
	c.rw.Lock()
	defer c.rw.Unlock()
	c.entries[domain] = rec
	level.Debug(c.logger).Log("msg", "record stored", "domain", domain, "type", rec.Type, "ttl", rec.TTL)
}

// Delete removes the record for domain and reports whether an entry
// was present.
func (c *Cache) Delete(domain string) bool {
	c.rw.Lock()
	defer c.rw.Unlock()
	_, ok := c.entries[domain]
	if ok {
		delete(c.entries, domain)
		level.Debug(c.logger).Log("msg", "record removed", "domain", domain)
	}
	return ok
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	c.rw.RLock()
	defer c.rw.RUnlock()
	return len(c.entries)
}

// GetOrFetch returns the cached record for domain, resolving and
// caching it with fetch on a miss. Concurrent calls for the same
// domain are serialized on a per-domain mutex, so fetch runs at most
// once per miss; calls for different domains fetch in parallel.
//
// A fetch error is returned to the caller and nothing is cached, so
// the next call for the domain retries the fetch.
func (c *Cache) GetOrFetch(domain string, fetch func() (Record, error)) (Record, error) {
	if rec, ok := c.Find(domain); ok {
		return rec, nil
	}

	c.fetchMu.Lock(domain)
	defer c.fetchMu.Unlock(domain)

	// Re-check: a caller that held the key before us may have already
	// resolved and stored the record.
	if rec, ok := c.Find(domain); ok {
		return rec, nil
	}

	rec, err := fetch()
	if err != nil {
		level.Warn(c.logger).Log("msg", "fetch failed", "domain", domain, "err", err)
		return Record{}, err
	}
	c.Upsert(domain, rec)
	return rec, nil
}
