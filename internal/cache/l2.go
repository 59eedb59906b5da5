package cache

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Kind distinguishes the categories of data L2 holds, each with its own TTL.
type Kind string

const (
	KindChunk  Kind = "chunk"  // chunk/entity lookups
	KindSearch Kind = "search" // search results
	KindGraph  Kind = "graph"  // graph traversal/query results
)

// Default per-kind TTLs, as suggested by the Three-tier Cache contract.
var DefaultTTLByKind = map[Kind]time.Duration{
	KindChunk:  60 * time.Second,
	KindSearch: 30 * time.Second,
	KindGraph:  120 * time.Second,
}

// DefaultL2Size is the default number of entries retained per kind.
const DefaultL2Size = 2000

// L2Cache is a process-shared key/value cache with per-kind TTLs, modeling
// the "process-external shared cache" tier even though this in-process
// implementation never leaves the process - the contract (TTL expiry,
// independent eviction per kind, transparent-on-failure reads) is what
// matters to callers, not the backing transport.
type L2Cache struct {
	byKind map[Kind]*expirable.LRU[string, []byte]
}

// NewL2Cache creates an L2Cache with DefaultTTLByKind and DefaultL2Size.
func NewL2Cache() *L2Cache {
	return newL2Cache(DefaultTTLByKind)
}

// newL2Cache builds an L2Cache with caller-supplied per-kind TTLs, used in
// tests to exercise expiry without waiting out the real defaults.
func newL2Cache(ttlByKind map[Kind]time.Duration) *L2Cache {
	byKind := make(map[Kind]*expirable.LRU[string, []byte], len(ttlByKind))
	for kind, ttl := range ttlByKind {
		byKind[kind] = expirable.NewLRU[string, []byte](DefaultL2Size, nil, ttl)
	}
	return &L2Cache{byKind: byKind}
}

// Get returns the cached bytes for key under kind, a found flag, and an
// error. The error is reserved for genuine L2 failure (an unrecognized
// kind today; a future networked backend's transport errors tomorrow) -
// a plain cache miss is never an error, since Manager's circuit breaker
// must trip on real L2 outages, not on ordinary miss traffic.
func (c *L2Cache) Get(kind Kind, key string) ([]byte, bool, error) {
	store, ok := c.byKind[kind]
	if !ok {
		return nil, false, fmt.Errorf("l2 cache: unregistered kind %q", kind)
	}
	v, found := store.Get(key)
	return v, found, nil
}

// Set stores value under key in kind's TTL bucket.
func (c *L2Cache) Set(kind Kind, key string, value []byte) {
	store, ok := c.byKind[kind]
	if !ok {
		return
	}
	store.Add(key, value)
}

// Invalidate removes key from kind's bucket.
func (c *L2Cache) Invalidate(kind Kind, key string) {
	store, ok := c.byKind[kind]
	if !ok {
		return
	}
	store.Remove(key)
}

// InvalidatePrefix removes every key with the given prefix across all
// kinds - used for repository-scoped invalidation, where keys are
// constructed as "<repository>:<rest>".
func (c *L2Cache) InvalidatePrefix(prefix string) {
	for _, store := range c.byKind {
		for _, key := range store.Keys() {
			if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
				store.Remove(key)
			}
		}
	}
}
