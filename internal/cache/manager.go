package cache

import (
	"context"

	"github.com/mnemolite/codecore/internal/coreerr"
)

// Loader fetches a value from L3 (the authoritative store) on a full miss.
// Callers own serialization; Manager only moves opaque bytes between tiers.
type Loader func(ctx context.Context) ([]byte, error)

// Manager cascades reads L1 -> L2 -> L3 and fans writes out so both faster
// tiers stay warm, per the Three-tier Cache contract. Every L2 failure is
// recoverable: Get falls back straight to the loader without surfacing an
// error, guarded by a circuit breaker so a degraded L2 doesn't keep eating
// request latency retrying a cache that is already down. An ordinary cache
// miss is not an L2 failure and never counts against the breaker.
type Manager struct {
	l1      *L1Cache[[]byte]
	l2      *L2Cache
	breaker *coreerr.CircuitBreaker
}

// NewManager builds a Manager with a dedicated L1 and L2 and a circuit
// breaker guarding L2 access.
func NewManager() *Manager {
	return &Manager{
		l1:      NewL1Cache[[]byte](DefaultL1Size),
		l2:      NewL2Cache(),
		breaker: coreerr.NewCircuitBreaker("cache-l2"),
	}
}

type l2Result struct {
	value []byte
	found bool
}

// Get cascades through L1, then L2 (via the circuit breaker), then load on a
// full miss - populating L1 and L2 on the way back out so the next read at
// either tier hits.
func (m *Manager) Get(ctx context.Context, kind Kind, key string, load Loader) ([]byte, error) {
	if v, ok := m.l1.Get(key); ok {
		return v, nil
	}

	result, err := coreerr.CircuitExecuteWithResult(m.breaker,
		func() (l2Result, error) {
			v, found, gerr := m.l2.Get(kind, key)
			if gerr != nil {
				return l2Result{}, gerr
			}
			return l2Result{value: v, found: found}, nil
		},
		func() (l2Result, error) {
			return l2Result{}, nil // circuit open: degrade silently, fall through to load
		},
	)
	if err == nil && result.found {
		m.l1.Set(key, result.value)
		return result.value, nil
	}

	v, err := load(ctx)
	if err != nil {
		return nil, err
	}

	m.l1.Set(key, v)
	m.l2.Set(kind, key, v)
	return v, nil
}

// Put writes directly to L1 and L2, for callers that already have a fresh
// value from L3 (e.g. right after an upsert) and want both tiers warmed
// without a redundant Get.
func (m *Manager) Put(kind Kind, key string, value []byte) {
	m.l1.Set(key, value)
	m.l2.Set(kind, key, value)
}

// InvalidateRepository drops every cache entry scoped to repository, at
// every tier this package manages (L3 invalidation is the store's own
// concern). Per spec, any chunk mutation in a repository invalidates all
// search/graph cache entries scoped to it. Keys must be constructed by
// callers as "<repository>:<rest>" for this to find them.
func (m *Manager) InvalidateRepository(repository string) {
	prefix := repository + ":"
	m.l1.InvalidateFunc(func(key string) bool {
		return len(key) < len(prefix) || key[:len(prefix)] != prefix
	})
	m.l2.InvalidatePrefix(prefix)
}
