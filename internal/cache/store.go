package cache

import (
	"context"
	"sync"
	"time"
)

// Store is the response cache the handlers consult before calling the
// backend. Invalidation is declarative: mutations hand over the keys that
// went stale and the store drops them.
type Store interface {
	// Get returns the cached payload for key, or ok=false on a miss.
	Get(ctx context.Context, key Key) ([]byte, bool)
	// Set stores payload under key for the store's TTL.
	Set(ctx context.Context, key Key, payload []byte)
	// Invalidate drops the given keys. Unknown keys are ignored.
	Invalidate(ctx context.Context, keys ...Key)
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryStore is a TTL map guarded by a mutex: the in-process analogue of the
// client-side query cache the gateway replaces.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

// NewMemoryStore creates an empty in-memory store with the given entry TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Get(_ context.Context, key Key) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key.String()]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, key.String())
		return nil, false
	}
	return entry.payload, true
}

func (s *MemoryStore) Set(_ context.Context, key Key, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key.String()] = memoryEntry{
		payload:   payload,
		expiresAt: time.Now().Add(s.ttl),
	}
}

func (s *MemoryStore) Invalidate(_ context.Context, keys ...Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.entries, key.String())
	}
}

// Len reports the number of live entries, expired ones included until
// their next Get.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
