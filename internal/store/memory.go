package store

import (
    "context"
    "sync"
)

// MemoryStore keeps buckets in process memory. It is the default driver and
// the one the test suite runs against.
type MemoryStore struct {
    mu      sync.RWMutex
    buckets map[string][]byte
}

func NewMemoryStore() *MemoryStore {
    return &MemoryStore{
        buckets: make(map[string][]byte),
    }
}

func (m *MemoryStore) Load(ctx context.Context, bucket string) ([]byte, error) {
    m.mu.RLock()
    defer m.mu.RUnlock()

    data, ok := m.buckets[bucket]
    if !ok {
        return nil, nil
    }

    out := make([]byte, len(data))
    copy(out, data)
    return out, nil
}

func (m *MemoryStore) Save(ctx context.Context, bucket string, data []byte) error {
    m.mu.Lock()
    defer m.mu.Unlock()

    stored := make([]byte, len(data))
    copy(stored, data)
    m.buckets[bucket] = stored
    return nil
}
