package pvpblokus

import (
    "context"
    "sort"
    "sync"
)

// MemoryRepository is the development-only result archive used when no DB is configured.
type MemoryRepository struct {
    mu      sync.RWMutex
    results map[string]*Result
}

func NewMemoryRepository() *MemoryRepository {
    return &MemoryRepository{results: make(map[string]*Result)}
}

func (m *MemoryRepository) SaveResult(ctx context.Context, r *Result) error {
    if r == nil { return nil }
    m.mu.Lock()
    defer m.mu.Unlock()
    m.results[r.RoomID] = r.clone()
    return nil
}

// Results returns archived results ordered by end time, latest last.
func (m *MemoryRepository) Results() []*Result {
    m.mu.RLock()
    defer m.mu.RUnlock()
    out := make([]*Result, 0, len(m.results))
    for _, r := range m.results { out = append(out, r.clone()) }
    sort.Slice(out, func(i, j int) bool { return out[i].EndedAt.Before(out[j].EndedAt) })
    return out
}
