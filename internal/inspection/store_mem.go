package inspection

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemStore keeps records in memory. Useful for tests and offline demos.
type MemStore struct {
	mu   sync.RWMutex
	recs map[string]Record
}

func NewMemStore() *MemStore {
	return &MemStore{recs: map[string]Record{}}
}

func (m *MemStore) Put(ctx context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[rec.ID] = rec
	return nil
}

func (m *MemStore) Get(ctx context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.recs[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (m *MemStore) List(ctx context.Context, opts ListOpts) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Record
	for _, rec := range m.recs {
		if opts.MechanicID != "" && rec.MechanicID != opts.MechanicID {
			continue
		}
		if opts.ChecklistID != "" && rec.ChecklistID != opts.ChecklistID {
			continue
		}
		if opts.CarNumber != "" && !strings.Contains(rec.CarNumber, opts.CarNumber) {
			continue
		}
		if opts.From > 0 && rec.CreatedAt < opts.From {
			continue
		}
		if opts.To > 0 && rec.CreatedAt >= opts.To {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })

	limit := opts.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return nil, nil
		}
		out = out[opts.Offset:]
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recs[id]; !ok {
		return ErrNotFound
	}
	delete(m.recs, id)
	return nil
}

func (m *MemStore) IDs(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.recs))
	for id := range m.recs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
