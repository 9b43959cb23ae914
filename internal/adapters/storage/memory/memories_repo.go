package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"mypetlife-backend/internal/domain/memories"
)

type memoriesRepo struct {
	mu    sync.RWMutex
	byID  map[string]memories.Memory
	order []string // orden de inserción, para desempatar created_at iguales
}

func NewMemoriesRepo() memories.Repository {
	return &memoriesRepo{
		byID: make(map[string]memories.Memory),
	}
}

func (r *memoriesRepo) CreateBatch(ctx context.Context, ms []memories.Memory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range ms {
		if strings.TrimSpace(m.ID) == "" {
			return errors.New("memory id required")
		}
		if _, exists := r.byID[m.ID]; exists {
			return errors.New("memory already exists")
		}
	}
	for _, m := range ms {
		r.byID[m.ID] = m
		r.order = append(r.order, m.ID)
	}
	return nil
}

func (r *memoriesRepo) ListRecentByOwner(ctx context.Context, ownerUserID string, limit int) ([]memories.Memory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]memories.Memory, 0)
	// recorremos en orden de inserción inverso: más nuevo primero
	for i := len(r.order) - 1; i >= 0; i-- {
		m := r.byID[r.order[i]]
		if m.UserID != ownerUserID {
			continue
		}
		out = append(out, m)
		if limit > 0 && len(out) == limit {
			break
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *memoriesRepo) ListByIDs(ctx context.Context, ids []string) ([]memories.Memory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]memories.Memory, 0, len(ids))
	for _, id := range ids {
		if m, ok := r.byID[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}
