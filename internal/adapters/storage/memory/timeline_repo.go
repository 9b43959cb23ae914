package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"mypetlife-backend/internal/domain/timeline"
)

type timelineRepo struct {
	mu    sync.RWMutex
	byID  map[string]timeline.Activity
	order []string
}

func NewTimelineRepo() timeline.Repository {
	return &timelineRepo{
		byID: make(map[string]timeline.Activity),
	}
}

func (r *timelineRepo) CreateBatch(ctx context.Context, as []timeline.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range as {
		if strings.TrimSpace(a.ID) == "" {
			return errors.New("activity id required")
		}
		if _, exists := r.byID[a.ID]; exists {
			return errors.New("activity already exists")
		}
	}
	for _, a := range as {
		r.byID[a.ID] = a
		r.order = append(r.order, a.ID)
	}
	return nil
}

func (r *timelineRepo) ListRecentByOwner(ctx context.Context, ownerUserID string, limit int) ([]timeline.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]timeline.Activity, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		a := r.byID[r.order[i]]
		if a.UserID != ownerUserID {
			continue
		}
		out = append(out, a)
		if limit > 0 && len(out) == limit {
			break
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}
