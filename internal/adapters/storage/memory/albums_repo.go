package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"mypetlife-backend/internal/domain/albums"
)

type albumsRepo struct {
	mu    sync.RWMutex
	byID  map[string]albums.Album
	links []albums.Link
}

func NewAlbumsRepo() albums.Repository {
	return &albumsRepo{
		byID: make(map[string]albums.Album),
	}
}

func (r *albumsRepo) Create(ctx context.Context, a albums.Album) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("album id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("album already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *albumsRepo) GetByID(ctx context.Context, id string) (albums.Album, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return albums.Album{}, ErrNotFound
	}
	return a, nil
}

func (r *albumsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]albums.Album, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]albums.Album, 0)
	for _, a := range r.byID {
		if a.UserID == ownerUserID {
			out = append(out, a)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *albumsRepo) CreateLinks(ctx context.Context, links []albums.Link) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range links {
		if strings.TrimSpace(l.AlbumID) == "" || strings.TrimSpace(l.MemoryID) == "" {
			return errors.New("album and memory ids required")
		}
	}
	r.links = append(r.links, links...)
	return nil
}

func (r *albumsRepo) ListLinksByAlbum(ctx context.Context, albumID string) ([]albums.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]albums.Link, 0)
	for _, l := range r.links {
		if l.AlbumID == albumID {
			out = append(out, l)
		}
	}
	return out, nil
}
