package albums

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name          string
	Description   string
	CoverImageURL string
}

func (s *Service) Create(ctx context.Context, ownerUserID, petID string, in CreateInput) (Album, error) {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(petID) == "" {
		return Album{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Album{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.CoverImageURL) == "" {
		return Album{}, ErrInvalidInput
	}

	a := Album{
		ID:            uuid.NewString(),
		UserID:        ownerUserID,
		PetID:         petID,
		Name:          strings.TrimSpace(in.Name),
		Description:   strings.TrimSpace(in.Description),
		CoverImageURL: in.CoverImageURL,
		CreatedAt:     s.now(),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Album{}, err
	}
	return a, nil
}

// LinkMemories crea un link por memory; el orden no importa para lectura pero
// se preserva el recibido.
func (s *Service) LinkMemories(ctx context.Context, albumID string, memoryIDs []string) ([]Link, error) {
	albumID = strings.TrimSpace(albumID)
	if albumID == "" || len(memoryIDs) == 0 {
		return nil, ErrInvalidInput
	}

	links := make([]Link, 0, len(memoryIDs))
	for _, id := range memoryIDs {
		if strings.TrimSpace(id) == "" {
			return nil, ErrInvalidInput
		}
		links = append(links, Link{AlbumID: albumID, MemoryID: id})
	}

	if err := s.repo.CreateLinks(ctx, links); err != nil {
		return nil, err
	}
	return links, nil
}

func (s *Service) Get(ctx context.Context, id string) (Album, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Album{}, ErrNotFound
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Album{}, ErrNotFound
	}
	return a, nil
}

// MemoryIDs devuelve las memories enlazadas al álbum, en el orden en que se
// crearon los links.
func (s *Service) MemoryIDs(ctx context.Context, albumID string) ([]string, error) {
	links, err := s.repo.ListLinksByAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.MemoryID)
	}
	return ids, nil
}

func (s *Service) List(ctx context.Context, ownerUserID string) ([]Album, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}
