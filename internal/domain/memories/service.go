package memories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
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

type CreateItem struct {
	Title    string
	Caption  string
	ImageURL string
}

// CreateBatch inserta una memory por imagen, todas con el mismo user/pet y
// la misma memory_date. Valida antes de escribir: título e imagen presentes
// en cada item, fecha no futura.
func (s *Service) CreateBatch(ctx context.Context, ownerUserID, petID string, memoryDate time.Time, items []CreateItem) ([]Memory, error) {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(petID) == "" {
		return nil, ErrInvalidInput
	}
	if len(items) == 0 {
		return nil, ErrInvalidInput
	}

	now := s.now()
	if memoryDate.IsZero() {
		memoryDate = dateOnly(now)
	}
	if memoryDate.After(dateOnly(now)) {
		return nil, ErrInvalidInput
	}

	out := make([]Memory, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.Title) == "" || strings.TrimSpace(it.ImageURL) == "" {
			return nil, ErrInvalidInput
		}
		out = append(out, Memory{
			ID:         uuid.NewString(),
			UserID:     ownerUserID,
			PetID:      petID,
			Title:      strings.TrimSpace(it.Title),
			Caption:    strings.TrimSpace(it.Caption),
			ImageURL:   it.ImageURL,
			MemoryDate: memoryDate,
			CreatedAt:  now,
		})
	}

	if err := s.repo.CreateBatch(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) ListRecent(ctx context.Context, ownerUserID string, limit int) ([]Memory, error) {
	return s.repo.ListRecentByOwner(ctx, ownerUserID, limit)
}

// ListByIDs resuelve las memories de un álbum a partir de sus links.
func (s *Service) ListByIDs(ctx context.Context, ids []string) ([]Memory, error) {
	if len(ids) == 0 {
		return []Memory{}, nil
	}
	return s.repo.ListByIDs(ctx, ids)
}

// dateOnly trunca a fecha de calendario en UTC; memory_date es DATE, no timestamp.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
