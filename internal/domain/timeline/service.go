package timeline

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

type RecordInput struct {
	Kind        Kind
	Title       string
	Description string
	RelatedID   string
	ImageURL    string
}

// Record agrega una o dos entradas al feed (el onboarding registra memory +
// album en la misma invocación).
func (s *Service) Record(ctx context.Context, ownerUserID, petID string, items []RecordInput) ([]Activity, error) {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(petID) == "" {
		return nil, ErrInvalidInput
	}
	if len(items) == 0 {
		return nil, ErrInvalidInput
	}

	now := s.now()
	out := make([]Activity, 0, len(items))
	for _, it := range items {
		if it.Kind != KindMemory && it.Kind != KindAlbum {
			return nil, ErrInvalidInput
		}
		if strings.TrimSpace(it.Title) == "" || strings.TrimSpace(it.RelatedID) == "" {
			return nil, ErrInvalidInput
		}
		out = append(out, Activity{
			ID:          uuid.NewString(),
			UserID:      ownerUserID,
			PetID:       petID,
			Kind:        it.Kind,
			Title:       strings.TrimSpace(it.Title),
			Description: strings.TrimSpace(it.Description),
			RelatedID:   it.RelatedID,
			ImageURL:    it.ImageURL,
			CreatedAt:   now,
		})
	}

	if err := s.repo.CreateBatch(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) ListRecent(ctx context.Context, ownerUserID string, limit int) ([]Activity, error) {
	return s.repo.ListRecentByOwner(ctx, ownerUserID, limit)
}
