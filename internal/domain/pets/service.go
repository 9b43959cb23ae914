package pets

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

type CreateInput struct {
	Name         string
	Type         string
	Breed        string
	DateOfBirth  time.Time
	Gender       string
	Color        string
	Weight       string
	SpecialNotes string
}

// Create inserta el perfil con avatar vacío. La fecha de nacimiento no puede
// ser futura; el resto de opcionales pasa tal cual.
func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Type) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Gender) == "" {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	if in.DateOfBirth.IsZero() || in.DateOfBirth.After(now) {
		return Pet{}, ErrInvalidInput
	}

	p := Pet{
		ID:           uuid.NewString(),
		UserID:       ownerUserID,
		Name:         strings.TrimSpace(in.Name),
		Type:         strings.TrimSpace(in.Type),
		Breed:        strings.TrimSpace(in.Breed),
		DateOfBirth:  in.DateOfBirth,
		Gender:       strings.TrimSpace(in.Gender),
		Color:        strings.TrimSpace(in.Color),
		Weight:       strings.TrimSpace(in.Weight),
		SpecialNotes: strings.TrimSpace(in.SpecialNotes),
		AvatarURL:    "",
		IsAlive:      true,
		CreatedAt:    now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAlive(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListAliveByOwner(ctx, ownerUserID)
}

// SetAvatar parchea avatar_url después de la subida de imágenes.
func (s *Service) SetAvatar(ctx context.Context, id, avatarURL string) error {
	id = strings.TrimSpace(id)
	avatarURL = strings.TrimSpace(avatarURL)
	if id == "" || avatarURL == "" {
		return ErrInvalidInput
	}
	return s.repo.SetAvatar(ctx, id, avatarURL)
}
