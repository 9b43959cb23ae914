package dashboard

import (
	"context"
	"errors"
	"strings"

	"mypetlife-backend/internal/config"
	"mypetlife-backend/internal/domain/accounts"
	"mypetlife-backend/internal/domain/albums"
	"mypetlife-backend/internal/domain/memories"
	"mypetlife-backend/internal/domain/pets"
	"mypetlife-backend/internal/domain/timeline"
	"mypetlife-backend/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Service arma la vista del dashboard: lecturas independientes, cada una
// refleja el estado al momento de su llamada. No hay push; el cliente
// re-consulta después de completar un workflow.
type Service struct {
	accounts *accounts.Service
	pets     *pets.Service
	memories *memories.Service
	albums   *albums.Service
	timeline *timeline.Service
	limits   config.Limits
	log      logger.Logger
}

func NewService(
	accountsSvc *accounts.Service,
	petsSvc *pets.Service,
	memoriesSvc *memories.Service,
	albumsSvc *albums.Service,
	timelineSvc *timeline.Service,
	limits config.Limits,
	log logger.Logger,
) *Service {
	if log == nil {
		log = logger.Nop{}
	}
	return &Service{
		accounts: accountsSvc,
		pets:     petsSvc,
		memories: memoriesSvc,
		albums:   albumsSvc,
		timeline: timelineSvc,
		limits:   limits,
		log:      log,
	}
}

type View struct {
	Profile         accounts.Profile
	NeedsOnboarding bool
	Pets            []pets.Pet
	Memories        []memories.Memory
	Albums          []albums.Album
	Timeline        []timeline.Activity
}

// Load trae profile y mascotas vivas. Sin mascota viva corta directo a
// onboarding: no se consultan memories/albums/timeline. La falla de una
// sección individual deja esa sección vacía (y logueada), nunca aborta la
// página completa.
func (s *Service) Load(ctx context.Context, userID string) (View, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return View{}, ErrInvalidInput
	}

	var v View

	if p, err := s.accounts.GetProfile(ctx, userID); err == nil {
		v.Profile = p
	} else {
		s.log.Warn("dashboard: profile fetch failed", map[string]any{"user_id": userID, "error": err.Error()})
	}

	alive, err := s.pets.ListAlive(ctx, userID)
	if err != nil {
		s.log.Warn("dashboard: pets fetch failed", map[string]any{"user_id": userID, "error": err.Error()})
	}
	if len(alive) == 0 {
		v.NeedsOnboarding = true
		return v, nil
	}
	v.Pets = alive

	if ms, err := s.memories.ListRecent(ctx, userID, s.limits.MemoriesPageSize); err == nil {
		v.Memories = ms
	} else {
		s.log.Warn("dashboard: memories fetch failed", map[string]any{"user_id": userID, "error": err.Error()})
	}

	if as, err := s.albums.List(ctx, userID); err == nil {
		v.Albums = as
	} else {
		s.log.Warn("dashboard: albums fetch failed", map[string]any{"user_id": userID, "error": err.Error()})
	}

	if ts, err := s.timeline.ListRecent(ctx, userID, s.limits.TimelinePageSize); err == nil {
		v.Timeline = ts
	} else {
		s.log.Warn("dashboard: timeline fetch failed", map[string]any{"user_id": userID, "error": err.Error()})
	}

	return v, nil
}
