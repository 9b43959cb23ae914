package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mypetlife-backend/internal/config"
	"mypetlife-backend/internal/domain/albums"
	"mypetlife-backend/internal/domain/memories"
	"mypetlife-backend/internal/domain/pets"
	"mypetlife-backend/internal/domain/staging"
	"mypetlife-backend/internal/domain/timeline"
	"mypetlife-backend/internal/platform/logger"
	"mypetlife-backend/internal/ports/objectstore"
)

// Service orquesta las secuencias de escrituras remotas que materializan un
// Pet (onboarding), una tanda de Memories o un Album. La disciplina de orden
// es siempre la misma: subidas antes que cualquier registro que referencie
// sus URLs; padres antes que links; contenido antes que la actividad de
// timeline que lo resume.
type Service struct {
	pets     *pets.Service
	memories *memories.Service
	albums   *albums.Service
	timeline *timeline.Service
	store    objectstore.Store
	limits   config.Limits
	log      logger.Logger
	now      func() time.Time
}

func NewService(
	petsSvc *pets.Service,
	memoriesSvc *memories.Service,
	albumsSvc *albums.Service,
	timelineSvc *timeline.Service,
	store objectstore.Store,
	limits config.Limits,
	log logger.Logger,
) *Service {
	if log == nil {
		log = logger.Nop{}
	}
	return &Service{
		pets:     petsSvc,
		memories: memoriesSvc,
		albums:   albumsSvc,
		timeline: timelineSvc,
		store:    store,
		limits:   limits,
		log:      log,
		now:      time.Now,
	}
}

func (s *Service) Limits() config.Limits { return s.limits }

type OnboardInput struct {
	Pet         pets.CreateInput
	Photos      staging.Batch
	AvatarIndex int // -1 => default configurado
}

type OnboardResult struct {
	Pet        pets.Pet
	Album      albums.Album
	Memories   []memories.Memory
	Links      []albums.Link
	Activities []timeline.Activity
	ImageURLs  []string
}

// Onboard materializa el primer pet del usuario con su contenido semilla:
//  1. pet con avatar vacío
//  2. subida de fotos (URLs en orden de entrada)
//  3. patch del avatar a la URL del índice elegido
//  4. álbum "First Upload" con esa misma imagen de portada
//  5. una memory por foto (la elegida lleva el título de bienvenida)
//  6. links álbum-memory, uno por memory
//  7. dos actividades de timeline (memory + album)
//
// Sin rollback: una falla en el paso i deja lo anterior como está y devuelve
// StepError con ese paso.
func (s *Service) Onboard(ctx context.Context, userID string, in OnboardInput) (OnboardResult, error) {
	if strings.TrimSpace(userID) == "" {
		return OnboardResult{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Pet.Name) == "" || strings.TrimSpace(in.Pet.Type) == "" || strings.TrimSpace(in.Pet.Gender) == "" {
		return OnboardResult{}, ErrInvalidInput
	}
	if in.Pet.DateOfBirth.IsZero() || in.Pet.DateOfBirth.After(s.now()) {
		return OnboardResult{}, ErrInvalidInput
	}
	if in.Photos.Len() == 0 {
		return OnboardResult{}, ErrInvalidInput
	}

	avatarIdx := in.AvatarIndex
	if avatarIdx < 0 {
		avatarIdx = s.limits.DefaultAvatarIndex
	}
	if avatarIdx >= in.Photos.Len() {
		return OnboardResult{}, ErrInvalidInput
	}

	petName := strings.TrimSpace(in.Pet.Name)
	files := in.Photos.Files()

	var res OnboardResult

	err := runSteps(ctx, s.log, "onboarding", []step{
		{name: "create_pet", run: func(ctx context.Context) error {
			p, err := s.pets.Create(ctx, userID, in.Pet)
			if err != nil {
				return err
			}
			res.Pet = p
			return nil
		}},
		{name: "upload_photos", run: func(ctx context.Context) error {
			urls, err := s.uploadBatch(ctx, res.Pet.ID, files)
			if err != nil {
				return err
			}
			res.ImageURLs = urls
			return nil
		}},
		{name: "set_avatar", run: func(ctx context.Context) error {
			if err := s.pets.SetAvatar(ctx, res.Pet.ID, res.ImageURLs[avatarIdx]); err != nil {
				return err
			}
			res.Pet.AvatarURL = res.ImageURLs[avatarIdx]
			return nil
		}},
		{name: "create_album", run: func(ctx context.Context) error {
			a, err := s.albums.Create(ctx, userID, res.Pet.ID, albums.CreateInput{
				Name:          "First Upload",
				Description:   fmt.Sprintf("%s's first photos!", petName),
				CoverImageURL: res.ImageURLs[avatarIdx],
			})
			if err != nil {
				return err
			}
			res.Album = a
			return nil
		}},
		{name: "create_memories", run: func(ctx context.Context) error {
			items := make([]memories.CreateItem, 0, len(res.ImageURLs))
			for i, url := range res.ImageURLs {
				if i == avatarIdx {
					items = append(items, memories.CreateItem{
						Title:    fmt.Sprintf("Welcome %s!", petName),
						Caption:  fmt.Sprintf("%s's first photo on MyPetLife!", petName),
						ImageURL: url,
					})
					continue
				}
				items = append(items, memories.CreateItem{
					Title:    fmt.Sprintf("%s's Photo %d", petName, i+1),
					Caption:  fmt.Sprintf("Another precious moment with %s", petName),
					ImageURL: url,
				})
			}
			ms, err := s.memories.CreateBatch(ctx, userID, res.Pet.ID, time.Time{}, items)
			if err != nil {
				return err
			}
			res.Memories = ms
			return nil
		}},
		{name: "link_memories", run: func(ctx context.Context) error {
			ids := make([]string, 0, len(res.Memories))
			for _, m := range res.Memories {
				ids = append(ids, m.ID)
			}
			links, err := s.albums.LinkMemories(ctx, res.Album.ID, ids)
			if err != nil {
				return err
			}
			res.Links = links
			return nil
		}},
		{name: "record_timeline", run: func(ctx context.Context) error {
			as, err := s.timeline.Record(ctx, userID, res.Pet.ID, []timeline.RecordInput{
				{
					Kind:        timeline.KindMemory,
					Title:       fmt.Sprintf("Welcome %s!", petName),
					Description: fmt.Sprintf("Added %s's first photos", petName),
					RelatedID:   res.Memories[avatarIdx].ID,
					ImageURL:    res.ImageURLs[avatarIdx],
				},
				{
					Kind:        timeline.KindAlbum,
					Title:       "Created album: First Upload",
					Description: fmt.Sprintf("Created your first album with %d photos", len(res.ImageURLs)),
					RelatedID:   res.Album.ID,
					ImageURL:    res.ImageURLs[avatarIdx],
				},
			})
			if err != nil {
				return err
			}
			res.Activities = as
			return nil
		}},
	})
	if err != nil {
		return OnboardResult{}, err
	}
	return res, nil
}

type AddMemoryInput struct {
	Title      string
	Caption    string
	MemoryDate time.Time
	Photos     staging.Batch
}

type AddMemoryResult struct {
	Memories   []memories.Memory
	Activities []timeline.Activity
	ImageURLs  []string
}

// AddMemory es la subsecuencia: subir fotos, una memory por imagen, una
// actividad de timeline. Dos invocaciones idénticas crean filas
// independientes; no hay deduplicación.
func (s *Service) AddMemory(ctx context.Context, userID, petID string, in AddMemoryInput) (AddMemoryResult, error) {
	if strings.TrimSpace(in.Title) == "" {
		return AddMemoryResult{}, ErrInvalidInput
	}
	if in.Photos.Len() == 0 {
		return AddMemoryResult{}, ErrInvalidInput
	}
	if !in.MemoryDate.IsZero() && in.MemoryDate.After(s.now()) {
		return AddMemoryResult{}, ErrInvalidInput
	}
	if err := s.checkPetOwnership(ctx, userID, petID); err != nil {
		return AddMemoryResult{}, err
	}

	title := strings.TrimSpace(in.Title)
	caption := strings.TrimSpace(in.Caption)
	files := in.Photos.Files()

	var res AddMemoryResult

	err := runSteps(ctx, s.log, "add_memory", []step{
		{name: "upload_photos", run: func(ctx context.Context) error {
			urls, err := s.uploadBatch(ctx, petID, files)
			if err != nil {
				return err
			}
			res.ImageURLs = urls
			return nil
		}},
		{name: "create_memories", run: func(ctx context.Context) error {
			items := make([]memories.CreateItem, 0, len(res.ImageURLs))
			for _, url := range res.ImageURLs {
				items = append(items, memories.CreateItem{
					Title:    title,
					Caption:  caption,
					ImageURL: url,
				})
			}
			ms, err := s.memories.CreateBatch(ctx, userID, petID, in.MemoryDate, items)
			if err != nil {
				return err
			}
			res.Memories = ms
			return nil
		}},
		{name: "record_timeline", run: func(ctx context.Context) error {
			desc := caption
			if desc == "" {
				desc = fmt.Sprintf("Added %d new photos", len(res.ImageURLs))
			}
			as, err := s.timeline.Record(ctx, userID, petID, []timeline.RecordInput{{
				Kind:        timeline.KindMemory,
				Title:       fmt.Sprintf("New Memory: %s", title),
				Description: desc,
				RelatedID:   res.Memories[0].ID,
				ImageURL:    res.ImageURLs[0],
			}})
			if err != nil {
				return err
			}
			res.Activities = as
			return nil
		}},
	})
	if err != nil {
		return AddMemoryResult{}, err
	}
	return res, nil
}

type AddAlbumInput struct {
	Name        string
	Description string
	Photos      staging.Batch
}

type AddAlbumResult struct {
	Album      albums.Album
	Memories   []memories.Memory
	Links      []albums.Link
	Activities []timeline.Activity
	ImageURLs  []string
}

// AddAlbum: subir fotos, álbum con portada = primera URL, una memory por
// imagen titulada por el álbum, links y una actividad de timeline.
func (s *Service) AddAlbum(ctx context.Context, userID, petID string, in AddAlbumInput) (AddAlbumResult, error) {
	if strings.TrimSpace(in.Name) == "" {
		return AddAlbumResult{}, ErrInvalidInput
	}
	if in.Photos.Len() == 0 {
		return AddAlbumResult{}, ErrInvalidInput
	}
	if err := s.checkPetOwnership(ctx, userID, petID); err != nil {
		return AddAlbumResult{}, err
	}

	name := strings.TrimSpace(in.Name)
	files := in.Photos.Files()

	var res AddAlbumResult

	err := runSteps(ctx, s.log, "add_album", []step{
		{name: "upload_photos", run: func(ctx context.Context) error {
			urls, err := s.uploadBatch(ctx, petID, files)
			if err != nil {
				return err
			}
			res.ImageURLs = urls
			return nil
		}},
		{name: "create_album", run: func(ctx context.Context) error {
			a, err := s.albums.Create(ctx, userID, petID, albums.CreateInput{
				Name:          name,
				Description:   strings.TrimSpace(in.Description),
				CoverImageURL: res.ImageURLs[0],
			})
			if err != nil {
				return err
			}
			res.Album = a
			return nil
		}},
		{name: "create_memories", run: func(ctx context.Context) error {
			items := make([]memories.CreateItem, 0, len(res.ImageURLs))
			for _, url := range res.ImageURLs {
				items = append(items, memories.CreateItem{
					Title:    fmt.Sprintf("Photo from album: %s", name),
					ImageURL: url,
				})
			}
			ms, err := s.memories.CreateBatch(ctx, userID, petID, time.Time{}, items)
			if err != nil {
				return err
			}
			res.Memories = ms
			return nil
		}},
		{name: "link_memories", run: func(ctx context.Context) error {
			ids := make([]string, 0, len(res.Memories))
			for _, m := range res.Memories {
				ids = append(ids, m.ID)
			}
			links, err := s.albums.LinkMemories(ctx, res.Album.ID, ids)
			if err != nil {
				return err
			}
			res.Links = links
			return nil
		}},
		{name: "record_timeline", run: func(ctx context.Context) error {
			as, err := s.timeline.Record(ctx, userID, petID, []timeline.RecordInput{{
				Kind:        timeline.KindAlbum,
				Title:       fmt.Sprintf("New Album: %s", name),
				Description: fmt.Sprintf("Created album with %d photos", len(res.ImageURLs)),
				RelatedID:   res.Album.ID,
				ImageURL:    res.ImageURLs[0],
			}})
			if err != nil {
				return err
			}
			res.Activities = as
			return nil
		}},
	})
	if err != nil {
		return AddAlbumResult{}, err
	}
	return res, nil
}

// checkPetOwnership: user_id y pet_id viajan duplicados en memories/albums/
// timeline; de acá en adelante el workflow los escribe siempre consistentes.
func (s *Service) checkPetOwnership(ctx context.Context, userID, petID string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(petID) == "" {
		return ErrInvalidInput
	}
	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return ErrNotFound
	}
	if p.UserID != userID {
		return ErrForbidden
	}
	return nil
}
