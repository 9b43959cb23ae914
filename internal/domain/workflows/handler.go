package workflows

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"mypetlife-backend/internal/domain/memories"
	"mypetlife-backend/internal/domain/pets"
	"mypetlife-backend/internal/domain/staging"
	"mypetlife-backend/internal/middleware"
)

// Los tres flujos reciben multipart: campos de texto + fotos bajo la key
// "photos". El staging (truncado al límite del flujo) ocurre antes de invocar
// el workflow; la validación del workflow, antes de cualquier escritura remota.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/onboarding", onboardHandler(svc))
	r.Post("/pets/{petID}/memories", addMemoryHandler(svc))
	r.Post("/pets/{petID}/albums", addAlbumHandler(svc))
}

const maxFormMemory = 32 << 20 // 32MB en RAM; el resto va a disco temporal

type onboardResponse struct {
	Pet        petSummary `json:"pet"`
	AlbumID    string     `json:"album_id"`
	MemoryIDs  []string   `json:"memory_ids"`
	ImageURLs  []string   `json:"image_urls"`
	Activities int        `json:"timeline_activities"`
}

type petSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

func onboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}

		dob, err := parseDate(r.FormValue("date_of_birth"))
		if err != nil {
			http.Error(w, "date_of_birth must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		avatarIdx := -1
		if v := strings.TrimSpace(r.FormValue("avatar_index")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				http.Error(w, "avatar_index must be a non-negative integer", http.StatusBadRequest)
				return
			}
			avatarIdx = n
		}

		batch := staging.Stage(
			staging.FromMultipart(r.MultipartForm.File["photos"]),
			svc.Limits().OnboardingMaxPhotos,
		)

		res, err := svc.Onboard(r.Context(), claims.UserID, OnboardInput{
			Pet: pets.CreateInput{
				Name:         r.FormValue("name"),
				Type:         r.FormValue("type"),
				Breed:        r.FormValue("breed"),
				DateOfBirth:  dob,
				Gender:       r.FormValue("gender"),
				Color:        r.FormValue("color"),
				Weight:       r.FormValue("weight"),
				SpecialNotes: r.FormValue("special_notes"),
			},
			Photos:      batch,
			AvatarIndex: avatarIdx,
		})
		if err != nil {
			writeWorkflowError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, onboardResponse{
			Pet: petSummary{
				ID:        res.Pet.ID,
				Name:      res.Pet.Name,
				AvatarURL: res.Pet.AvatarURL,
			},
			AlbumID:    res.Album.ID,
			MemoryIDs:  memoryIDs(res.Memories),
			ImageURLs:  res.ImageURLs,
			Activities: len(res.Activities),
		})
	}
}

type addMemoryResponse struct {
	MemoryIDs  []string `json:"memory_ids"`
	ImageURLs  []string `json:"image_urls"`
	Activities int      `json:"timeline_activities"`
}

func addMemoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}

		var memoryDate time.Time
		if v := strings.TrimSpace(r.FormValue("memory_date")); v != "" {
			d, err := parseDate(v)
			if err != nil {
				http.Error(w, "memory_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			memoryDate = d
		}

		batch := staging.Stage(
			staging.FromMultipart(r.MultipartForm.File["photos"]),
			svc.Limits().MemoryMaxPhotos,
		)

		res, err := svc.AddMemory(r.Context(), claims.UserID, chi.URLParam(r, "petID"), AddMemoryInput{
			Title:      r.FormValue("title"),
			Caption:    r.FormValue("caption"),
			MemoryDate: memoryDate,
			Photos:     batch,
		})
		if err != nil {
			writeWorkflowError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, addMemoryResponse{
			MemoryIDs:  memoryIDs(res.Memories),
			ImageURLs:  res.ImageURLs,
			Activities: len(res.Activities),
		})
	}
}

type addAlbumResponse struct {
	AlbumID    string   `json:"album_id"`
	MemoryIDs  []string `json:"memory_ids"`
	ImageURLs  []string `json:"image_urls"`
	Activities int      `json:"timeline_activities"`
}

func addAlbumHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}

		batch := staging.Stage(
			staging.FromMultipart(r.MultipartForm.File["photos"]),
			svc.Limits().AlbumMaxPhotos,
		)

		res, err := svc.AddAlbum(r.Context(), claims.UserID, chi.URLParam(r, "petID"), AddAlbumInput{
			Name:        r.FormValue("name"),
			Description: r.FormValue("description"),
			Photos:      batch,
		})
		if err != nil {
			writeWorkflowError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, addAlbumResponse{
			AlbumID:    res.Album.ID,
			MemoryIDs:  memoryIDs(res.Memories),
			ImageURLs:  res.ImageURLs,
			Activities: len(res.Activities),
		})
	}
}

// writeWorkflowError mapea la taxonomía: validación local => 400 con mensaje
// específico; falla remota => 500 genérico (la causa ya quedó logueada por el
// runner, nunca se muestra).
func writeWorkflowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, "something went wrong, please try again", http.StatusInternalServerError)
	}
}

func memoryIDs(ms []memories.Memory) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ID)
	}
	return out
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
