package albums

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"mypetlife-backend/internal/domain/memories"
	"mypetlife-backend/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service, memoriesSvc *memories.Service) {
	r.Get("/albums", listAlbumsHandler(svc))
	r.Get("/albums/{albumID}", getAlbumHandler(svc, memoriesSvc))
}

type albumResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	PetID         string    `json:"pet_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	CoverImageURL string    `json:"cover_image_url"`
	CreatedAt     time.Time `json:"created_at"`
}

func listAlbumsHandler(svc *Service) http.HandlerFunc {
	// Más recientes primero, sin paginar: la colección de álbumes crece lento.
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]albumResponse, 0, len(items))
		for _, a := range items {
			out = append(out, albumResponse{
				ID:            a.ID,
				UserID:        a.UserID,
				PetID:         a.PetID,
				Name:          a.Name,
				Description:   a.Description,
				CoverImageURL: a.CoverImageURL,
				CreatedAt:     a.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type albumDetailResponse struct {
	albumResponse
	Memories []albumMemoryEntry `json:"memories"`
}

type albumMemoryEntry struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Caption    string `json:"caption,omitempty"`
	ImageURL   string `json:"image_url"`
	MemoryDate string `json:"memory_date"`
}

func getAlbumHandler(svc *Service, memoriesSvc *memories.Service) http.HandlerFunc {
	// Vista de álbum: el álbum más sus memories, resolviendo links -> memories.
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.Get(r.Context(), chi.URLParam(r, "albumID"))
		if err != nil {
			http.Error(w, "album not found", http.StatusNotFound)
			return
		}
		if a.UserID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		ids, err := svc.MemoryIDs(r.Context(), a.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		ms, err := memoriesSvc.ListByIDs(r.Context(), ids)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := albumDetailResponse{
			albumResponse: albumResponse{
				ID:            a.ID,
				UserID:        a.UserID,
				PetID:         a.PetID,
				Name:          a.Name,
				Description:   a.Description,
				CoverImageURL: a.CoverImageURL,
				CreatedAt:     a.CreatedAt,
			},
			Memories: make([]albumMemoryEntry, 0, len(ms)),
		}
		for _, m := range ms {
			out.Memories = append(out.Memories, albumMemoryEntry{
				ID:         m.ID,
				Title:      m.Title,
				Caption:    m.Caption,
				ImageURL:   m.ImageURL,
				MemoryDate: m.MemoryDate.Format("2006-01-02"),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
