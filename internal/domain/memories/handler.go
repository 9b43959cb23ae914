package memories

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"mypetlife-backend/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service, pageSize int) {
	r.Get("/memories", listMemoriesHandler(svc, pageSize))
}

type memoryResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	PetID      string    `json:"pet_id"`
	Title      string    `json:"title"`
	Caption    string    `json:"caption,omitempty"`
	ImageURL   string    `json:"image_url"`
	MemoryDate string    `json:"memory_date"`
	CreatedAt  time.Time `json:"created_at"`
}

func listMemoriesHandler(svc *Service, pageSize int) http.HandlerFunc {
	// Más recientes primero, página fija.
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListRecent(r.Context(), claims.UserID, pageSize)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]memoryResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMemoryResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toMemoryResponse(m Memory) memoryResponse {
	return memoryResponse{
		ID:         m.ID,
		UserID:     m.UserID,
		PetID:      m.PetID,
		Title:      m.Title,
		Caption:    m.Caption,
		ImageURL:   m.ImageURL,
		MemoryDate: m.MemoryDate.Format("2006-01-02"),
		CreatedAt:  m.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
