package timeline

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"mypetlife-backend/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service, pageSize int) {
	r.Get("/timeline", listTimelineHandler(svc, pageSize))
}

type activityResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	PetID       string    `json:"pet_id"`
	Kind        string    `json:"activity_type"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	RelatedID   string    `json:"related_id"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func listTimelineHandler(svc *Service, pageSize int) http.HandlerFunc {
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

		out := make([]activityResponse, 0, len(items))
		for _, a := range items {
			out = append(out, activityResponse{
				ID:          a.ID,
				UserID:      a.UserID,
				PetID:       a.PetID,
				Kind:        string(a.Kind),
				Title:       a.Title,
				Description: a.Description,
				RelatedID:   a.RelatedID,
				ImageURL:    a.ImageURL,
				CreatedAt:   a.CreatedAt,
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
