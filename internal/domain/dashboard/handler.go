package dashboard

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"mypetlife-backend/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/dashboard", dashboardHandler(svc))
}

type viewResponse struct {
	Profile         profileResponse `json:"profile"`
	NeedsOnboarding bool            `json:"needs_onboarding"`
	Pets            []petEntry      `json:"pets"`
	Memories        []memoryEntry   `json:"memories"`
	Albums          []albumEntry    `json:"albums"`
	Timeline        []timelineEntry `json:"timeline"`
}

type profileResponse struct {
	UserID string `json:"user_id,omitempty"`
	Name   string `json:"name,omitempty"`
}

type petEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	AvatarURL string `json:"avatar_url"`
}

type memoryEntry struct {
	ID         string `json:"id"`
	PetID      string `json:"pet_id"`
	Title      string `json:"title"`
	ImageURL   string `json:"image_url"`
	MemoryDate string `json:"memory_date"`
}

type albumEntry struct {
	ID            string `json:"id"`
	PetID         string `json:"pet_id"`
	Name          string `json:"name"`
	CoverImageURL string `json:"cover_image_url"`
}

type timelineEntry struct {
	ID        string    `json:"id"`
	Kind      string    `json:"activity_type"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func dashboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		v, err := svc.Load(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := viewResponse{
			Profile:         profileResponse{UserID: v.Profile.UserID, Name: v.Profile.Name},
			NeedsOnboarding: v.NeedsOnboarding,
			Pets:            make([]petEntry, 0, len(v.Pets)),
			Memories:        make([]memoryEntry, 0, len(v.Memories)),
			Albums:          make([]albumEntry, 0, len(v.Albums)),
			Timeline:        make([]timelineEntry, 0, len(v.Timeline)),
		}
		for _, p := range v.Pets {
			out.Pets = append(out.Pets, petEntry{ID: p.ID, Name: p.Name, Type: p.Type, AvatarURL: p.AvatarURL})
		}
		for _, m := range v.Memories {
			out.Memories = append(out.Memories, memoryEntry{
				ID:         m.ID,
				PetID:      m.PetID,
				Title:      m.Title,
				ImageURL:   m.ImageURL,
				MemoryDate: m.MemoryDate.Format("2006-01-02"),
			})
		}
		for _, a := range v.Albums {
			out.Albums = append(out.Albums, albumEntry{ID: a.ID, PetID: a.PetID, Name: a.Name, CoverImageURL: a.CoverImageURL})
		}
		for _, t := range v.Timeline {
			out.Timeline = append(out.Timeline, timelineEntry{
				ID:        t.ID,
				Kind:      string(t.Kind),
				Title:     t.Title,
				ImageURL:  t.ImageURL,
				CreatedAt: t.CreatedAt,
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
