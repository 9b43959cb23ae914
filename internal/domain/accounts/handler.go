package accounts

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"mypetlife-backend/internal/adapters/auth/oauth"
)

func RegisterRoutes(r chi.Router, svc *Service, oauthClient *oauth.Client) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/signup", signUpHandler(svc))
		ar.Post("/signin", signInHandler(svc))
		ar.Post("/signout", signOutHandler())

		ar.Get("/oauth/{provider}", oauthRedirectHandler(oauthClient))
		ar.Get("/callback", oauthCallbackHandler(svc, oauthClient))
	})
}

type signUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Name            string `json:"name"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	AccessToken string `json:"access_token,omitempty"`
}

func signUpHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.SignUp(r.Context(), SignUpInput{
			Email:           req.Email,
			Password:        req.Password,
			ConfirmPassword: req.ConfirmPassword,
			Name:            req.Name,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrEmailTaken):
				http.Error(w, "email already registered", http.StatusConflict)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "invalid input", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, sessionResponse{UserID: a.ID, Email: a.Email})
	}
}

func signInHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, tok, err := svc.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidCredentials):
				http.Error(w, "invalid credentials", http.StatusUnauthorized)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "invalid input", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, sessionResponse{UserID: a.ID, Email: a.Email, AccessToken: tok})
	}
}

// signOutHandler es stateless: el token expira solo. El endpoint existe para
// que el cliente tenga un punto único de cierre de sesión.
func signOutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
	}
}

// stateCookie guarda el state entre el redirect y el callback; expira solo.
const stateCookie = "oauth_state"

func oauthRedirectHandler(client *oauth.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil || !client.IsConfigured() {
			http.Error(w, "oauth not configured", http.StatusServiceUnavailable)
			return
		}

		provider := chi.URLParam(r, "provider")
		state := uuid.NewString()

		u, err := client.AuthorizeURL(provider, state)
		if err != nil {
			http.Error(w, "oauth not configured", http.StatusServiceUnavailable)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     stateCookie,
			Value:    state,
			Path:     "/auth",
			MaxAge:   600,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, u, http.StatusTemporaryRedirect)
	}
}

func oauthCallbackHandler(svc *Service, client *oauth.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil || !client.IsConfigured() {
			http.Error(w, "oauth not configured", http.StatusServiceUnavailable)
			return
		}

		// El state del query tiene que coincidir con el del cookie sembrado
		// en el redirect; si no, el callback no vino de nuestro flujo.
		c, err := r.Cookie(stateCookie)
		if err != nil || c.Value == "" || r.URL.Query().Get("state") != c.Value {
			http.Error(w, "invalid state", http.StatusBadRequest)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     stateCookie,
			Value:    "",
			Path:     "/auth",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		id, err := client.ExchangeCode(r.Context(), code)
		if err != nil {
			if errors.Is(err, oauth.ErrUnauthorized) {
				http.Error(w, "invalid credentials", http.StatusUnauthorized)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		a, tok, err := svc.SignInWithOAuth(r.Context(), id)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, sessionResponse{UserID: a.ID, Email: a.Email, AccessToken: tok})
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
