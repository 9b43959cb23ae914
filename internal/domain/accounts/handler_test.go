package accounts

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"

	"mypetlife-backend/internal/adapters/auth/oauth"
)

// fake IdP: el token endpoint devuelve la identidad en la misma respuesta.
func newFakeProvider(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"sub":   "sub-1",
			"email": "ana@example.com",
			"name":  "Ana",
		})
	}))
}

func newOAuthRouter(t *testing.T, providerURL string) http.Handler {
	t.Helper()

	svc, _ := newTestService()
	client := oauth.NewClient(oauth.Config{
		AuthorizeURL: "https://idp.test/authorize",
		TokenURL:     providerURL,
		ClientID:     "client-1",
		ClientSecret: "shh",
		RedirectURL:  "http://localhost/auth/callback",
	})

	r := chi.NewRouter()
	RegisterRoutes(r, svc, client)
	return r
}

// startRedirect dispara el redirect y devuelve el state (query) y el cookie.
func startRedirect(t *testing.T, h http.Handler) (string, *http.Cookie) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/auth/oauth/google", nil))

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307 redirect, got %d", rec.Code)
	}

	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	state := loc.Query().Get("state")
	if state == "" {
		t.Fatalf("authorize url missing state: %s", loc)
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "oauth_state" {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value != state {
		t.Fatalf("state cookie must match the authorize url state")
	}
	return state, cookie
}

func TestOAuthCallback_ValidStateSignsIn(t *testing.T) {
	idp := newFakeProvider(t)
	defer idp.Close()
	h := newOAuthRouter(t, idp.URL)

	state, cookie := startRedirect(t, h)

	req := httptest.NewRequest("GET", "/auth/callback?code=abc&state="+state, nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 callback, got %d body=%s", rec.Code, rec.Body.String())
	}
	var sess struct {
		UserID      string `json:"user_id"`
		AccessToken string `json:"access_token"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &sess)
	if sess.UserID == "" || sess.AccessToken == "" {
		t.Fatalf("callback must return a session, body=%s", rec.Body.String())
	}
}

func TestOAuthCallback_StateMismatchRejected(t *testing.T) {
	idp := newFakeProvider(t)
	defer idp.Close()
	h := newOAuthRouter(t, idp.URL)

	_, cookie := startRedirect(t, h)

	req := httptest.NewRequest("GET", "/auth/callback?code=abc&state=forged", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on state mismatch, got %d", rec.Code)
	}
}

func TestOAuthCallback_MissingCookieRejected(t *testing.T) {
	idp := newFakeProvider(t)
	defer idp.Close()
	h := newOAuthRouter(t, idp.URL)

	state, _ := startRedirect(t, h)

	// mismo state pero sin el cookie: el callback no es del flujo iniciado acá
	req := httptest.NewRequest("GET", "/auth/callback?code=abc&state="+state, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without state cookie, got %d", rec.Code)
	}
}
