package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"mypetlife-backend/internal/config"
	"mypetlife-backend/internal/router"
)

func newTestServer() *httptest.Server {
	cfg := config.Config{
		Limits: config.Limits{
			OnboardingMaxPhotos: 5,
			MemoryMaxPhotos:     5,
			AlbumMaxPhotos:      0,
			DefaultAvatarIndex:  0,
			MemoriesPageSize:    12,
			TimelinePageSize:    10,
		},
	}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenHours = 1

	// AuthVerifier nil => modo dev: X-Debug-User-ID identifica al usuario
	return httptest.NewServer(router.NewRouter(router.Options{Config: cfg}))
}

func TestHTTP_EndToEnd_OnboardingThenDashboard(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	userID := "user-1"

	// 1) Sin mascota: el dashboard manda a onboarding
	{
		st, body := doJSON(t, ts.URL, "GET", "/dashboard", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 dashboard, got %d body=%s", st, string(body))
		}
		var v struct {
			NeedsOnboarding bool `json:"needs_onboarding"`
		}
		_ = json.Unmarshal(body, &v)
		if !v.NeedsOnboarding {
			t.Fatalf("expected needs_onboarding before any pet, body=%s", string(body))
		}
	}

	// 2) Onboarding con 3 fotos, avatar = segunda
	ob := doOnboard(t, ts.URL, userID, map[string]string{
		"name":          "Luna",
		"type":          "Dog",
		"breed":         "Corgi",
		"gender":        "Female",
		"date_of_birth": "2023-03-10",
		"avatar_index":  "1",
	}, 3)

	if len(ob.MemoryIDs) != 3 || len(ob.ImageURLs) != 3 {
		t.Fatalf("expected 3 memories / 3 urls, got %+v", ob)
	}
	if ob.Pet.AvatarURL != ob.ImageURLs[1] {
		t.Fatalf("avatar %q != urls[1] %q", ob.Pet.AvatarURL, ob.ImageURLs[1])
	}
	if ob.AlbumID == "" || ob.Activities != 2 {
		t.Fatalf("expected seed album and 2 activities, got %+v", ob)
	}

	// 3) Dashboard ya con contenido
	{
		st, body := doJSON(t, ts.URL, "GET", "/dashboard", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 dashboard, got %d body=%s", st, string(body))
		}
		var v struct {
			NeedsOnboarding bool              `json:"needs_onboarding"`
			Pets            []json.RawMessage `json:"pets"`
			Memories        []json.RawMessage `json:"memories"`
			Albums          []json.RawMessage `json:"albums"`
			Timeline        []json.RawMessage `json:"timeline"`
		}
		_ = json.Unmarshal(body, &v)
		if v.NeedsOnboarding {
			t.Fatalf("should not need onboarding after creating a pet")
		}
		if len(v.Pets) != 1 || len(v.Memories) != 3 || len(v.Albums) != 1 || len(v.Timeline) != 2 {
			t.Fatalf("dashboard sections: pets=%d memories=%d albums=%d timeline=%d",
				len(v.Pets), len(v.Memories), len(v.Albums), len(v.Timeline))
		}
	}

	// 4) Otro usuario no ve nada de esto
	{
		st, body := doJSON(t, ts.URL, "GET", "/dashboard", "user-2", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 dashboard, got %d", st)
		}
		var v struct {
			NeedsOnboarding bool `json:"needs_onboarding"`
		}
		_ = json.Unmarshal(body, &v)
		if !v.NeedsOnboarding {
			t.Fatalf("other users must start from onboarding, body=%s", string(body))
		}
	}

	// 5) Agregar una memory al pet
	{
		st, body := doMultipart(t, ts.URL, "/pets/"+ob.Pet.ID+"/memories", userID, map[string]string{
			"title":   "Beach day",
			"caption": "Sandy paws",
		}, 2)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 add memory, got %d body=%s", st, string(body))
		}
	}

	// 6) Timeline acumula la actividad nueva
	{
		st, body := doJSON(t, ts.URL, "GET", "/timeline", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 timeline, got %d", st)
		}
		var items []struct {
			Kind  string `json:"activity_type"`
			Title string `json:"title"`
		}
		_ = json.Unmarshal(body, &items)
		if len(items) != 3 {
			t.Fatalf("expected 3 activities, got %d body=%s", len(items), string(body))
		}
	}
}

func TestHTTP_AlbumView_ListsLinkedMemories(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	userID := "user-1"
	ob := doOnboard(t, ts.URL, userID, map[string]string{
		"name":          "Luna",
		"type":          "Dog",
		"gender":        "Female",
		"date_of_birth": "2023-03-10",
		"avatar_index":  "1",
	}, 3)

	st, body := doJSON(t, ts.URL, "GET", "/albums/"+ob.AlbumID, userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 album view, got %d body=%s", st, string(body))
	}

	var view struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		CoverImageURL string `json:"cover_image_url"`
		Memories      []struct {
			ID       string `json:"id"`
			Title    string `json:"title"`
			ImageURL string `json:"image_url"`
		} `json:"memories"`
	}
	if err := json.Unmarshal(body, &view); err != nil {
		t.Fatalf("decode album view: %v body=%s", err, string(body))
	}

	if view.Name != "First Upload" || view.CoverImageURL != ob.ImageURLs[1] {
		t.Fatalf("album view = %+v", view)
	}
	if len(view.Memories) != 3 {
		t.Fatalf("expected the 3 linked memories, got %d", len(view.Memories))
	}
	welcome := false
	for _, m := range view.Memories {
		if m.Title == "Welcome Luna!" {
			welcome = true
		}
		if m.ImageURL == "" {
			t.Fatalf("memory without image url: %+v", m)
		}
	}
	if !welcome {
		t.Fatalf("welcome memory missing from album view, body=%s", string(body))
	}

	// otro usuario no puede abrir el álbum; id desconocido => 404
	if st, _ := doJSON(t, ts.URL, "GET", "/albums/"+ob.AlbumID, "intruder", nil); st != http.StatusForbidden {
		t.Fatalf("expected 403 for another user's album, got %d", st)
	}
	if st, _ := doJSON(t, ts.URL, "GET", "/albums/nope", userID, nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown album, got %d", st)
	}
}

func TestHTTP_Onboarding_TruncatesPhotosOverLimit(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	ob := doOnboard(t, ts.URL, "user-1", map[string]string{
		"name":          "Max",
		"type":          "Cat",
		"gender":        "Male",
		"date_of_birth": "2022-01-01",
	}, 8)

	// límite 5: las 3 sobrantes se descartan en silencio
	if len(ob.MemoryIDs) != 5 || len(ob.ImageURLs) != 5 {
		t.Fatalf("expected truncation to 5, got memories=%d urls=%d", len(ob.MemoryIDs), len(ob.ImageURLs))
	}
}

func TestHTTP_Onboarding_NoPhotosRejected(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	st, body := doMultipart(t, ts.URL, "/onboarding", "user-1", map[string]string{
		"name":          "Max",
		"type":          "Cat",
		"gender":        "Male",
		"date_of_birth": "2022-01-01",
	}, 0)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 without photos, got %d body=%s", st, string(body))
	}
}

func TestHTTP_AddMemory_OtherUsersPetForbidden(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	ob := doOnboard(t, ts.URL, "owner-1", map[string]string{
		"name":          "Luna",
		"type":          "Dog",
		"gender":        "Female",
		"date_of_birth": "2023-03-10",
	}, 1)

	st, _ := doMultipart(t, ts.URL, "/pets/"+ob.Pet.ID+"/memories", "intruder", map[string]string{
		"title": "Steal",
	}, 1)
	if st != http.StatusForbidden {
		t.Fatalf("expected 403 for another user's pet, got %d", st)
	}

	st, _ = doMultipart(t, ts.URL, "/pets/nope/memories", "owner-1", map[string]string{
		"title": "Ghost",
	}, 1)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown pet, got %d", st)
	}
}

func TestHTTP_Unauthenticated_Rejected(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	st, _ := doJSON(t, ts.URL, "GET", "/dashboard", "", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", st)
	}
}

func TestHTTP_SignUpThenSignIn(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	st, body := doJSON(t, ts.URL, "POST", "/auth/signup", "", map[string]any{
		"email":            "ana@example.com",
		"password":         "secret123",
		"confirm_password": "secret123",
		"name":             "Ana",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 signup, got %d body=%s", st, string(body))
	}

	st, body = doJSON(t, ts.URL, "POST", "/auth/signin", "", map[string]any{
		"email":    "ana@example.com",
		"password": "secret123",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 signin, got %d body=%s", st, string(body))
	}
	var sess struct {
		AccessToken string `json:"access_token"`
	}
	_ = json.Unmarshal(body, &sess)
	if sess.AccessToken == "" {
		t.Fatalf("signin must return a token, body=%s", string(body))
	}

	st, _ = doJSON(t, ts.URL, "POST", "/auth/signin", "", map[string]any{
		"email":    "ana@example.com",
		"password": "wrong",
	})
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 wrong password, got %d", st)
	}
}

// -------------------------
// Helpers
// -------------------------

type onboardResult struct {
	Pet struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
	} `json:"pet"`
	AlbumID    string   `json:"album_id"`
	MemoryIDs  []string `json:"memory_ids"`
	ImageURLs  []string `json:"image_urls"`
	Activities int      `json:"timeline_activities"`
}

func doOnboard(t *testing.T, baseURL, userID string, fields map[string]string, photos int) onboardResult {
	t.Helper()

	st, body := doMultipart(t, baseURL, "/onboarding", userID, fields, photos)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 onboarding, got %d body=%s", st, string(body))
	}

	var res onboardResult
	if err := json.Unmarshal(body, &res); err != nil {
		t.Fatalf("decode onboarding response: %v body=%s", err, string(body))
	}
	if res.Pet.ID == "" {
		t.Fatalf("onboarding: missing pet id body=%s", string(body))
	}
	return res
}

func doMultipart(t *testing.T, baseURL, path, debugUserID string, fields map[string]string, photos int) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	for i := 0; i < photos; i++ {
		fw, err := mw.CreateFormFile("photos", "photo.jpg")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		_, _ = fw.Write([]byte("jpeg-bytes"))
	}
	_ = mw.Close()

	req, err := http.NewRequest("POST", baseURL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body
}

func doJSON(t *testing.T, baseURL, method, path, debugUserID string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}
