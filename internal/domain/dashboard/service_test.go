package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"mypetlife-backend/internal/config"
	"mypetlife-backend/internal/domain/accounts"
	"mypetlife-backend/internal/domain/albums"
	"mypetlife-backend/internal/domain/memories"
	"mypetlife-backend/internal/domain/pets"
	"mypetlife-backend/internal/domain/timeline"
	"mypetlife-backend/internal/ports/auth"
)

// -------------------------
// Test repos (cuentan llamadas, pueden fallar)
// -------------------------

var errRepoBoom = errors.New("repo: boom")

type testIssuer struct{}

func (testIssuer) Issue(c auth.Claims) (string, error) { return "tok", nil }

type testAccountsRepo struct {
	profiles map[string]accounts.Profile
	fail     bool
}

func (r *testAccountsRepo) Create(ctx context.Context, a accounts.Account) error { return nil }
func (r *testAccountsRepo) GetByID(ctx context.Context, id string) (accounts.Account, error) {
	return accounts.Account{}, errRepoBoom
}
func (r *testAccountsRepo) GetByEmail(ctx context.Context, email string) (accounts.Account, error) {
	return accounts.Account{}, errRepoBoom
}
func (r *testAccountsRepo) GetByOAuthSubject(ctx context.Context, subject string) (accounts.Account, error) {
	return accounts.Account{}, errRepoBoom
}
func (r *testAccountsRepo) CreateProfile(ctx context.Context, p accounts.Profile) error { return nil }
func (r *testAccountsRepo) GetProfile(ctx context.Context, userID string) (accounts.Profile, error) {
	if r.fail {
		return accounts.Profile{}, errRepoBoom
	}
	p, ok := r.profiles[userID]
	if !ok {
		return accounts.Profile{}, errors.New("repo: not found")
	}
	return p, nil
}

type testPetsRepo struct {
	alive []pets.Pet
	calls int
}

func (r *testPetsRepo) Create(ctx context.Context, p pets.Pet) error { return nil }
func (r *testPetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	return pets.Pet{}, errRepoBoom
}
func (r *testPetsRepo) ListAliveByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	r.calls++
	return r.alive, nil
}
func (r *testPetsRepo) SetAvatar(ctx context.Context, id, avatarURL string) error { return nil }

type testMemoriesRepo struct {
	rows  []memories.Memory
	calls int
	fail  bool
}

func (r *testMemoriesRepo) CreateBatch(ctx context.Context, ms []memories.Memory) error { return nil }
func (r *testMemoriesRepo) ListRecentByOwner(ctx context.Context, ownerUserID string, limit int) ([]memories.Memory, error) {
	r.calls++
	if r.fail {
		return nil, errRepoBoom
	}
	if limit > 0 && len(r.rows) > limit {
		return r.rows[:limit], nil
	}
	return r.rows, nil
}
func (r *testMemoriesRepo) ListByIDs(ctx context.Context, ids []string) ([]memories.Memory, error) {
	return nil, nil
}

type testAlbumsRepo struct {
	rows  []albums.Album
	calls int
}

func (r *testAlbumsRepo) Create(ctx context.Context, a albums.Album) error { return nil }
func (r *testAlbumsRepo) GetByID(ctx context.Context, id string) (albums.Album, error) {
	return albums.Album{}, errRepoBoom
}
func (r *testAlbumsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]albums.Album, error) {
	r.calls++
	return r.rows, nil
}
func (r *testAlbumsRepo) CreateLinks(ctx context.Context, links []albums.Link) error { return nil }
func (r *testAlbumsRepo) ListLinksByAlbum(ctx context.Context, albumID string) ([]albums.Link, error) {
	return nil, nil
}

type testTimelineRepo struct {
	rows  []timeline.Activity
	calls int
}

func (r *testTimelineRepo) CreateBatch(ctx context.Context, as []timeline.Activity) error { return nil }
func (r *testTimelineRepo) ListRecentByOwner(ctx context.Context, ownerUserID string, limit int) ([]timeline.Activity, error) {
	r.calls++
	return r.rows, nil
}

type fixture struct {
	svc      *Service
	accounts *testAccountsRepo
	pets     *testPetsRepo
	memories *testMemoriesRepo
	albums   *testAlbumsRepo
	timeline *testTimelineRepo
}

func newFixture() *fixture {
	f := &fixture{
		accounts: &testAccountsRepo{profiles: map[string]accounts.Profile{}},
		pets:     &testPetsRepo{},
		memories: &testMemoriesRepo{},
		albums:   &testAlbumsRepo{},
		timeline: &testTimelineRepo{},
	}
	limits := config.Limits{MemoriesPageSize: 12, TimelinePageSize: 10}
	f.svc = NewService(
		accounts.NewService(f.accounts, testIssuer{}),
		pets.NewService(f.pets),
		memories.NewService(f.memories),
		albums.NewService(f.albums),
		timeline.NewService(f.timeline),
		limits,
		nil,
	)
	return f
}

func alivePet(userID string) pets.Pet {
	return pets.Pet{
		ID:        "pet-1",
		UserID:    userID,
		Name:      "Luna",
		IsAlive:   true,
		CreatedAt: time.Now(),
	}
}

func TestLoad_NoLivingPet_ShortCircuitsToOnboarding(t *testing.T) {
	f := newFixture()
	f.accounts.profiles["user-1"] = accounts.Profile{UserID: "user-1", Name: "Ana"}

	v, err := f.svc.Load(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !v.NeedsOnboarding {
		t.Fatalf("expected NeedsOnboarding")
	}
	if v.Profile.Name != "Ana" {
		t.Fatalf("profile should still load, got %+v", v.Profile)
	}

	// corte temprano: las secciones de contenido ni se consultan
	if f.memories.calls != 0 || f.albums.calls != 0 || f.timeline.calls != 0 {
		t.Fatalf("content sections must not be queried without a living pet (m=%d a=%d t=%d)",
			f.memories.calls, f.albums.calls, f.timeline.calls)
	}
}

func TestLoad_WithLivingPet_LoadsAllSections(t *testing.T) {
	f := newFixture()
	f.accounts.profiles["user-1"] = accounts.Profile{UserID: "user-1", Name: "Ana"}
	f.pets.alive = []pets.Pet{alivePet("user-1")}
	f.memories.rows = []memories.Memory{{ID: "m1", UserID: "user-1"}}
	f.albums.rows = []albums.Album{{ID: "a1", UserID: "user-1"}}
	f.timeline.rows = []timeline.Activity{{ID: "t1", UserID: "user-1"}}

	v, err := f.svc.Load(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if v.NeedsOnboarding {
		t.Fatalf("should not need onboarding with a living pet")
	}
	if len(v.Pets) != 1 || len(v.Memories) != 1 || len(v.Albums) != 1 || len(v.Timeline) != 1 {
		t.Fatalf("sections = pets:%d memories:%d albums:%d timeline:%d",
			len(v.Pets), len(v.Memories), len(v.Albums), len(v.Timeline))
	}
	if f.memories.calls != 1 || f.albums.calls != 1 || f.timeline.calls != 1 {
		t.Fatalf("each section queried once")
	}
}

func TestLoad_SectionFailureLeavesSectionEmpty(t *testing.T) {
	f := newFixture()
	f.pets.alive = []pets.Pet{alivePet("user-1")}
	f.memories.fail = true
	f.albums.rows = []albums.Album{{ID: "a1", UserID: "user-1"}}

	v, err := f.svc.Load(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("a failing section must not abort the page: %v", err)
	}

	if len(v.Memories) != 0 {
		t.Fatalf("failed section should be empty, got %d", len(v.Memories))
	}
	if len(v.Albums) != 1 {
		t.Fatalf("other sections keep loading, got %d albums", len(v.Albums))
	}
}

func TestLoad_MissingProfileIsNotFatal(t *testing.T) {
	f := newFixture()
	f.accounts.fail = true
	f.pets.alive = []pets.Pet{alivePet("user-1")}

	v, err := f.svc.Load(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if v.Profile.Name != "" {
		t.Fatalf("expected empty profile, got %+v", v.Profile)
	}
	if len(v.Pets) != 1 {
		t.Fatalf("pets should still load")
	}
}

func TestLoad_EmptyUserRejected(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.Load(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
