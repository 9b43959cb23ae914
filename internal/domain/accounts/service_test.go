package accounts

import (
	"context"
	"errors"
	"testing"

	"mypetlife-backend/internal/adapters/auth/oauth"
	"mypetlife-backend/internal/ports/auth"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID     map[string]Account
	profiles map[string]Profile
}

func newTestRepo() *testRepo {
	return &testRepo{
		byID:     map[string]Account{},
		profiles: map[string]Profile{},
	}
}

func (r *testRepo) Create(ctx context.Context, a Account) error {
	if _, ok := r.byID[a.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Account, error) {
	a, ok := r.byID[id]
	if !ok {
		return Account{}, errRepoNotFound
	}
	return a, nil
}

func (r *testRepo) GetByEmail(ctx context.Context, email string) (Account, error) {
	for _, a := range r.byID {
		if a.Email == email {
			return a, nil
		}
	}
	return Account{}, errRepoNotFound
}

func (r *testRepo) GetByOAuthSubject(ctx context.Context, subject string) (Account, error) {
	for _, a := range r.byID {
		if a.OAuthSubject == subject && subject != "" {
			return a, nil
		}
	}
	return Account{}, errRepoNotFound
}

func (r *testRepo) CreateProfile(ctx context.Context, p Profile) error {
	if _, ok := r.profiles[p.UserID]; ok {
		return errors.New("repo: profile already exists")
	}
	r.profiles[p.UserID] = p
	return nil
}

func (r *testRepo) GetProfile(ctx context.Context, userID string) (Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return Profile{}, errRepoNotFound
	}
	return p, nil
}

type testIssuer struct{}

func (testIssuer) Issue(c auth.Claims) (string, error) { return "tok-" + c.UserID, nil }

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	return NewService(repo, testIssuer{}), repo
}

// -------------------------
// Sign up / sign in
// -------------------------

func TestSignUp_CreatesAccountAndProfile(t *testing.T) {
	svc, repo := newTestService()

	a, err := svc.SignUp(context.Background(), SignUpInput{
		Email:           "Ana@Example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Name:            "Ana",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	if a.Email != "ana@example.com" {
		t.Fatalf("email not normalized: %q", a.Email)
	}
	if a.PasswordHash == "" || a.PasswordHash == "secret123" {
		t.Fatalf("password must be stored hashed")
	}

	p, err := repo.GetProfile(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("profile missing: %v", err)
	}
	if p.Name != "Ana" {
		t.Fatalf("profile name %q", p.Name)
	}
}

func TestSignUp_ConfirmMismatchRejected(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.SignUp(context.Background(), SignUpInput{
		Email:           "ana@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret124",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("mismatch must not create an account")
	}
}

func TestSignUp_DuplicateEmailRejected(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	in := SignUpInput{Email: "ana@example.com", Password: "secret123", ConfirmPassword: "secret123"}
	if _, err := svc.SignUp(ctx, in); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if _, err := svc.SignUp(ctx, in); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSignIn_WrongPasswordRejected(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, SignUpInput{
		Email: "ana@example.com", Password: "secret123", ConfirmPassword: "secret123",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, _, err := svc.SignIn(ctx, "ana@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.SignIn(ctx, "nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	a, tok, err := svc.SignIn(ctx, "ana@example.com", "secret123")
	if err != nil {
		t.Fatalf("signin: %v", err)
	}
	if tok == "" || a.Email != "ana@example.com" {
		t.Fatalf("signin result: %+v tok=%q", a, tok)
	}
}

// -------------------------
// OAuth
// -------------------------

func TestSignInWithOAuth_CreatesAccountOnce(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	id := oauth.Identity{Subject: "sub-1", Email: "ana@example.com", Name: "Ana"}

	a1, tok, err := svc.SignInWithOAuth(ctx, id)
	if err != nil {
		t.Fatalf("oauth signin: %v", err)
	}
	if tok == "" || a1.OAuthSubject != "sub-1" || a1.PasswordHash != "" {
		t.Fatalf("account = %+v tok=%q", a1, tok)
	}

	a2, _, err := svc.SignInWithOAuth(ctx, id)
	if err != nil {
		t.Fatalf("second oauth signin: %v", err)
	}
	if a2.ID != a1.ID {
		t.Fatalf("second signin must reuse the account: %q != %q", a2.ID, a1.ID)
	}
	if len(repo.byID) != 1 || len(repo.profiles) != 1 {
		t.Fatalf("repo state: accounts=%d profiles=%d", len(repo.byID), len(repo.profiles))
	}
}

func TestSignInWithOAuth_DisplayNameCascade(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	// con nombre del proveedor
	a, _, err := svc.SignInWithOAuth(ctx, oauth.Identity{Subject: "s1", Email: "ana@example.com", Name: "Ana"})
	if err != nil {
		t.Fatalf("oauth: %v", err)
	}
	if p, _ := repo.GetProfile(ctx, a.ID); p.Name != "Ana" {
		t.Fatalf("expected provider name, got %q", p.Name)
	}

	// sin nombre: cae a la parte local del email
	a, _, err = svc.SignInWithOAuth(ctx, oauth.Identity{Subject: "s2", Email: "bruno@example.com"})
	if err != nil {
		t.Fatalf("oauth: %v", err)
	}
	if p, _ := repo.GetProfile(ctx, a.ID); p.Name != "bruno" {
		t.Fatalf("expected email local part, got %q", p.Name)
	}

	// sin nombre ni email: "User"
	a, _, err = svc.SignInWithOAuth(ctx, oauth.Identity{Subject: "s3"})
	if err != nil {
		t.Fatalf("oauth: %v", err)
	}
	if p, _ := repo.GetProfile(ctx, a.ID); p.Name != "User" {
		t.Fatalf("expected fallback User, got %q", p.Name)
	}
}

func TestSignInWithOAuth_MissingSubjectRejected(t *testing.T) {
	svc, _ := newTestService()
	if _, _, err := svc.SignInWithOAuth(context.Background(), oauth.Identity{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
