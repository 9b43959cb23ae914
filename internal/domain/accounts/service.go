package accounts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"mypetlife-backend/internal/adapters/auth/oauth"
	"mypetlife-backend/internal/ports/auth"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotFound           = errors.New("not found")
)

// TokenIssuer emite el token de sesión; lo implementa adapters/auth/token.
type TokenIssuer interface {
	Issue(c auth.Claims) (string, error)
}

type Service struct {
	repo   Repository
	issuer TokenIssuer
	now    func() time.Time
}

func NewService(repo Repository, issuer TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		issuer: issuer,
		now:    time.Now,
	}
}

type SignUpInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	Name            string
}

// SignUp crea cuenta + profile. El mismatch de confirmación se detecta acá,
// antes de tocar el repo.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (Account, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return Account{}, ErrInvalidInput
	}
	if in.Password != in.ConfirmPassword {
		return Account{}, ErrInvalidInput
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return Account{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	now := s.now()
	a := Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Account{}, err
	}

	if err := s.ensureProfile(ctx, a.ID, in.Name, email); err != nil {
		return Account{}, err
	}
	return a, nil
}

// SignIn valida credenciales y devuelve cuenta + token de sesión.
func (s *Service) SignIn(ctx context.Context, email, password string) (Account, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Account{}, "", ErrInvalidInput
	}

	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return Account{}, "", ErrInvalidCredentials
	}
	if a.PasswordHash == "" {
		// cuenta OAuth sin password local
		return Account{}, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return Account{}, "", ErrInvalidCredentials
	}

	tok, err := s.issueToken(ctx, a)
	if err != nil {
		return Account{}, "", err
	}
	return a, tok, nil
}

// SignInWithOAuth ubica (o crea) la cuenta para una identidad externa y
// garantiza que exista el profile antes de emitir el token.
func (s *Service) SignInWithOAuth(ctx context.Context, id oauth.Identity) (Account, string, error) {
	if strings.TrimSpace(id.Subject) == "" {
		return Account{}, "", ErrInvalidInput
	}

	a, err := s.repo.GetByOAuthSubject(ctx, id.Subject)
	if err != nil {
		a = Account{
			ID:           uuid.NewString(),
			Email:        normalizeEmail(id.Email),
			OAuthSubject: id.Subject,
			CreatedAt:    s.now(),
		}
		if err := s.repo.Create(ctx, a); err != nil {
			return Account{}, "", err
		}
	}

	if err := s.ensureProfile(ctx, a.ID, id.Name, a.Email); err != nil {
		return Account{}, "", err
	}

	tok, err := s.issueToken(ctx, a)
	if err != nil {
		return Account{}, "", err
	}
	return a, tok, nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Profile{}, ErrInvalidInput
	}
	return s.repo.GetProfile(ctx, userID)
}

// ensureProfile crea el profile si no existe. El display name cae en cascada:
// nombre dado -> parte local del email -> "User".
func (s *Service) ensureProfile(ctx context.Context, userID, name, email string) error {
	if _, err := s.repo.GetProfile(ctx, userID); err == nil {
		return nil
	}

	display := strings.TrimSpace(name)
	if display == "" && email != "" {
		display = strings.SplitN(email, "@", 2)[0]
	}
	if display == "" {
		display = "User"
	}

	return s.repo.CreateProfile(ctx, Profile{
		UserID:    userID,
		Name:      display,
		CreatedAt: s.now(),
	})
}

func (s *Service) issueToken(ctx context.Context, a Account) (string, error) {
	p, _ := s.repo.GetProfile(ctx, a.ID)
	return s.issuer.Issue(auth.Claims{
		UserID: a.ID,
		Email:  a.Email,
		Name:   p.Name,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
