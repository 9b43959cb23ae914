package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"mypetlife-backend/internal/domain/accounts"
)

var (
	ErrNotFound = errors.New("not found")
)

type accountsRepo struct {
	mu       sync.RWMutex
	byID     map[string]accounts.Account
	profiles map[string]accounts.Profile
}

func NewAccountsRepo() accounts.Repository {
	return &accountsRepo{
		byID:     make(map[string]accounts.Account),
		profiles: make(map[string]accounts.Profile),
	}
}

func (r *accountsRepo) Create(ctx context.Context, a accounts.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("account id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("account already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *accountsRepo) GetByID(ctx context.Context, id string) (accounts.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return accounts.Account{}, ErrNotFound
	}
	return a, nil
}

func (r *accountsRepo) GetByEmail(ctx context.Context, email string) (accounts.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.byID {
		if a.Email == email {
			return a, nil
		}
	}
	return accounts.Account{}, ErrNotFound
}

func (r *accountsRepo) GetByOAuthSubject(ctx context.Context, subject string) (accounts.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if strings.TrimSpace(subject) == "" {
		return accounts.Account{}, ErrNotFound
	}
	for _, a := range r.byID {
		if a.OAuthSubject == subject {
			return a, nil
		}
	}
	return accounts.Account{}, ErrNotFound
}

func (r *accountsRepo) CreateProfile(ctx context.Context, p accounts.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.UserID) == "" {
		return errors.New("profile user id required")
	}
	if _, exists := r.profiles[p.UserID]; exists {
		return errors.New("profile already exists")
	}
	r.profiles[p.UserID] = p
	return nil
}

func (r *accountsRepo) GetProfile(ctx context.Context, userID string) (accounts.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]
	if !ok {
		return accounts.Profile{}, ErrNotFound
	}
	return p, nil
}
