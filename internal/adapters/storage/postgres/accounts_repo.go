package postgres

import (
	"context"
	"database/sql"
	"strings"

	"mypetlife-backend/internal/domain/accounts"
)

type AccountsRepo struct {
	db *sql.DB
}

func NewAccountsRepo(db *sql.DB) *AccountsRepo {
	return &AccountsRepo{db: db}
}

func (r *AccountsRepo) Create(ctx context.Context, a accounts.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (
			id, email, password_hash, oauth_subject, created_at
		) VALUES ($1,$2,$3,$4,$5)
	`,
		a.ID,
		a.Email,
		a.PasswordHash,
		a.OAuthSubject,
		a.CreatedAt,
	)
	return err
}

func (r *AccountsRepo) GetByID(ctx context.Context, id string) (accounts.Account, error) {
	return r.getBy(ctx, `WHERE id = $1`, strings.TrimSpace(id))
}

func (r *AccountsRepo) GetByEmail(ctx context.Context, email string) (accounts.Account, error) {
	return r.getBy(ctx, `WHERE email = $1`, strings.TrimSpace(email))
}

func (r *AccountsRepo) GetByOAuthSubject(ctx context.Context, subject string) (accounts.Account, error) {
	return r.getBy(ctx, `WHERE oauth_subject = $1`, strings.TrimSpace(subject))
}

func (r *AccountsRepo) getBy(ctx context.Context, where, arg string) (accounts.Account, error) {
	if arg == "" {
		return accounts.Account{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, oauth_subject, created_at
		FROM accounts
	`+where, arg)

	var a accounts.Account
	if err := row.Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.OAuthSubject,
		&a.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return accounts.Account{}, ErrNotFound
		}
		return accounts.Account{}, err
	}
	return a, nil
}

func (r *AccountsRepo) CreateProfile(ctx context.Context, p accounts.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_profiles (user_id, name, created_at)
		VALUES ($1,$2,$3)
	`,
		p.UserID,
		p.Name,
		p.CreatedAt,
	)
	return err
}

func (r *AccountsRepo) GetProfile(ctx context.Context, userID string) (accounts.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return accounts.Profile{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, name, created_at
		FROM user_profiles
		WHERE user_id = $1
	`, userID)

	var p accounts.Profile
	if err := row.Scan(&p.UserID, &p.Name, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return accounts.Profile{}, ErrNotFound
		}
		return accounts.Profile{}, err
	}
	return p, nil
}
