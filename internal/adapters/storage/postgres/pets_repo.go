package postgres

import (
	"context"
	"database/sql"
	"strings"

	"mypetlife-backend/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, user_id,
			name, type, breed, date_of_birth, gender,
			color, weight, special_notes,
			avatar_url, is_alive, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		p.ID,
		p.UserID,
		p.Name,
		p.Type,
		p.Breed,
		p.DateOfBirth,
		p.Gender,
		p.Color,
		p.Weight,
		p.SpecialNotes,
		p.AvatarURL,
		p.IsAlive,
		p.CreatedAt,
	)
	return err
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, user_id,
			name, type, breed, date_of_birth, gender,
			color, weight, special_notes,
			avatar_url, is_alive, created_at
		FROM pets
		WHERE id = $1
	`, id)

	var p pets.Pet
	if err := scanPet(row.Scan, &p); err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) ListAliveByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, user_id,
			name, type, breed, date_of_birth, gender,
			color, weight, special_notes,
			avatar_url, is_alive, created_at
		FROM pets
		WHERE user_id = $1 AND is_alive = TRUE
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		var p pets.Pet
		if err := scanPet(rows.Scan, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetsRepo) SetAvatar(ctx context.Context, id, avatarURL string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets SET avatar_url = $2 WHERE id = $1
	`, id, avatarURL)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPet(scan func(dest ...any) error, p *pets.Pet) error {
	return scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Type,
		&p.Breed,
		&p.DateOfBirth,
		&p.Gender,
		&p.Color,
		&p.Weight,
		&p.SpecialNotes,
		&p.AvatarURL,
		&p.IsAlive,
		&p.CreatedAt,
	)
}
