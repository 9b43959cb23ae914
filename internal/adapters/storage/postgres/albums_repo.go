package postgres

import (
	"context"
	"database/sql"
	"strings"

	"mypetlife-backend/internal/domain/albums"
)

type AlbumsRepo struct {
	db *sql.DB
}

func NewAlbumsRepo(db *sql.DB) *AlbumsRepo {
	return &AlbumsRepo{db: db}
}

func (r *AlbumsRepo) Create(ctx context.Context, a albums.Album) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO albums (
			id, user_id, pet_id,
			name, description, cover_image_url,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		a.ID,
		a.UserID,
		a.PetID,
		a.Name,
		a.Description,
		a.CoverImageURL,
		a.CreatedAt,
	)
	return err
}

func (r *AlbumsRepo) GetByID(ctx context.Context, id string) (albums.Album, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return albums.Album{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, user_id, pet_id,
			name, description, cover_image_url,
			created_at
		FROM albums
		WHERE id = $1
	`, id)

	var a albums.Album
	if err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.PetID,
		&a.Name,
		&a.Description,
		&a.CoverImageURL,
		&a.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return albums.Album{}, ErrNotFound
		}
		return albums.Album{}, err
	}
	return a, nil
}

func (r *AlbumsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]albums.Album, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, user_id, pet_id,
			name, description, cover_image_url,
			created_at
		FROM albums
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]albums.Album, 0)
	for rows.Next() {
		var a albums.Album
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.PetID,
			&a.Name,
			&a.Description,
			&a.CoverImageURL,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AlbumsRepo) CreateLinks(ctx context.Context, links []albums.Link) error {
	if len(links) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, l := range links {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO album_memories (album_id, memory_id)
			VALUES ($1,$2)
		`, l.AlbumID, l.MemoryID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *AlbumsRepo) ListLinksByAlbum(ctx context.Context, albumID string) ([]albums.Link, error) {
	albumID = strings.TrimSpace(albumID)
	if albumID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT album_id, memory_id
		FROM album_memories
		WHERE album_id = $1
	`, albumID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]albums.Link, 0)
	for rows.Next() {
		var l albums.Link
		if err := rows.Scan(&l.AlbumID, &l.MemoryID); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
