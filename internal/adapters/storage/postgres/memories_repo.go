package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	"mypetlife-backend/internal/domain/memories"
)

type MemoriesRepo struct {
	db *sql.DB
}

func NewMemoriesRepo(db *sql.DB) *MemoriesRepo {
	return &MemoriesRepo{db: db}
}

// CreateBatch inserta en una transacción; el orden de inserción respeta el
// slice recibido.
func (r *MemoriesRepo) CreateBatch(ctx context.Context, ms []memories.Memory) error {
	if len(ms) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, m := range ms {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO memories (
				id, user_id, pet_id,
				title, caption, image_url,
				memory_date, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`,
			m.ID,
			m.UserID,
			m.PetID,
			m.Title,
			m.Caption,
			m.ImageURL,
			m.MemoryDate,
			m.CreatedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *MemoriesRepo) ListRecentByOwner(ctx context.Context, ownerUserID string, limit int) ([]memories.Memory, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 12
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, user_id, pet_id,
			title, caption, image_url,
			memory_date, created_at
		FROM memories
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, ownerUserID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMemories(rows)
}

func (r *MemoriesRepo) ListByIDs(ctx context.Context, ids []string) ([]memories.Memory, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	// pgtype maneja el array para ANY($1) sin armar placeholders a mano
	arr := pgtype.FlatArray[string](ids)
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, user_id, pet_id,
			title, caption, image_url,
			memory_date, created_at
		FROM memories
		WHERE id = ANY($1)
		ORDER BY created_at ASC
	`, arr)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMemories(rows)
}

func collectMemories(rows *sql.Rows) ([]memories.Memory, error) {
	out := make([]memories.Memory, 0)
	for rows.Next() {
		var m memories.Memory
		if err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.PetID,
			&m.Title,
			&m.Caption,
			&m.ImageURL,
			&m.MemoryDate,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
