package postgres

import (
	"context"
	"database/sql"
	"strings"

	"mypetlife-backend/internal/domain/timeline"
)

type TimelineRepo struct {
	db *sql.DB
}

func NewTimelineRepo(db *sql.DB) *TimelineRepo {
	return &TimelineRepo{db: db}
}

func (r *TimelineRepo) CreateBatch(ctx context.Context, as []timeline.Activity) error {
	if len(as) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, a := range as {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO timeline_activities (
				id, user_id, pet_id,
				activity_type, title, description,
				related_id, image_url, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`,
			a.ID,
			a.UserID,
			a.PetID,
			string(a.Kind),
			a.Title,
			a.Description,
			a.RelatedID,
			a.ImageURL,
			a.CreatedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *TimelineRepo) ListRecentByOwner(ctx context.Context, ownerUserID string, limit int) ([]timeline.Activity, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, user_id, pet_id,
			activity_type, title, description,
			related_id, image_url, created_at
		FROM timeline_activities
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, ownerUserID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]timeline.Activity, 0)
	for rows.Next() {
		var a timeline.Activity
		var kind string
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.PetID,
			&kind,
			&a.Title,
			&a.Description,
			&a.RelatedID,
			&a.ImageURL,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		a.Kind = timeline.Kind(kind)
		out = append(out, a)
	}
	return out, rows.Err()
}
