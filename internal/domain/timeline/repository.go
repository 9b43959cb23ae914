package timeline

import "context"

type Repository interface {
	CreateBatch(ctx context.Context, as []Activity) error
	ListRecentByOwner(ctx context.Context, ownerUserID string, limit int) ([]Activity, error)
}
