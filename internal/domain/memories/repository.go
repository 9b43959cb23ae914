package memories

import "context"

type Repository interface {
	// CreateBatch inserta en el orden recibido (el workflow depende de eso
	// para emparejar memories con las URLs subidas).
	CreateBatch(ctx context.Context, ms []Memory) error
	ListRecentByOwner(ctx context.Context, ownerUserID string, limit int) ([]Memory, error)
	ListByIDs(ctx context.Context, ids []string) ([]Memory, error)
}
