package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListAliveByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)

	// SetAvatar es la única mutación post-creación que hace este servicio.
	SetAvatar(ctx context.Context, id, avatarURL string) error
}
