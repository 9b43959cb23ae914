package albums

import "context"

type Repository interface {
	Create(ctx context.Context, a Album) error
	GetByID(ctx context.Context, id string) (Album, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Album, error)

	CreateLinks(ctx context.Context, links []Link) error
	ListLinksByAlbum(ctx context.Context, albumID string) ([]Link, error)
}
