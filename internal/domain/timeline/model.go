package timeline

import "time"

// Kind etiqueta qué originó la actividad.
type Kind string

const (
	KindMemory Kind = "memory"
	KindAlbum  Kind = "album"
)

// Activity es una entrada desnormalizada del feed. Solo se muestra; nunca se
// lee para reconstruir el estado de memories/albums.
type Activity struct {
	ID     string
	UserID string
	PetID  string

	Kind        Kind
	Title       string
	Description string

	RelatedID string // memory o album según Kind
	ImageURL  string

	CreatedAt time.Time
}
