package albums

import "time"

// Album agrupa memories bajo una portada. La portada siempre es la imagen de
// una de sus memories (el workflow lo garantiza al crear).
type Album struct {
	ID     string
	UserID string
	PetID  string

	Name          string
	Description   string
	CoverImageURL string

	CreatedAt time.Time
}

// Link es el join album-memory puro; muchos-a-muchos en principio, acá se usa
// un álbum -> muchas memories al momento de crear.
type Link struct {
	AlbumID  string
	MemoryID string
}
