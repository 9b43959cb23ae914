package memories

import "time"

// Memory es un momento con foto de una mascota. MemoryDate es fecha de
// calendario (no timestamp) elegida por el usuario; nunca futura.
type Memory struct {
	ID     string
	UserID string
	PetID  string

	Title    string
	Caption  string
	ImageURL string

	MemoryDate time.Time
	CreatedAt  time.Time
}
