package pets

import "time"

// PetType son los tipos que ofrece el formulario de onboarding.
type PetType string

const (
	TypeDog       PetType = "Dog"
	TypeCat       PetType = "Cat"
	TypeBird      PetType = "Bird"
	TypeFish      PetType = "Fish"
	TypeRabbit    PetType = "Rabbit"
	TypeHamster   PetType = "Hamster"
	TypeGuineaPig PetType = "Guinea Pig"
	TypeReptile   PetType = "Reptile"
	TypeOther     PetType = "Other"
)

type Gender string

const (
	GenderMale    Gender = "Male"
	GenderFemale  Gender = "Female"
	GenderUnknown Gender = "Unknown"
)

// Pet es el perfil de una mascota. AvatarURL nace vacío y se parchea una sola
// vez cuando termina la subida de fotos del onboarding (creación en dos fases).
type Pet struct {
	ID     string
	UserID string

	Name         string
	Type         string // PetType
	Breed        string
	DateOfBirth  time.Time
	Gender       string // Gender
	Color        string
	Weight       string
	SpecialNotes string

	AvatarURL string
	IsAlive   bool

	CreatedAt time.Time
}
