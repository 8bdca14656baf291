package owners

import "time"

// DogSize define los tamaños soportados.
// @Enum small, medium, large
type DogSize string

const (
	SizeSmall  DogSize = "small"
	SizeMedium DogSize = "medium"
	SizeLarge  DogSize = "large"
)

func ParseDogSize(s string) (DogSize, bool) {
	switch DogSize(s) {
	case SizeSmall:
		return SizeSmall, true
	case SizeMedium:
		return SizeMedium, true
	case SizeLarge:
		return SizeLarge, true
	default:
		return "", false
	}
}

// Location del owner. Todos los campos son opcionales con default "".
type Location struct {
	Address string
	City    string
	State   string
	ZipCode string
}

// Dog es una entrada embebida en el perfil del owner.
// El ID lo asigna el sistema y es estable mientras viva la entrada:
// la API de mutación direcciona por id, nunca por posición en la lista.
type Dog struct {
	ID     string
	Name   string
	Breed  string
	Age    int
	Size   DogSize
	Photos []string
}

// Profile es el registro de rol del owner, 1:1 con su User.
type Profile struct {
	UserID string

	Location Location
	Dogs     []Dog

	CreatedAt time.Time
	UpdatedAt time.Time
}
