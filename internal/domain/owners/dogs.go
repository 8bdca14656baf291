package owners

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Mutaciones sobre la lista embebida de perros.
//
// Las tres operaciones leen-modifican-escriben el perfil completo del
// owner. Dos mutaciones concurrentes sobre el mismo owner terminan en
// last-write-wins del storage; es una carrera aceptada para este scope
// (baja contención por usuario), no la endurecemos.

type DogInput struct {
	Name   string
	Breed  string
	Size   string
	Age    *int
	Photos []string
}

// AddDog agrega una entrada con id nuevo al final de la lista.
// El perfil del owner debe existir (se crea en el signup).
func (s *Service) AddDog(ctx context.Context, userID string, in DogInput) (Dog, error) {
	prof, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return Dog{}, err
	}

	size := SizeSmall
	if v := strings.TrimSpace(in.Size); v != "" {
		parsed, ok := ParseDogSize(v)
		if !ok {
			return Dog{}, ErrInvalidInput
		}
		size = parsed
	}

	age := 0
	if in.Age != nil {
		if *in.Age < 0 {
			return Dog{}, ErrInvalidInput
		}
		age = *in.Age
	}

	photos := in.Photos
	if photos == nil {
		photos = []string{}
	}

	dog := Dog{
		ID:     uuid.NewString(),
		Name:   strings.TrimSpace(in.Name),
		Breed:  strings.TrimSpace(in.Breed),
		Age:    age,
		Size:   size,
		Photos: photos,
	}

	prof.Dogs = append(prof.Dogs, dog)
	prof.UpdatedAt = s.now()

	if err := s.repo.Upsert(ctx, prof); err != nil {
		return Dog{}, err
	}

	// Última posición == recién agregado: append es el único camino de
	// inserción y el servicio nunca reordena entradas existentes.
	return prof.Dogs[len(prof.Dogs)-1], nil
}

type DogPatch struct {
	// Punteros para PATCH real: nil = no tocar.
	Name   *string
	Breed  *string
	Size   *string
	Age    *int
	Photos *[]string
}

// UpdateDog hace merge superficial del patch sobre la entrada con ese id.
func (s *Service) UpdateDog(ctx context.Context, userID, dogID string, patch DogPatch) (Dog, error) {
	prof, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return Dog{}, err
	}

	idx := findDog(prof.Dogs, dogID)
	if idx < 0 {
		return Dog{}, ErrNotFound
	}

	dog := prof.Dogs[idx]

	if patch.Name != nil {
		dog.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Breed != nil {
		dog.Breed = strings.TrimSpace(*patch.Breed)
	}
	if patch.Size != nil {
		parsed, ok := ParseDogSize(strings.TrimSpace(*patch.Size))
		if !ok {
			return Dog{}, ErrInvalidInput
		}
		dog.Size = parsed
	}
	if patch.Age != nil {
		if *patch.Age < 0 {
			return Dog{}, ErrInvalidInput
		}
		dog.Age = *patch.Age
	}
	if patch.Photos != nil {
		photos := *patch.Photos
		if photos == nil {
			photos = []string{}
		}
		dog.Photos = photos
	}

	prof.Dogs[idx] = dog
	prof.UpdatedAt = s.now()

	if err := s.repo.Upsert(ctx, prof); err != nil {
		return Dog{}, err
	}
	return dog, nil
}

// DeleteDog saca la entrada de la lista. Idempotente: si el id ya no
// está, no es error.
func (s *Service) DeleteDog(ctx context.Context, userID, dogID string) error {
	prof, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	idx := findDog(prof.Dogs, dogID)
	if idx < 0 {
		return nil
	}

	prof.Dogs = append(prof.Dogs[:idx], prof.Dogs[idx+1:]...)
	prof.UpdatedAt = s.now()

	return s.repo.Upsert(ctx, prof)
}

func findDog(dogs []Dog, dogID string) int {
	dogID = strings.TrimSpace(dogID)
	if dogID == "" {
		return -1
	}
	for i, d := range dogs {
		if d.ID == dogID {
			return i
		}
	}
	return -1
}
