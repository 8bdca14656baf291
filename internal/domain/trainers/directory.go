package trainers

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"woofpoint-backend/internal/domain/users"
	"woofpoint-backend/internal/ports/objectstore"
)

// Directorio público de trainers para el lado owner.

// Summary es la fila del listado: lo justo para la card del directorio.
type Summary struct {
	ID              string
	FirstName       string
	LastName        string
	ProfilePhoto    string
	Specializations []string
	AverageRating   float64
	TotalReviews    int
	Location        Location
}

// ListTrainers cruza los Users con rol trainer contra sus perfiles.
// Un trainer sin perfil (ventana entre signup y provision, o registro
// legacy) sale igual, con defaults vacíos. El orden sigue al listado
// de Users del repo.
func (s *Service) ListTrainers(ctx context.Context) ([]Summary, error) {
	trainerUsers, err := s.users.ListByRole(ctx, users.RoleTrainer)
	if err != nil {
		return nil, err
	}

	profiles, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byUser := make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		byUser[p.UserID] = p
	}

	out := make([]Summary, 0, len(trainerUsers))
	for _, u := range trainerUsers {
		prof := byUser[u.ID].normalized()

		sum := Summary{
			ID:              u.ID,
			FirstName:       u.FirstName,
			LastName:        u.LastName,
			Specializations: prof.Portfolio.Specializations,
			AverageRating:   prof.Ratings.AverageRating,
			TotalReviews:    prof.Ratings.TotalReviews,
			Location:        prof.Location,
		}
		if u.ProfilePhoto != "" {
			if url, err := s.objects.SignedURL(ctx, u.ProfilePhoto, objectstore.SignedURLTTL); err == nil {
				sum.ProfilePhoto = url
			}
		}
		out = append(out, sum)
	}
	return out, nil
}

// Detail es la vista pública completa de un trainer.
type Detail struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	ProfilePhoto string

	BusinessInfo BusinessInfo
	Services     []ServiceOffering
	Location     Location
	Ratings      Ratings
	Portfolio    Portfolio
	IsVerified   bool
}

// GetDetail busca un trainer por id para la vista de detalle.
// Id malformado es ErrInvalidID (400); user inexistente, rol distinto
// o perfil ausente son ErrNotFound (404). Acá el perfil ausente NO se
// rellena: el detalle público exige perfil real.
func (s *Service) GetDetail(ctx context.Context, trainerID string) (Detail, error) {
	trainerID = strings.TrimSpace(trainerID)
	if _, err := uuid.Parse(trainerID); err != nil {
		return Detail{}, ErrInvalidID
	}

	u, err := s.users.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return Detail{}, ErrNotFound
		}
		return Detail{}, err
	}
	if u.Role != users.RoleTrainer {
		return Detail{}, ErrNotFound
	}

	prof, err := s.repo.GetByUserID(ctx, trainerID)
	if err != nil {
		return Detail{}, err
	}
	prof = prof.normalized()

	d := Detail{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Phone:        u.Phone,
		BusinessInfo: prof.BusinessInfo,
		Services:     prof.Services,
		Location:     prof.Location,
		Ratings:      prof.Ratings,
		Portfolio:    prof.Portfolio,
		IsVerified:   prof.IsVerified,
	}
	if u.ProfilePhoto != "" {
		if url, err := s.objects.SignedURL(ctx, u.ProfilePhoto, objectstore.SignedURLTTL); err == nil {
			d.ProfilePhoto = url
		}
	}
	return d, nil
}
