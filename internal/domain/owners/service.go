package owners

import (
	"context"
	"errors"
	"strings"
	"time"

	"woofpoint-backend/internal/domain/users"
	"woofpoint-backend/internal/ports/objectstore"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	users   users.Repository
	repo    Repository
	objects objectstore.Store
	now     func() time.Time
}

func NewService(usersRepo users.Repository, repo Repository, objects objectstore.Store) *Service {
	return &Service{
		users:   usersRepo,
		repo:    repo,
		objects: objects,
		now:     time.Now,
	}
}

// Provision crea el perfil vacío en el signup. Idempotente.
func (s *Service) Provision(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrInvalidInput
	}

	if _, err := s.repo.GetByUserID(ctx, userID); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	now := s.now()
	return s.repo.Create(ctx, Profile{
		UserID:    userID,
		Dogs:      []Dog{},
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// View es el contrato de lectura: User + perfil de owner combinados,
// con todos los campos estructurados rellenos (nunca null).
type View struct {
	FirstName    string
	LastName     string
	Phone        string
	ZipCode      string
	Email        string
	ProfilePhoto string // signed URL, "" si no hay foto o falla la firma

	Location Location
	Dogs     []Dog
}

// GetProfile combina User + OwnerProfile. El User ausente (o de otro rol)
// es 404 duro; el perfil ausente se rellena con defaults vacíos.
func (s *Service) GetProfile(ctx context.Context, userID string) (View, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return View{}, ErrNotFound
		}
		return View{}, err
	}
	if u.Role != users.RoleOwner {
		return View{}, ErrNotFound
	}

	prof, err := s.repo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return View{}, err
	}

	return s.buildView(ctx, u, prof), nil
}

type LocationInput struct {
	Address string
	City    string
	State   string
	ZipCode string
}

type UpdateInput struct {
	// Campos del User: vacío = no tocar (el frontend manda siempre todos).
	FirstName string
	LastName  string
	Phone     string
	ZipCode   string

	// Location: nil = no tocar; presente = reemplazo con defaults "".
	Location *LocationInput
}

// UpdateProfile actualiza los campos mutables del User y upsertea el
// perfil de owner en la misma operación lógica.
//
// Las dos escrituras NO son atómicas: si el upsert del perfil falla
// después de actualizar el User, queda una escritura parcial. Asumido
// y documentado; no hay transacción multi-registro en este servicio.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateInput) (View, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return View{}, ErrNotFound
		}
		return View{}, err
	}
	if u.Role != users.RoleOwner {
		return View{}, ErrNotFound
	}

	if err := applyUserFields(&u, in.FirstName, in.LastName, in.Phone, in.ZipCode); err != nil {
		return View{}, err
	}

	now := s.now()
	u.UpdatedAt = now
	if err := s.users.Update(ctx, u); err != nil {
		return View{}, err
	}

	prof, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return View{}, err
		}
		prof = Profile{UserID: userID, Dogs: []Dog{}, CreatedAt: now}
	}

	if in.Location != nil {
		prof.Location = Location{
			Address: strings.TrimSpace(in.Location.Address),
			City:    strings.TrimSpace(in.Location.City),
			State:   strings.TrimSpace(in.Location.State),
			ZipCode: strings.TrimSpace(in.Location.ZipCode),
		}
	}

	prof.UpdatedAt = now
	if err := s.repo.Upsert(ctx, prof); err != nil {
		return View{}, err
	}

	return s.buildView(ctx, u, prof), nil
}

func (s *Service) buildView(ctx context.Context, u users.User, prof Profile) View {
	v := View{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		ZipCode:   u.ZipCode,
		Email:     u.Email,
		Location:  prof.Location,
		Dogs:      prof.Dogs,
	}
	if v.Dogs == nil {
		v.Dogs = []Dog{}
	}

	// Foto: la key se resuelve a un signed URL temporal.
	// Si la firma falla devolvemos "" y el perfil sale igual.
	if u.ProfilePhoto != "" {
		if url, err := s.objects.SignedURL(ctx, u.ProfilePhoto, objectstore.SignedURLTTL); err == nil {
			v.ProfilePhoto = url
		}
	}
	return v
}

func applyUserFields(u *users.User, firstName, lastName, phone, zipCode string) error {
	if v := strings.TrimSpace(firstName); v != "" {
		u.FirstName = v
	}
	if v := strings.TrimSpace(lastName); v != "" {
		u.LastName = v
	}
	if v := strings.TrimSpace(phone); v != "" {
		if !users.ValidPhone(v) {
			return ErrInvalidInput
		}
		u.Phone = v
	}
	if v := strings.TrimSpace(zipCode); v != "" {
		if !users.ValidZipCode(v) {
			return ErrInvalidInput
		}
		u.ZipCode = v
	}
	return nil
}
