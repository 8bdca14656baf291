package trainers

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
	ErrInvalidID    = errors.New("invalid trainer id")
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
		CreatedAt: now,
		UpdatedAt: now,
	}.normalized())
}

// View combina User + perfil de trainer, todo relleno con defaults.
type View struct {
	FirstName    string
	LastName     string
	Phone        string
	ZipCode      string
	Email        string
	ProfilePhoto string

	BusinessInfo BusinessInfo
	Services     []ServiceOffering
	Location     Location
	Portfolio    Portfolio
	Ratings      Ratings
	IsVerified   bool
}

func (s *Service) GetProfile(ctx context.Context, userID string) (View, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return View{}, ErrNotFound
		}
		return View{}, err
	}
	if u.Role != users.RoleTrainer {
		return View{}, ErrNotFound
	}

	prof, err := s.repo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return View{}, err
	}
	prof = prof.normalized()

	return s.buildView(ctx, u, prof), nil
}

type UpdateInput struct {
	// Campos del User: vacío = no tocar.
	FirstName string
	LastName  string
	Phone     string
	ZipCode   string

	// Campos del perfil: el PUT de trainer es un reemplazo completo,
	// igual que el contrato original (listas omitidas quedan vacías).
	YearsOfExperience int
	Certifications    []Certification
	Services          []ServiceOffering
	Bio               string
	Specializations   []string
	Location          Location
}

// UpdateProfile actualiza el User y upsertea el perfil del trainer.
// Mismas dos escrituras no-atómicas que el lado owner (ver comentario
// en owners.Service.UpdateProfile).
func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateInput) (View, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return View{}, ErrNotFound
		}
		return View{}, err
	}
	if u.Role != users.RoleTrainer {
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

	// Cargar el perfil actual para preservar ratings/isVerified/createdAt,
	// que no son escribibles por este camino.
	prof, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return View{}, err
		}
		prof = Profile{UserID: userID, CreatedAt: now}
	}

	years := in.YearsOfExperience
	if years < 0 {
		years = 0
	}
	prof.BusinessInfo = BusinessInfo{
		YearsOfExperience: years,
		Certifications:    formatCertifications(in.Certifications),
	}

	prof.Services = formatServices(in.Services)
	prof.Portfolio = Portfolio{
		Bio:             strings.TrimSpace(in.Bio),
		Specializations: validSpecializations(in.Specializations, prof.Services),
	}
	prof.Location = Location{
		Address: strings.TrimSpace(in.Location.Address),
		City:    strings.TrimSpace(in.Location.City),
		State:   strings.TrimSpace(in.Location.State),
	}

	prof.UpdatedAt = now
	prof = prof.normalized()

	if err := s.repo.Upsert(ctx, prof); err != nil {
		return View{}, err
	}

	return s.buildView(ctx, u, prof), nil
}

// formatCertifications se queda solo con el nombre y descarta el resto.
func formatCertifications(in []Certification) []Certification {
	out := make([]Certification, 0, len(in))
	for _, c := range in {
		out = append(out, Certification{Name: strings.TrimSpace(c.Name)})
	}
	return out
}

// formatServices aplica defaults numéricos 0 y limpia strings.
func formatServices(in []ServiceOffering) []ServiceOffering {
	out := make([]ServiceOffering, 0, len(in))
	for _, sv := range in {
		if sv.Duration < 0 {
			sv.Duration = 0
		}
		if sv.Price < 0 {
			sv.Price = 0
		}
		out = append(out, ServiceOffering{
			Type:        strings.TrimSpace(sv.Type),
			Description: strings.TrimSpace(sv.Description),
			Duration:    sv.Duration,
			Price:       sv.Price,
		})
	}
	return out
}

// validSpecializations: intersección case-insensitive con los types de
// los servicios enviados, preservando orden y casing de entrada, y
// truncando a MaxSpecializations. Las que no matchean se descartan en
// silencio; nunca es motivo de rechazo.
func validSpecializations(submitted []string, services []ServiceOffering) []string {
	types := make(map[string]struct{}, len(services))
	for _, sv := range services {
		t := strings.ToLower(strings.TrimSpace(sv.Type))
		if t == "" {
			continue
		}
		types[t] = struct{}{}
	}

	out := make([]string, 0, MaxSpecializations)
	for _, spec := range submitted {
		key := strings.ToLower(strings.TrimSpace(spec))
		if key == "" {
			continue
		}
		if _, ok := types[key]; !ok {
			continue
		}
		out = append(out, spec)
		if len(out) == MaxSpecializations {
			break
		}
	}
	return out
}

func (s *Service) buildView(ctx context.Context, u users.User, prof Profile) View {
	v := View{
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		ZipCode:      u.ZipCode,
		Email:        u.Email,
		BusinessInfo: prof.BusinessInfo,
		Services:     prof.Services,
		Location:     prof.Location,
		Portfolio:    prof.Portfolio,
		Ratings:      prof.Ratings,
		IsVerified:   prof.IsVerified,
	}

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
