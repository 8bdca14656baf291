package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"woofpoint-backend/internal/ports/auth"
	"woofpoint-backend/internal/ports/objectstore"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ProfileProvisioner crea el perfil de rol vacío en el signup.
// Interface chica definida acá para no importar owners/trainers
// (evita ciclos: ellos sí importan users).
type ProfileProvisioner interface {
	Provision(ctx context.Context, userID string) error
}

type Service struct {
	repo     Repository
	tokens   auth.TokenService
	objects  objectstore.Store
	owners   ProfileProvisioner
	trainers ProfileProvisioner
	now      func() time.Time
}

func NewService(
	repo Repository,
	tokens auth.TokenService,
	objects objectstore.Store,
	owners ProfileProvisioner,
	trainers ProfileProvisioner,
) *Service {
	return &Service{
		repo:     repo,
		tokens:   tokens,
		objects:  objects,
		owners:   owners,
		trainers: trainers,
		now:      time.Now,
	}
}

type SignupInput struct {
	Email     string
	Password  string
	Role      string
	FirstName string
	LastName  string
	Phone     string
	ZipCode   string
}

// Signup crea el User, su perfil de rol vacío, y devuelve el token de sesión.
func (s *Service) Signup(ctx context.Context, in SignupInput) (string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	password := strings.TrimSpace(in.Password)

	role, okRole := ParseRole(strings.TrimSpace(in.Role))

	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	phone := strings.TrimSpace(in.Phone)
	zipCode := strings.TrimSpace(in.ZipCode)

	switch {
	case email == "", password == "", firstName == "", lastName == "":
		return "", ErrInvalidInput
	case !okRole:
		return "", ErrInvalidInput
	case len(password) < 6:
		return "", ErrInvalidInput
	case !ValidPhone(phone):
		return "", ErrInvalidInput
	case !ValidZipCode(zipCode):
		return "", ErrInvalidInput
	}

	// Chequeo de duplicado antes de crear (la constraint unique del
	// storage sigue siendo la red de seguridad ante la carrera).
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return "", ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		ZipCode:      zipCode,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	// Perfil de rol vacío desde el día cero: addDog y el upsert de perfil
	// asumen que el registro de owner/trainer ya existe.
	switch role {
	case RoleOwner:
		err = s.owners.Provision(ctx, u.ID)
	case RoleTrainer:
		err = s.trainers.Provision(ctx, u.ID)
	}
	if err != nil {
		return "", fmt.Errorf("provision %s profile: %w", role, err)
	}

	return s.issueToken(ctx, u)
}

// Login valida credenciales y devuelve el user (con hash) + token.
// El handler decide qué campos exponer.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return User{}, "", ErrInvalidInput
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, u)
	if err != nil {
		return User{}, "", err
	}
	return u, token, nil
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	if strings.TrimSpace(id) == "" {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

type PhotoUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// UploadPhoto sube la imagen al bucket y guarda la key en el User.
// Devuelve el user actualizado y un signed URL de lectura.
func (s *Service) UploadPhoto(ctx context.Context, userID string, in PhotoUpload) (User, string, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return User{}, "", err
	}

	name := strings.TrimSpace(in.FileName)
	if name == "" {
		name = "photo.jpg"
	}

	key := fmt.Sprintf("profile-photos/%s-%d-%s", userID, s.now().UnixMilli(), name)

	if err := s.objects.Put(ctx, key, in.ContentType, in.Data); err != nil {
		return User{}, "", fmt.Errorf("upload photo: %w", err)
	}

	u.ProfilePhoto = key
	u.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, "", err
	}

	// La URL firmada es best-effort: si falla devolvemos el user igual.
	signed, err := s.objects.SignedURL(ctx, key, objectstore.SignedURLTTL)
	if err != nil {
		signed = ""
	}
	return u, signed, nil
}

func (s *Service) issueToken(ctx context.Context, u User) (string, error) {
	token, err := s.tokens.Issue(ctx, auth.Claims{
		UserID: u.ID,
		Role:   string(u.Role),
		Email:  u.Email,
	})
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
