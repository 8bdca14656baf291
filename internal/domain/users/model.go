package users

import (
	"regexp"
	"time"
)

// Role define los dos perfiles del marketplace.
// Inmutable después del signup.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleTrainer Role = "trainer"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleOwner:
		return RoleOwner, true
	case RoleTrainer:
		return RoleTrainer, true
	default:
		return "", false
	}
}

var (
	phoneRe = regexp.MustCompile(`^[0-9]{10}$`)
	zipRe   = regexp.MustCompile(`^[0-9]{5,6}$`)
)

// ValidPhone: 10 dígitos exactos.
func ValidPhone(s string) bool { return phoneRe.MatchString(s) }

// ValidZipCode: 5 o 6 dígitos.
func ValidZipCode(s string) bool { return zipRe.MatchString(s) }

// User es la identidad del sistema.
// ProfilePhoto guarda la key del objeto en el bucket (no la URL completa);
// la URL firmada se resuelve recién al leer el perfil.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role

	FirstName string
	LastName  string
	Phone     string
	ZipCode   string

	ProfilePhoto string

	CreatedAt time.Time
	UpdatedAt time.Time
}
