package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"woofpoint-backend/internal/ports/auth"
)

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrTokenInvalid = errors.New("invalid or expired token")
)

// TokenTTL replica la vigencia del token de sesión: 7 días.
const TokenTTL = 7 * 24 * time.Hour

// devSecret permite levantar el servicio sin env vars (modo dev / handoff).
// En cualquier entorno real JWT_SECRET debe estar seteado.
const devSecret = "dev-secret-change-me"

// Service implementa auth.TokenService con HMAC-SHA256.
// Los nombres de claims en el wire (`_id`, `role`, `email`) vienen del
// contrato que ya consumen los clientes; no renombrar.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type wireClaims struct {
	UserID string `json:"_id"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = TokenTTL
	}
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// NewServiceFromEnv lee JWT_SECRET; si falta usa el secreto dev.
func NewServiceFromEnv() *Service {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = devSecret
	}
	return NewService(secret, TokenTTL)
}

func (s *Service) Issue(ctx context.Context, claims auth.Claims) (string, error) {
	if strings.TrimSpace(claims.UserID) == "" {
		return "", errors.New("claims missing user id")
	}

	now := s.now()
	wc := wireClaims{
		UserID: claims.UserID,
		Role:   claims.Role,
		Email:  claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, wc)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *Service) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	parsed, err := jwt.ParseWithClaims(
		token,
		&wireClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil || !parsed.Valid {
		// Expirado, firma mala, formato malo: para el gate todos son 403.
		return auth.Claims{}, ErrTokenInvalid
	}

	wc, ok := parsed.Claims.(*wireClaims)
	if !ok || strings.TrimSpace(wc.UserID) == "" {
		return auth.Claims{}, ErrTokenInvalid
	}

	return auth.Claims{
		UserID: wc.UserID,
		Role:   wc.Role,
		Email:  wc.Email,
	}, nil
}
