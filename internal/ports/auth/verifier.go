package auth

import "context"

// TokenVerifier verifica un token y devuelve claims o error.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer firma un token con los claims dados.
// Este servicio emite sus propios tokens (signup/login), así que el
// contrato cubre las dos direcciones.
type TokenIssuer interface {
	Issue(ctx context.Context, claims Claims) (string, error)
}

type TokenService interface {
	TokenIssuer
	TokenVerifier
}
