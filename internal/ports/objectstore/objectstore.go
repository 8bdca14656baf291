package objectstore

import (
	"context"
	"time"
)

// SignedURLTTL es la vigencia de los signed URLs de fotos de perfil.
// Fijo por ahora; si algún día se necesita por-request, pasa a config.
const SignedURLTTL = time.Hour

// Store abstrae el bucket privado de fotos.
// Put sube bytes bajo una key; SignedURL devuelve acceso temporal de lectura.
type Store interface {
	Put(ctx context.Context, key string, contentType string, data []byte) error
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
