package owners

import "context"

type Repository interface {
	Create(ctx context.Context, p Profile) error
	GetByUserID(ctx context.Context, userID string) (Profile, error)

	// Upsert escribe el perfil completo keyed por userID
	// (create-if-absent, igual que el storage original).
	Upsert(ctx context.Context, p Profile) error
}
