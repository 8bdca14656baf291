package trainers

import "context"

type Repository interface {
	Create(ctx context.Context, p Profile) error
	GetByUserID(ctx context.Context, userID string) (Profile, error)
	Upsert(ctx context.Context, p Profile) error

	// ListAll trae todos los perfiles de trainer; el directorio los
	// cruza contra los Users con rol trainer.
	ListAll(ctx context.Context) ([]Profile, error)
}
