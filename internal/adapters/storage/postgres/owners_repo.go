package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"woofpoint-backend/internal/domain/owners"
)

// Los perros viven como JSONB dentro de la fila del perfil: la lista
// siempre se lee y escribe entera, igual que el documento original.

type OwnersRepo struct {
	db *sql.DB
}

func NewOwnersRepo(db *sql.DB) *OwnersRepo {
	return &OwnersRepo{db: db}
}

type dogRecord struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Breed  string   `json:"breed"`
	Age    int      `json:"age"`
	Size   string   `json:"size"`
	Photos []string `json:"photos"`
}

func (r *OwnersRepo) Create(ctx context.Context, p owners.Profile) error {
	dogs, err := marshalDogs(p.Dogs)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO owner_profiles (
			user_id,
			address, city, state, zip_code,
			dogs,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		p.UserID,
		p.Location.Address,
		p.Location.City,
		p.Location.State,
		p.Location.ZipCode,
		dogs,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *OwnersRepo) Upsert(ctx context.Context, p owners.Profile) error {
	dogs, err := marshalDogs(p.Dogs)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO owner_profiles (
			user_id,
			address, city, state, zip_code,
			dogs,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (user_id) DO UPDATE SET
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			zip_code = EXCLUDED.zip_code,
			dogs = EXCLUDED.dogs,
			updated_at = EXCLUDED.updated_at
	`,
		p.UserID,
		p.Location.Address,
		p.Location.City,
		p.Location.State,
		p.Location.ZipCode,
		dogs,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *OwnersRepo) GetByUserID(ctx context.Context, userID string) (owners.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return owners.Profile{}, owners.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			user_id,
			address, city, state, zip_code,
			dogs,
			created_at, updated_at
		FROM owner_profiles
		WHERE user_id = $1
	`, userID)

	var p owners.Profile
	var dogsRaw []byte
	if err := row.Scan(
		&p.UserID,
		&p.Location.Address,
		&p.Location.City,
		&p.Location.State,
		&p.Location.ZipCode,
		&dogsRaw,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return owners.Profile{}, owners.ErrNotFound
		}
		return owners.Profile{}, err
	}

	dogs, err := unmarshalDogs(dogsRaw)
	if err != nil {
		return owners.Profile{}, err
	}
	p.Dogs = dogs

	return p, nil
}

func marshalDogs(dogs []owners.Dog) ([]byte, error) {
	records := make([]dogRecord, 0, len(dogs))
	for _, d := range dogs {
		photos := d.Photos
		if photos == nil {
			photos = []string{}
		}
		records = append(records, dogRecord{
			ID:     d.ID,
			Name:   d.Name,
			Breed:  d.Breed,
			Age:    d.Age,
			Size:   string(d.Size),
			Photos: photos,
		})
	}
	return json.Marshal(records)
}

func unmarshalDogs(raw []byte) ([]owners.Dog, error) {
	if len(raw) == 0 {
		return []owners.Dog{}, nil
	}
	var records []dogRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	out := make([]owners.Dog, 0, len(records))
	for _, rec := range records {
		photos := rec.Photos
		if photos == nil {
			photos = []string{}
		}
		out = append(out, owners.Dog{
			ID:     rec.ID,
			Name:   rec.Name,
			Breed:  rec.Breed,
			Age:    rec.Age,
			Size:   owners.DogSize(rec.Size),
			Photos: photos,
		})
	}
	return out, nil
}
