package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"woofpoint-backend/internal/domain/trainers"
)

// Certificaciones, servicios y especializaciones van como JSONB en la
// fila del perfil, misma estrategia que los perros del owner.

type TrainersRepo struct {
	db *sql.DB
}

func NewTrainersRepo(db *sql.DB) *TrainersRepo {
	return &TrainersRepo{db: db}
}

type certRecord struct {
	Name string `json:"name"`
}

type serviceRecord struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
}

func (r *TrainersRepo) Create(ctx context.Context, p trainers.Profile) error {
	certs, services, specs, err := marshalTrainerLists(p)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO trainer_profiles (
			user_id,
			years_of_experience, certifications,
			services,
			address, city, state,
			average_rating, total_reviews,
			bio, specializations,
			is_verified,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		p.UserID,
		p.BusinessInfo.YearsOfExperience,
		certs,
		services,
		p.Location.Address,
		p.Location.City,
		p.Location.State,
		p.Ratings.AverageRating,
		p.Ratings.TotalReviews,
		p.Portfolio.Bio,
		specs,
		p.IsVerified,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *TrainersRepo) Upsert(ctx context.Context, p trainers.Profile) error {
	certs, services, specs, err := marshalTrainerLists(p)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO trainer_profiles (
			user_id,
			years_of_experience, certifications,
			services,
			address, city, state,
			average_rating, total_reviews,
			bio, specializations,
			is_verified,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (user_id) DO UPDATE SET
			years_of_experience = EXCLUDED.years_of_experience,
			certifications = EXCLUDED.certifications,
			services = EXCLUDED.services,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			bio = EXCLUDED.bio,
			specializations = EXCLUDED.specializations,
			updated_at = EXCLUDED.updated_at
	`,
		p.UserID,
		p.BusinessInfo.YearsOfExperience,
		certs,
		services,
		p.Location.Address,
		p.Location.City,
		p.Location.State,
		p.Ratings.AverageRating,
		p.Ratings.TotalReviews,
		p.Portfolio.Bio,
		specs,
		p.IsVerified,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *TrainersRepo) GetByUserID(ctx context.Context, userID string) (trainers.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return trainers.Profile{}, trainers.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, selectTrainerProfile+` WHERE user_id = $1`, userID)

	p, err := scanTrainerProfile(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return trainers.Profile{}, trainers.ErrNotFound
		}
		return trainers.Profile{}, err
	}
	return p, nil
}

func (r *TrainersRepo) ListAll(ctx context.Context) ([]trainers.Profile, error) {
	rows, err := r.db.QueryContext(ctx, selectTrainerProfile+` ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]trainers.Profile, 0)
	for rows.Next() {
		p, err := scanTrainerProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

const selectTrainerProfile = `
	SELECT
		user_id,
		years_of_experience, certifications,
		services,
		address, city, state,
		average_rating, total_reviews,
		bio, specializations,
		is_verified,
		created_at, updated_at
	FROM trainer_profiles
`

func scanTrainerProfile(row rowScanner) (trainers.Profile, error) {
	var p trainers.Profile
	var certsRaw, servicesRaw, specsRaw []byte
	if err := row.Scan(
		&p.UserID,
		&p.BusinessInfo.YearsOfExperience,
		&certsRaw,
		&servicesRaw,
		&p.Location.Address,
		&p.Location.City,
		&p.Location.State,
		&p.Ratings.AverageRating,
		&p.Ratings.TotalReviews,
		&p.Portfolio.Bio,
		&specsRaw,
		&p.IsVerified,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return trainers.Profile{}, err
	}

	var certRecords []certRecord
	if len(certsRaw) > 0 {
		if err := json.Unmarshal(certsRaw, &certRecords); err != nil {
			return trainers.Profile{}, err
		}
	}
	p.BusinessInfo.Certifications = make([]trainers.Certification, 0, len(certRecords))
	for _, c := range certRecords {
		p.BusinessInfo.Certifications = append(p.BusinessInfo.Certifications, trainers.Certification{Name: c.Name})
	}

	var serviceRecords []serviceRecord
	if len(servicesRaw) > 0 {
		if err := json.Unmarshal(servicesRaw, &serviceRecords); err != nil {
			return trainers.Profile{}, err
		}
	}
	p.Services = make([]trainers.ServiceOffering, 0, len(serviceRecords))
	for _, sv := range serviceRecords {
		p.Services = append(p.Services, trainers.ServiceOffering{
			Type:        sv.Type,
			Description: sv.Description,
			Duration:    sv.Duration,
			Price:       sv.Price,
		})
	}

	p.Portfolio.Specializations = []string{}
	if len(specsRaw) > 0 {
		if err := json.Unmarshal(specsRaw, &p.Portfolio.Specializations); err != nil {
			return trainers.Profile{}, err
		}
	}

	return p, nil
}

func marshalTrainerLists(p trainers.Profile) (certs, services, specs []byte, err error) {
	certRecords := make([]certRecord, 0, len(p.BusinessInfo.Certifications))
	for _, c := range p.BusinessInfo.Certifications {
		certRecords = append(certRecords, certRecord{Name: c.Name})
	}
	if certs, err = json.Marshal(certRecords); err != nil {
		return nil, nil, nil, err
	}

	serviceRecords := make([]serviceRecord, 0, len(p.Services))
	for _, sv := range p.Services {
		serviceRecords = append(serviceRecords, serviceRecord{
			Type:        sv.Type,
			Description: sv.Description,
			Duration:    sv.Duration,
			Price:       sv.Price,
		})
	}
	if services, err = json.Marshal(serviceRecords); err != nil {
		return nil, nil, nil, err
	}

	specList := p.Portfolio.Specializations
	if specList == nil {
		specList = []string{}
	}
	if specs, err = json.Marshal(specList); err != nil {
		return nil, nil, nil, err
	}

	return certs, services, specs, nil
}
