package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"woofpoint-backend/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, email, password_hash, role,
			first_name, last_name, phone, zip_code,
			profile_photo,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.FirstName,
		u.LastName,
		u.Phone,
		u.ZipCode,
		u.ProfilePhoto,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return users.ErrEmailTaken
	}
	return err
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET
			email = $2,
			password_hash = $3,
			first_name = $4,
			last_name = $5,
			phone = $6,
			zip_code = $7,
			profile_photo = $8,
			updated_at = $9
		WHERE id = $1
	`,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		u.Phone,
		u.ZipCode,
		u.ProfilePhoto,
		u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return users.ErrEmailTaken
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, users.ErrNotFound
	}
	return r.scanOne(r.db.QueryRowContext(ctx, selectUser+` WHERE id = $1`, id))
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return users.User{}, users.ErrNotFound
	}
	return r.scanOne(r.db.QueryRowContext(ctx, selectUser+` WHERE email = $1`, email))
}

func (r *UsersRepo) ListByRole(ctx context.Context, role users.Role) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUser+` WHERE role = $1 ORDER BY created_at ASC`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		var u users.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

const selectUser = `
	SELECT
		id, email, password_hash, role,
		first_name, last_name, phone, zip_code,
		profile_photo,
		created_at, updated_at
	FROM users
`

func (r *UsersRepo) scanOne(row *sql.Row) (users.User, error) {
	var u users.User
	if err := scanUser(row, &u); err != nil {
		if err == sql.ErrNoRows {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, u *users.User) error {
	return row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.FirstName,
		&u.LastName,
		&u.Phone,
		&u.ZipCode,
		&u.ProfilePhoto,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
}

// 23505 = unique_violation (el índice único de email)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
