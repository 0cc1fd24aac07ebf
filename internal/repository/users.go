package repository

import (
	"context"
	"database/sql"

	"gotix/internal/database"
	apperrors "gotix/internal/errors"
	"gotix/internal/models"

	"github.com/lib/pq"
)

type PostgresUserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, full_name, username, email, password, role, profile_picture, is_active, activation_code, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.ProfilePicture,
		&user.IsActive,
		&user.ActivationCode,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return user, err
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (full_name, username, email, password, role, activation_code)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, profile_picture, is_active, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		user.FullName,
		user.Username,
		user.Email,
		user.Password,
		user.Role,
		user.ActivationCode,
	).Scan(&user.ID, &user.ProfilePicture, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)

	// unique_violation on username or email
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return apperrors.Validation("username or email is already taken")
	}

	return err
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresUserRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, identifier))
}

func (r *PostgresUserRepository) GetByActivationCode(ctx context.Context, code string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE activation_code = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, code))
}

func (r *PostgresUserRepository) Activate(ctx context.Context, id int64) error {
	query := `UPDATE users SET is_active = TRUE, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
