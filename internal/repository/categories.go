package repository

import (
	"context"
	"database/sql"
	"fmt"

	"gotix/internal/database"
	"gotix/internal/models"
)

type PostgresCategoryRepository struct {
	db *database.DB
}

func NewCategoryRepository(db *database.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

func (r *PostgresCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (name, description, icon)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		category.Name,
		category.Description,
		category.Icon,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
}

func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	category := &models.Category{}
	query := `
		SELECT id, name, description, icon, created_at, updated_at
		FROM categories
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.Icon,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return category, err
}

func (r *PostgresCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $1, description = $2, icon = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at`

	return r.db.QueryRowContext(ctx, query,
		category.Name,
		category.Description,
		category.Icon,
		category.ID,
	).Scan(&category.UpdatedAt)
}

func (r *PostgresCategoryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

func (r *PostgresCategoryRepository) List(ctx context.Context, q models.PageQuery) ([]models.Category, int64, error) {
	var categories []models.Category
	args := []any{}
	where := ""

	if q.Search != "" {
		where = ` WHERE name ILIKE '%' || $1 || '%'`
		args = append(args, q.Search)
	}

	countQuery := `SELECT COUNT(*) FROM categories` + where
	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, name, description, icon, created_at, updated_at FROM categories` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var category models.Category
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Description,
			&category.Icon,
			&category.CreatedAt,
			&category.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		categories = append(categories, category)
	}

	return categories, total, rows.Err()
}
