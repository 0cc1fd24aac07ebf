package repository

import (
	"context"
	"database/sql"
	"fmt"

	"gotix/internal/database"
	"gotix/internal/models"
)

type PostgresBannerRepository struct {
	db *database.DB
}

func NewBannerRepository(db *database.DB) *PostgresBannerRepository {
	return &PostgresBannerRepository{db: db}
}

func (r *PostgresBannerRepository) Create(ctx context.Context, banner *models.Banner) error {
	query := `
		INSERT INTO banners (title, image, is_show)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		banner.Title,
		banner.Image,
		banner.IsShow,
	).Scan(&banner.ID, &banner.CreatedAt, &banner.UpdatedAt)
}

func (r *PostgresBannerRepository) GetByID(ctx context.Context, id int64) (*models.Banner, error) {
	banner := &models.Banner{}
	query := `
		SELECT id, title, image, is_show, created_at, updated_at
		FROM banners
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&banner.ID,
		&banner.Title,
		&banner.Image,
		&banner.IsShow,
		&banner.CreatedAt,
		&banner.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return banner, err
}

func (r *PostgresBannerRepository) Update(ctx context.Context, banner *models.Banner) error {
	query := `
		UPDATE banners
		SET title = $1, image = $2, is_show = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at`

	return r.db.QueryRowContext(ctx, query,
		banner.Title,
		banner.Image,
		banner.IsShow,
		banner.ID,
	).Scan(&banner.UpdatedAt)
}

func (r *PostgresBannerRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

func (r *PostgresBannerRepository) List(ctx context.Context, q models.PageQuery) ([]models.Banner, int64, error) {
	var banners []models.Banner
	args := []any{}
	where := ""

	if q.Search != "" {
		where = ` WHERE title ILIKE '%' || $1 || '%'`
		args = append(args, q.Search)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM banners`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, title, image, is_show, created_at, updated_at FROM banners` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var banner models.Banner
		err := rows.Scan(
			&banner.ID,
			&banner.Title,
			&banner.Image,
			&banner.IsShow,
			&banner.CreatedAt,
			&banner.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		banners = append(banners, banner)
	}

	return banners, total, rows.Err()
}
