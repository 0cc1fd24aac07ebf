package repository

import (
	"context"
	"database/sql"
	"fmt"

	"gotix/internal/database"
	"gotix/internal/models"

	"github.com/lib/pq"
)

type PostgresEventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

const eventColumns = `id, name, slug, category_id, description, banner, start_date, end_date,
	is_online, is_featured, is_publish, region, address, created_by, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (*models.Event, error) {
	event := &models.Event{}
	err := row.Scan(
		&event.ID,
		&event.Name,
		&event.Slug,
		&event.CategoryID,
		&event.Description,
		&event.Banner,
		&event.StartDate,
		&event.EndDate,
		&event.IsOnline,
		&event.IsFeatured,
		&event.IsPublish,
		&event.Region,
		&event.Address,
		&event.CreatedBy,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return event, err
}

func scanEvents(rows *sql.Rows) ([]models.Event, error) {
	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	return events, rows.Err()
}

func (r *PostgresEventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (name, slug, category_id, description, banner, start_date, end_date,
		                    is_online, is_featured, is_publish, region, address, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		event.Name,
		event.Slug,
		event.CategoryID,
		event.Description,
		event.Banner,
		event.StartDate,
		event.EndDate,
		event.IsOnline,
		event.IsFeatured,
		event.IsPublish,
		event.Region,
		event.Address,
		event.CreatedBy,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

func (r *PostgresEventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresEventRepository) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE slug = $1`
	return scanEvent(r.db.QueryRowContext(ctx, query, slug))
}

func (r *PostgresEventRepository) GetByIDs(ctx context.Context, ids []int64) ([]models.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	// array_position keeps the caller's ordering, which carries the search
	// relevance ranking coming from the index
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ANY($1)
		ORDER BY array_position($1, id)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *PostgresEventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events
		SET name = $1, slug = $2, category_id = $3, description = $4, banner = $5,
		    start_date = $6, end_date = $7, is_online = $8, is_featured = $9,
		    is_publish = $10, region = $11, address = $12, updated_at = NOW()
		WHERE id = $13
		RETURNING updated_at`

	return r.db.QueryRowContext(ctx, query,
		event.Name,
		event.Slug,
		event.CategoryID,
		event.Description,
		event.Banner,
		event.StartDate,
		event.EndDate,
		event.IsOnline,
		event.IsFeatured,
		event.IsPublish,
		event.Region,
		event.Address,
		event.ID,
	).Scan(&event.UpdatedAt)
}

func (r *PostgresEventRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

func (r *PostgresEventRepository) List(ctx context.Context, f models.EventFilter, q models.PageQuery) ([]models.Event, int64, error) {
	args := []any{}
	where := ` WHERE 1=1`

	if f.Search != "" {
		where += fmt.Sprintf(` AND (name ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%')`, len(args)+1, len(args)+1)
		args = append(args, f.Search)
	}
	if f.Category != nil {
		where += fmt.Sprintf(` AND category_id = $%d`, len(args)+1)
		args = append(args, *f.Category)
	}
	if f.IsOnline != nil {
		where += fmt.Sprintf(` AND is_online = $%d`, len(args)+1)
		args = append(args, *f.IsOnline)
	}
	if f.IsFeatured != nil {
		where += fmt.Sprintf(` AND is_featured = $%d`, len(args)+1)
		args = append(args, *f.IsFeatured)
	}
	if f.IsPublish != nil {
		where += fmt.Sprintf(` AND is_publish = $%d`, len(args)+1)
		args = append(args, *f.IsPublish)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + eventColumns + ` FROM events` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	return events, total, err
}
