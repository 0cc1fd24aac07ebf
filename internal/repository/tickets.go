package repository

import (
	"context"
	"database/sql"
	"fmt"

	"gotix/internal/database"
	apperrors "gotix/internal/errors"
	"gotix/internal/models"
)

type PostgresTicketRepository struct {
	db *database.DB
}

func NewTicketRepository(db *database.DB) *PostgresTicketRepository {
	return &PostgresTicketRepository{db: db}
}

const ticketColumns = `id, name, price, quantity, reserved, event_id, description, created_at, updated_at`

func scanTicket(row interface{ Scan(...any) error }) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	err := row.Scan(
		&ticket.ID,
		&ticket.Name,
		&ticket.Price,
		&ticket.Quantity,
		&ticket.Reserved,
		&ticket.EventID,
		&ticket.Description,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return ticket, err
}

func (r *PostgresTicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	query := `
		INSERT INTO tickets (name, price, quantity, event_id, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, reserved, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		ticket.Name,
		ticket.Price,
		ticket.Quantity,
		ticket.EventID,
		ticket.Description,
	).Scan(&ticket.ID, &ticket.Reserved, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *PostgresTicketRepository) GetByID(ctx context.Context, id int64) (*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`
	return scanTicket(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresTicketRepository) Update(ctx context.Context, ticket *models.Ticket) error {
	query := `
		UPDATE tickets
		SET name = $1, price = $2, quantity = $3, description = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`

	return r.db.QueryRowContext(ctx, query,
		ticket.Name,
		ticket.Price,
		ticket.Quantity,
		ticket.Description,
		ticket.ID,
	).Scan(&ticket.UpdatedAt)
}

func (r *PostgresTicketRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

func (r *PostgresTicketRepository) List(ctx context.Context, q models.PageQuery) ([]models.Ticket, int64, error) {
	args := []any{}
	where := ""

	if q.Search != "" {
		where = ` WHERE name ILIKE '%' || $1 || '%'`
		args = append(args, q.Search)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + ticketColumns + ` FROM tickets` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tickets, err := collectTickets(rows)
	return tickets, total, err
}

func (r *PostgresTicketRepository) ListByEvent(ctx context.Context, eventID int64) ([]models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE event_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTickets(rows)
}

func collectTickets(rows *sql.Rows) ([]models.Ticket, error) {
	var tickets []models.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *ticket)
	}
	return tickets, rows.Err()
}

// Reserve is the single server-side stock check: the WHERE clause re-checks
// availability in the same statement that takes the hold, so concurrent
// creates can never jointly reserve more than the remaining quantity.
func (r *PostgresTicketRepository) Reserve(ctx context.Context, id, qty int64) error {
	query := `
		UPDATE tickets
		SET reserved = reserved + $2, updated_at = NOW()
		WHERE id = $1 AND quantity - reserved >= $2`

	result, err := r.db.ExecContext(ctx, query, id, qty)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	// Distinguish a missing ticket from an exhausted one
	ticket, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ticket == nil {
		return apperrors.ErrNotFound
	}
	return apperrors.ErrInsufficientStock
}

func (r *PostgresTicketRepository) Release(ctx context.Context, id, qty int64) error {
	query := `
		UPDATE tickets
		SET reserved = GREATEST(reserved - $2, 0), updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, qty)
	return err
}
