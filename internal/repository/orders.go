package repository

import (
	"context"
	"database/sql"
	"fmt"

	"gotix/internal/database"
	apperrors "gotix/internal/errors"
	"gotix/internal/models"
)

type PostgresOrderRepository struct {
	db *database.DB
}

func NewOrderRepository(db *database.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

const orderColumns = `id, order_code, created_by, ticket_id, quantity, total, status, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*models.Order, error) {
	order := &models.Order{}
	err := row.Scan(
		&order.ID,
		&order.OrderCode,
		&order.CreatedBy,
		&order.TicketID,
		&order.Quantity,
		&order.Total,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return order, err
}

// statusConflict maps the state that blocked a transition to its
// request-level error
func statusConflict(status models.OrderStatus) error {
	switch status {
	case models.OrderStatusCompleted:
		return apperrors.ErrAlreadyCompleted
	case models.OrderStatusPending:
		return apperrors.ErrAlreadyPending
	case models.OrderStatusCancelled:
		return apperrors.ErrAlreadyCancelled
	}
	return fmt.Errorf("order in unexpected state %q", status)
}

func (r *PostgresOrderRepository) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (order_code, created_by, ticket_id, quantity, total, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		order.OrderCode,
		order.CreatedBy,
		order.TicketID,
		order.Quantity,
		order.Total,
		order.Status,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (r *PostgresOrderRepository) GetByCode(ctx context.Context, code string) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_code = $1`
	order, err := scanOrder(r.db.QueryRowContext(ctx, query, code))
	if err != nil || order == nil {
		return nil, err
	}
	return order, r.attachVouchers(ctx, order)
}

func (r *PostgresOrderRepository) GetByCodeAndOwner(ctx context.Context, code string, userID int64) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_code = $1 AND created_by = $2`
	order, err := scanOrder(r.db.QueryRowContext(ctx, query, code, userID))
	if err != nil || order == nil {
		return nil, err
	}
	return order, r.attachVouchers(ctx, order)
}

func (r *PostgresOrderRepository) List(ctx context.Context, q models.PageQuery, ownedBy *int64) ([]models.Order, int64, error) {
	args := []any{}
	where := ` WHERE 1=1`

	if ownedBy != nil {
		where += fmt.Sprintf(` AND created_by = $%d`, len(args)+1)
		args = append(args, *ownedBy)
	}
	if q.Search != "" {
		where += fmt.Sprintf(` AND order_code ILIKE $%d || '%%'`, len(args)+1)
		args = append(args, q.Search)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + orderColumns + ` FROM orders` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range orders {
		if err := r.attachVouchers(ctx, &orders[i]); err != nil {
			return nil, 0, err
		}
	}

	return orders, total, nil
}

// Complete runs the whole completion transition as one transaction. The
// status flip and the stock decrement either both apply or neither does,
// which closes the partial-failure window between "order completed" and
// "inventory not yet decremented".
func (r *PostgresOrderRepository) Complete(ctx context.Context, code string, userID int64, vouchers []models.Voucher) (*models.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	lockQuery := `SELECT ` + orderColumns + ` FROM orders WHERE order_code = $1 AND created_by = $2 FOR UPDATE`
	order, err := scanOrder(tx.QueryRowContext(ctx, lockQuery, code, userID))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperrors.ErrNotFound
	}

	if !order.Status.CanTransition(models.OrderStatusCompleted) {
		return nil, statusConflict(order.Status)
	}

	updateOrder := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING updated_at`
	if err := tx.QueryRowContext(ctx, updateOrder, models.OrderStatusCompleted, order.ID).Scan(&order.UpdatedAt); err != nil {
		return nil, err
	}

	// Commit the stock: the reservation taken at creation time is converted
	// into a real decrement, guarded so quantity can never go negative.
	updateTicket := `
		UPDATE tickets
		SET quantity = quantity - $2, reserved = GREATEST(reserved - $2, 0), updated_at = NOW()
		WHERE id = $1 AND quantity >= $2`

	result, err := tx.ExecContext(ctx, updateTicket, order.TicketID, order.Quantity)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, apperrors.ErrInsufficientStock
	}

	insertVoucher := `INSERT INTO vouchers (order_id, voucher_id, is_print) VALUES ($1, $2, $3)`
	for i := range vouchers {
		vouchers[i].OrderID = order.ID
		if _, err := tx.ExecContext(ctx, insertVoucher, order.ID, vouchers[i].VoucherID, vouchers[i].IsPrint); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	order.Status = models.OrderStatusCompleted
	order.Vouchers = vouchers
	return order, nil
}

// Transition moves an order to PENDING or CANCELLED. The row lock makes the
// guard check and the write one unit, so a concurrent transition surfaces
// as the corresponding "already" error instead of a silent overwrite.
func (r *PostgresOrderRepository) Transition(ctx context.Context, code string, to models.OrderStatus) (*models.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	lockQuery := `SELECT ` + orderColumns + ` FROM orders WHERE order_code = $1 FOR UPDATE`
	order, err := scanOrder(tx.QueryRowContext(ctx, lockQuery, code))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperrors.ErrNotFound
	}

	if !order.Status.CanTransition(to) {
		return nil, statusConflict(order.Status)
	}

	updateOrder := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING updated_at`
	if err := tx.QueryRowContext(ctx, updateOrder, to, order.ID).Scan(&order.UpdatedAt); err != nil {
		return nil, err
	}

	// A cancelled order gives its hold back. Remaining quantity is never
	// restored because it was never decremented at creation time.
	if to == models.OrderStatusCancelled {
		releaseQuery := `
			UPDATE tickets
			SET reserved = GREATEST(reserved - $2, 0), updated_at = NOW()
			WHERE id = $1`
		if _, err := tx.ExecContext(ctx, releaseQuery, order.TicketID, order.Quantity); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	order.Status = to
	return order, r.attachVouchers(ctx, order)
}

func (r *PostgresOrderRepository) Delete(ctx context.Context, code string, userID int64) (*models.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	deleteQuery := `DELETE FROM orders WHERE order_code = $1 AND created_by = $2 RETURNING ` + orderColumns
	order, err := scanOrder(tx.QueryRowContext(ctx, deleteQuery, code, userID))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperrors.ErrNotFound
	}

	// Open orders still hold a reservation; give it back so the stock is
	// sellable again. Completed orders already committed their stock.
	if !order.Status.Terminal() {
		releaseQuery := `
			UPDATE tickets
			SET reserved = GREATEST(reserved - $2, 0), updated_at = NOW()
			WHERE id = $1`
		if _, err := tx.ExecContext(ctx, releaseQuery, order.TicketID, order.Quantity); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *PostgresOrderRepository) attachVouchers(ctx context.Context, order *models.Order) error {
	query := `SELECT id, order_id, voucher_id, is_print FROM vouchers WHERE order_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	vouchers := []models.Voucher{}
	for rows.Next() {
		var voucher models.Voucher
		if err := rows.Scan(&voucher.ID, &voucher.OrderID, &voucher.VoucherID, &voucher.IsPrint); err != nil {
			return err
		}
		vouchers = append(vouchers, voucher)
	}

	order.Vouchers = vouchers
	return rows.Err()
}

// compile-time interface checks
var (
	_ OrderRepository  = (*PostgresOrderRepository)(nil)
	_ TicketRepository = (*PostgresTicketRepository)(nil)
	_ UserRepository   = (*PostgresUserRepository)(nil)
	_ EventRepository  = (*PostgresEventRepository)(nil)
)
