package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "gotix/internal/errors"
	"gotix/internal/logger"
	"gotix/internal/messaging"
	"gotix/internal/models"
	"gotix/internal/monitoring"
	"gotix/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderService struct {
	orders    repository.OrderRepository
	tickets   repository.TicketRepository
	publisher messaging.Publisher
}

func NewOrderService(orders repository.OrderRepository, tickets repository.TicketRepository, publisher messaging.Publisher) *OrderService {
	return &OrderService{orders: orders, tickets: tickets, publisher: publisher}
}

// newOrderCode generates the buyer-facing order identifier
func newOrderCode() string {
	buf := make([]byte, 8)
	rand.Read(buf)
	return "TRX-" + strings.ToUpper(hex.EncodeToString(buf))
}

// Create places an order for one ticket type. The stock hold happens
// atomically against the ticket row, so two buyers racing for the last
// units can never both succeed.
func (s *OrderService) Create(ctx context.Context, userID int64, req *models.CreateOrderRequest) (*models.Order, error) {
	if req.Quantity < 1 {
		return nil, apperrors.Validation("quantity must be at least 1")
	}

	ticket, err := s.tickets.GetByID(ctx, req.Ticket)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil {
		return nil, apperrors.ErrNotFound
	}

	if err := s.tickets.Reserve(ctx, ticket.ID, req.Quantity); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientStock) {
			monitoring.RecordReservationRejected()
		}
		return nil, err
	}

	order := &models.Order{
		OrderCode: newOrderCode(),
		CreatedBy: userID,
		TicketID:  ticket.ID,
		Quantity:  req.Quantity,
		Total:     ticket.Price.Mul(decimal.NewFromInt(req.Quantity)),
		Status:    models.OrderStatusCreated,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		// Return the hold so the failed order does not pin stock
		if relErr := s.tickets.Release(ctx, ticket.ID, req.Quantity); relErr != nil {
			logger.WithContext(ctx).Error("Failed to release reservation after order create failure",
				"error", relErr, "ticket_id", ticket.ID, "quantity", req.Quantity)
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	monitoring.RecordOrderCreated()
	s.publish(ctx, models.SubjectOrderCreated, models.OrderCreatedEvent{
		OrderCode: order.OrderCode,
		TicketID:  order.TicketID,
		UserID:    order.CreatedBy,
		Quantity:  order.Quantity,
		Total:     order.Total.String(),
		Timestamp: time.Now(),
	})

	return order, nil
}

// Complete finishes an order: vouchers are issued and the reserved stock is
// committed, all inside one repository transaction.
func (s *OrderService) Complete(ctx context.Context, userID int64, code string) (*models.Order, error) {
	current, err := s.orders.GetByCodeAndOwner(ctx, code, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if current == nil {
		return nil, apperrors.ErrNotFound
	}

	vouchers := make([]models.Voucher, current.Quantity)
	for i := range vouchers {
		vouchers[i] = models.Voucher{VoucherID: uuid.New().String()}
	}

	order, err := s.orders.Complete(ctx, code, userID, vouchers)
	if err != nil {
		return nil, err
	}

	monitoring.RecordOrderCompleted()
	monitoring.RecordVouchersIssued(len(vouchers))
	s.publish(ctx, models.SubjectOrderCompleted, models.OrderCompletedEvent{
		OrderCode: order.OrderCode,
		TicketID:  order.TicketID,
		UserID:    order.CreatedBy,
		Quantity:  order.Quantity,
		Vouchers:  len(vouchers),
		Timestamp: time.Now(),
	})

	return order, nil
}

// Pending marks an order as waiting for payment. Any authenticated caller
// may do this, not just the buyer.
func (s *OrderService) Pending(ctx context.Context, code string) (*models.Order, error) {
	return s.orders.Transition(ctx, code, models.OrderStatusPending)
}

// Cancel cancels an order and releases its stock hold. Like Pending it is
// not owner-scoped. Stock already committed by a completed order is never
// restored, but completed orders cannot be cancelled in the first place.
func (s *OrderService) Cancel(ctx context.Context, code string) (*models.Order, error) {
	order, err := s.orders.Transition(ctx, code, models.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}

	monitoring.RecordOrderCancelled()
	s.publish(ctx, models.SubjectOrderCancelled, models.OrderCancelledEvent{
		OrderCode: order.OrderCode,
		TicketID:  order.TicketID,
		Timestamp: time.Now(),
	})

	return order, nil
}

// Remove hard-deletes the caller's order together with its vouchers
func (s *OrderService) Remove(ctx context.Context, userID int64, code string) (*models.Order, error) {
	order, err := s.orders.Delete(ctx, code, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete order: %w", err)
	}
	if order == nil {
		return nil, apperrors.ErrNotFound
	}
	return order, nil
}

// Get returns one order. Admins see any order, members only their own.
func (s *OrderService) Get(ctx context.Context, userID int64, role, code string) (*models.Order, error) {
	var (
		order *models.Order
		err   error
	)
	if role == models.RoleAdmin {
		order, err = s.orders.GetByCode(ctx, code)
	} else {
		order, err = s.orders.GetByCodeAndOwner(ctx, code, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, apperrors.ErrNotFound
	}
	return order, nil
}

// List returns every order in the system, newest first
func (s *OrderService) List(ctx context.Context, q models.PageQuery) ([]models.Order, models.PageMeta, error) {
	q.Normalize()

	orders, total, err := s.orders.List(ctx, q, nil)
	if err != nil {
		return nil, models.PageMeta{}, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, q.Meta(total), nil
}

// ListMine returns the caller's order history, newest first
func (s *OrderService) ListMine(ctx context.Context, userID int64, q models.PageQuery) ([]models.Order, models.PageMeta, error) {
	q.Normalize()

	orders, total, err := s.orders.List(ctx, q, &userID)
	if err != nil {
		return nil, models.PageMeta{}, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, q.Meta(total), nil
}

func (s *OrderService) publish(ctx context.Context, subject string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(subject, data); err != nil {
		// Log but never fail the operation over messaging
		logger.WithContext(ctx).Error("Failed to publish order event",
			"error", err, "subject", subject)
	}
}
