package consumers

import (
	"context"
	"encoding/json"
	"log/slog"

	"gotix/internal/models"
	"gotix/internal/repository"

	"github.com/nats-io/stan.go"
)

type Handlers struct {
	repos *repository.Repositories
}

func NewHandlers(repos *repository.Repositories) *Handlers {
	return &Handlers{repos: repos}
}

func (h *Handlers) HandleOrderCreated(m *stan.Msg) {
	var event models.OrderCreatedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal order created event", "error", err)
		return
	}

	slog.Info("Order created",
		"order_code", event.OrderCode,
		"ticket_id", event.TicketID,
		"user_id", event.UserID,
		"quantity", event.Quantity,
		"total", event.Total)

	// Notification delivery (email and the like) would hang off this event

	m.Ack()
}

func (h *Handlers) HandleOrderCompleted(m *stan.Msg) {
	var event models.OrderCompletedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal order completed event", "error", err)
		return
	}

	ctx := context.Background()
	order, err := h.repos.Orders.GetByCode(ctx, event.OrderCode)
	if err != nil {
		slog.Error("Failed to load completed order", "order_code", event.OrderCode, "error", err)
		return
	}
	if order == nil {
		slog.Warn("Completed order no longer exists", "order_code", event.OrderCode)
		m.Ack()
		return
	}

	slog.Info("Order completed",
		"order_code", order.OrderCode,
		"total", order.Total.String(),
		"vouchers", len(order.Vouchers))

	m.Ack()
}

func (h *Handlers) HandleOrderCancelled(m *stan.Msg) {
	var event models.OrderCancelledEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal order cancelled event", "error", err)
		return
	}

	slog.Info("Order cancelled",
		"order_code", event.OrderCode,
		"ticket_id", event.TicketID)

	m.Ack()
}
