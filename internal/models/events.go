package models

import "time"

// NATS subjects for order lifecycle events
const (
	SubjectOrderCreated   = "order.created"
	SubjectOrderCompleted = "order.completed"
	SubjectOrderCancelled = "order.cancelled"
)

// OrderCreatedEvent is published after an order is persisted
type OrderCreatedEvent struct {
	OrderCode string    `json:"order_code"`
	TicketID  int64     `json:"ticket_id"`
	UserID    int64     `json:"user_id"`
	Quantity  int64     `json:"quantity"`
	Total     string    `json:"total"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderCompletedEvent is published after vouchers are issued and stock
// is committed
type OrderCompletedEvent struct {
	OrderCode string    `json:"order_code"`
	TicketID  int64     `json:"ticket_id"`
	UserID    int64     `json:"user_id"`
	Quantity  int64     `json:"quantity"`
	Vouchers  int       `json:"vouchers"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderCancelledEvent is published after a cancel transition
type OrderCancelledEvent struct {
	OrderCode string    `json:"order_code"`
	TicketID  int64     `json:"ticket_id"`
	Timestamp time.Time `json:"timestamp"`
}
