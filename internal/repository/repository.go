package repository

import (
	"context"

	"gotix/internal/database"
	"gotix/internal/models"
)

// Get* methods return (nil, nil) when the row does not exist; services turn
// that into the request-level not-found error. Methods that span several
// tables run inside a single transaction here, never in the service layer.

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	GetByActivationCode(ctx context.Context, code string) (*models.User, error)
	Activate(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, q models.PageQuery) ([]models.Category, int64, error)
}

type BannerRepository interface {
	Create(ctx context.Context, banner *models.Banner) error
	GetByID(ctx context.Context, id int64) (*models.Banner, error)
	Update(ctx context.Context, banner *models.Banner) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, q models.PageQuery) ([]models.Banner, int64, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	GetBySlug(ctx context.Context, slug string) (*models.Event, error)
	GetByIDs(ctx context.Context, ids []int64) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, f models.EventFilter, q models.PageQuery) ([]models.Event, int64, error)
}

type TicketRepository interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	GetByID(ctx context.Context, id int64) (*models.Ticket, error)
	Update(ctx context.Context, ticket *models.Ticket) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, q models.PageQuery) ([]models.Ticket, int64, error)
	ListByEvent(ctx context.Context, eventID int64) ([]models.Ticket, error)

	// Reserve atomically holds qty units for an open order: it succeeds only
	// if quantity - reserved >= qty, re-checked server-side in one statement.
	// Returns ErrNotFound or ErrInsufficientStock.
	Reserve(ctx context.Context, id, qty int64) error

	// Release returns a reservation without touching remaining quantity.
	Release(ctx context.Context, id, qty int64) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByCode(ctx context.Context, code string) (*models.Order, error)
	GetByCodeAndOwner(ctx context.Context, code string, userID int64) (*models.Order, error)

	// List returns one page of orders sorted by creation time descending,
	// plus the total match count. ownedBy scopes to a single buyer.
	List(ctx context.Context, q models.PageQuery, ownedBy *int64) ([]models.Order, int64, error)

	// Complete performs the full completion transition in one transaction:
	// status flip guarded by the transition table, voucher insertion, and
	// the stock decrement guarded by quantity >= order.quantity. On any
	// guard failure nothing is applied. Returns ErrNotFound, one of the
	// ErrAlready* conflicts, or ErrInsufficientStock.
	Complete(ctx context.Context, code string, userID int64, vouchers []models.Voucher) (*models.Order, error)

	// Transition moves an order to a non-completed state (PENDING or
	// CANCELLED) under the same transactional guard. Cancelling releases
	// the ticket reservation but never restores remaining quantity.
	Transition(ctx context.Context, code string, to models.OrderStatus) (*models.Order, error)

	// Delete hard-deletes an owner's order; vouchers go with it. The
	// reservation of a still-open order is released, remaining quantity is
	// never restored.
	Delete(ctx context.Context, code string, userID int64) (*models.Order, error)
}

type Repositories struct {
	Users      UserRepository
	Categories CategoryRepository
	Banners    BannerRepository
	Events     EventRepository
	Tickets    TicketRepository
	Orders     OrderRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(db),
		Categories: NewCategoryRepository(db),
		Banners:    NewBannerRepository(db),
		Events:     NewEventRepository(db),
		Tickets:    NewTicketRepository(db),
		Orders:     NewOrderRepository(db),
	}
}
