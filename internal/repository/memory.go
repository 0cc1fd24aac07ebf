package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	apperrors "gotix/internal/errors"
	"gotix/internal/models"
)

// MemoryStore is an in-memory implementation of the user, ticket and order
// repositories. One mutex covers all entities, so the multi-table order
// transitions are atomic the same way the Postgres transactions are. Used
// by tests and for running the API without a database.
type MemoryStore struct {
	mu           sync.Mutex
	nextUserID   int64
	nextTicketID int64
	nextOrderID  int64
	users        map[int64]models.User
	tickets      map[int64]models.Ticket
	orders       map[string]models.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextUserID:   1,
		nextTicketID: 1,
		nextOrderID:  1,
		users:        make(map[int64]models.User),
		tickets:      make(map[int64]models.Ticket),
		orders:       make(map[string]models.Order),
	}
}

// Users returns the store viewed as a UserRepository
func (m *MemoryStore) Users() UserRepository { return &memoryUsers{m} }

// Tickets returns the store viewed as a TicketRepository
func (m *MemoryStore) Tickets() TicketRepository { return &memoryTickets{m} }

// Orders returns the store viewed as an OrderRepository
func (m *MemoryStore) Orders() OrderRepository { return &memoryOrders{m} }

type memoryUsers struct{ s *MemoryStore }
type memoryTickets struct{ s *MemoryStore }
type memoryOrders struct{ s *MemoryStore }

var (
	_ UserRepository   = (*memoryUsers)(nil)
	_ TicketRepository = (*memoryTickets)(nil)
	_ OrderRepository  = (*memoryOrders)(nil)
)

// UserRepository

func (r *memoryUsers) Create(ctx context.Context, user *models.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return apperrors.Validation("username or email is already taken")
		}
	}
	user.ID = s.nextUserID
	s.nextUserID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	if user.ProfilePicture == "" {
		user.ProfilePicture = "user.jpg"
	}
	s.users[user.ID] = *user
	return nil
}

func (r *memoryUsers) GetByID(ctx context.Context, id int64) (*models.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		cp := u
		return &cp, nil
	}
	return nil, nil
}

func (r *memoryUsers) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == identifier || u.Email == identifier {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memoryUsers) GetByActivationCode(ctx context.Context, code string) (*models.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ActivationCode == code {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memoryUsers) Activate(ctx context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.IsActive = true
	u.UpdatedAt = time.Now()
	s.users[id] = u
	return nil
}

// TicketRepository

func (r *memoryTickets) Create(ctx context.Context, ticket *models.Ticket) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket.ID = s.nextTicketID
	s.nextTicketID++
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	s.tickets[ticket.ID] = *ticket
	return nil
}

func (r *memoryTickets) GetByID(ctx context.Context, id int64) (*models.Ticket, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tickets[id]; ok {
		cp := t
		return &cp, nil
	}
	return nil, nil
}

func (r *memoryTickets) Update(ctx context.Context, ticket *models.Ticket) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tickets[ticket.ID]; !ok {
		return apperrors.ErrNotFound
	}
	ticket.UpdatedAt = time.Now()
	s.tickets[ticket.ID] = *ticket
	return nil
}

func (r *memoryTickets) Delete(ctx context.Context, id int64) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tickets[id]; !ok {
		return false, nil
	}
	delete(s.tickets, id)
	return true, nil
}

func (r *memoryTickets) List(ctx context.Context, q models.PageQuery) ([]models.Ticket, int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []models.Ticket
	for _, t := range s.tickets {
		if q.Search != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(q.Search)) {
			continue
		}
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return pageOf(all, q), int64(len(all)), nil
}

func (r *memoryTickets) ListByEvent(ctx context.Context, eventID int64) ([]models.Ticket, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Ticket
	for _, t := range s.tickets {
		if t.EventID == eventID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryTickets) Reserve(ctx context.Context, id, qty int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if t.Quantity-t.Reserved < qty {
		return apperrors.ErrInsufficientStock
	}
	t.Reserved += qty
	t.UpdatedAt = time.Now()
	s.tickets[id] = t
	return nil
}

func (r *memoryTickets) Release(ctx context.Context, id, qty int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	releaseLocked(s, id, qty)
	return nil
}

func releaseLocked(s *MemoryStore, id, qty int64) {
	t, ok := s.tickets[id]
	if !ok {
		return
	}
	t.Reserved -= qty
	if t.Reserved < 0 {
		t.Reserved = 0
	}
	t.UpdatedAt = time.Now()
	s.tickets[id] = t
}

// OrderRepository

func (r *memoryOrders) Create(ctx context.Context, order *models.Order) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	order.ID = s.nextOrderID
	s.nextOrderID++
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	s.orders[order.OrderCode] = *order
	return nil
}

func (r *memoryOrders) GetByCode(ctx context.Context, code string) (*models.Order, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[code]; ok {
		cp := o
		return &cp, nil
	}
	return nil, nil
}

func (r *memoryOrders) GetByCodeAndOwner(ctx context.Context, code string, userID int64) (*models.Order, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[code]; ok && o.CreatedBy == userID {
		cp := o
		return &cp, nil
	}
	return nil, nil
}

func (r *memoryOrders) List(ctx context.Context, q models.PageQuery, ownedBy *int64) ([]models.Order, int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []models.Order
	for _, o := range s.orders {
		if ownedBy != nil && o.CreatedBy != *ownedBy {
			continue
		}
		if q.Search != "" && !strings.HasPrefix(strings.ToLower(o.OrderCode), strings.ToLower(q.Search)) {
			continue
		}
		all = append(all, o)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return pageOf(all, q), int64(len(all)), nil
}

func (r *memoryOrders) Complete(ctx context.Context, code string, userID int64, vouchers []models.Voucher) (*models.Order, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[code]
	if !ok || o.CreatedBy != userID {
		return nil, apperrors.ErrNotFound
	}
	if !o.Status.CanTransition(models.OrderStatusCompleted) {
		return nil, statusConflict(o.Status)
	}

	t, ok := s.tickets[o.TicketID]
	if !ok || t.Quantity < o.Quantity {
		return nil, apperrors.ErrInsufficientStock
	}
	t.Quantity -= o.Quantity
	t.Reserved -= o.Quantity
	if t.Reserved < 0 {
		t.Reserved = 0
	}
	t.UpdatedAt = time.Now()
	s.tickets[o.TicketID] = t

	for i := range vouchers {
		vouchers[i].OrderID = o.ID
	}
	o.Status = models.OrderStatusCompleted
	o.Vouchers = vouchers
	o.UpdatedAt = time.Now()
	s.orders[code] = o

	cp := o
	return &cp, nil
}

func (r *memoryOrders) Transition(ctx context.Context, code string, to models.OrderStatus) (*models.Order, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[code]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if !o.Status.CanTransition(to) {
		return nil, statusConflict(o.Status)
	}

	if to == models.OrderStatusCancelled {
		releaseLocked(s, o.TicketID, o.Quantity)
	}

	o.Status = to
	o.UpdatedAt = time.Now()
	s.orders[code] = o

	cp := o
	return &cp, nil
}

func (r *memoryOrders) Delete(ctx context.Context, code string, userID int64) (*models.Order, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[code]
	if !ok || o.CreatedBy != userID {
		return nil, apperrors.ErrNotFound
	}

	if !o.Status.Terminal() {
		releaseLocked(s, o.TicketID, o.Quantity)
	}

	delete(s.orders, code)
	cp := o
	return &cp, nil
}

func pageOf[T any](all []T, q models.PageQuery) []T {
	start := q.Offset()
	if start >= len(all) {
		return nil
	}
	end := start + q.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}
