package service

import (
	"context"
	"sync"
	"testing"

	apperrors "gotix/internal/errors"
	"gotix/internal/models"
	"gotix/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturePublisher records published subjects for assertions
type capturePublisher struct {
	mu       sync.Mutex
	subjects []string
}

func (p *capturePublisher) Publish(subject string, data any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	return nil
}

func newOrderFixture(t *testing.T, quantity int64) (*OrderService, *repository.MemoryStore, *models.Ticket, *capturePublisher) {
	t.Helper()

	store := repository.NewMemoryStore()
	publisher := &capturePublisher{}
	svc := NewOrderService(store.Orders(), store.Tickets(), publisher)

	ticket := &models.Ticket{
		Name:     "Early Bird",
		Price:    decimal.NewFromInt(20000),
		Quantity: quantity,
		EventID:  1,
	}
	require.NoError(t, store.Tickets().Create(context.Background(), ticket))

	return svc, store, ticket, publisher
}

func TestCreateOrder(t *testing.T) {
	svc, store, ticket, publisher := newOrderFixture(t, 5)
	ctx := context.Background()

	order, err := svc.Create(ctx, 7, &models.CreateOrderRequest{Ticket: ticket.ID, Quantity: 3})
	require.NoError(t, err)

	assert.NotEmpty(t, order.OrderCode)
	assert.Equal(t, int64(7), order.CreatedBy)
	assert.Equal(t, models.OrderStatusCreated, order.Status)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(60000)), "total = %s", order.Total)

	// Remaining quantity is untouched until completion, the hold sits in
	// the reserved counter
	got, err := store.Tickets().GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Quantity)
	assert.Equal(t, int64(3), got.Reserved)
	assert.Equal(t, int64(2), got.Available())

	assert.Equal(t, []string{models.SubjectOrderCreated}, publisher.subjects)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	svc, _, ticket, _ := newOrderFixture(t, 5)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, &models.CreateOrderRequest{Ticket: ticket.ID, Quantity: 3})
	require.NoError(t, err)

	// Only 2 units remain available, a second order for 3 must fail
	_, err = svc.Create(ctx, 2, &models.CreateOrderRequest{Ticket: ticket.ID, Quantity: 3})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)

	_, err = svc.Create(ctx, 2, &models.CreateOrderRequest{Ticket: ticket.ID, Quantity: 2})
	assert.NoError(t, err)
}

func TestCreateOrderValidation(t *testing.T) {
	svc, _, ticket, _ := newOrderFixture(t, 5)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, &models.CreateOrderRequest{Ticket: ticket.ID, Quantity: 0})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Create(ctx, 1, &models.CreateOrderRequest{Ticket: ticket.ID, Quantity: -2})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Create(ctx, 1, &models.CreateOrderRequest{Ticket: 9999, Quantity: 1})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestConcurrentCreateNeverOversells(t *testing.T) {
	svc, store, ticket, _ := newOrderFixture(t, 5)
	ctx := context.Background()

	const buyers = 20
	var wg sync.WaitGroup
	results := make(chan error, buyers)

	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, err := svc.Create(ctx, userID, &models.CreateOrderRequest{Ticket: ticket.ID, Quantity: 1})
			results <- err
		}(int64(i + 1))
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 5, succeeded)

	got, err := store.Tickets().GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Available())
}

func TestCompleteOrder(t *testing.T) {
	svc, store, ticket, publisher := newOrderFixture(t, 5)
	ctx := context.Background()

	order, err := svc.Create(ctx, 7, &models.CreateOrderRequest{Ticket: ticket.ID, Quantity: 3})
	require.NoError(t, err)

	completed, err := svc.Complete(ctx, 7, order.OrderCode)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusCompleted, completed.Status)
	assert.Len(t, completed.Vouchers, 3)
	for _, v := range completed.Vouchers {
		assert.NotEmpty(t, v.VoucherID)
		assert.False(t, v.IsPrint)
	}

	got, err := store.Tickets().GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Quantity)
	assert.Equal(t, int64(0), got.Reserved)

	assert.Equal(t, []string{models.SubjectOrderCreated, models.SubjectOrderCompleted}, publisher.subjects)
}

func TestCompleteOrderTwice(t *testing.T) {
	svc, store, ticket, _ := newOrderFixture(t, 5)
	ctx := context.Background()

	order, err := svc.Create(ctx, 7, &models.CreateOrderRequest{Ticket: ticket.ID, Quantity: 2})
	require.NoError(t, err)

	_, err = svc.Complete(ctx, 7, order.OrderCode)
	require.NoError(t, err)

	_, err = svc.Complete(ctx, 7, order.OrderCode)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyCompleted)

	// The double completion must not decrement stock again
	got, err := store.Tickets().GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Quantity)
}

func TestCompleteSomeoneElsesOrder(t *testing.T) {
	svc, _, ticket, _ := newOrderFixture(t, 5)
	ctx := context.Background()

	order, err := svc.Create(ctx, 7, &models.CreateOrderRequest{Ticket: ticket.ID, Quantity: 1})
	require.NoError(t, err)

	_, err = svc.Complete(ctx, 8, order.OrderCode)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPendingThenComplete(t *testing.T) {
	svc, _, ticket, _ := newOrderFixture(t, 5)
	ctx := context.Background()

	order, err := svc.Create(ctx, 7, &models.CreateOrderRequest{Ticket: ticket.ID, Quantity: 1})
	require.NoError(t, err)

	pending, err := svc.Pending(ctx, order.OrderCode)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, pending.Status)

	// PENDING -> PENDING is not a legal move
	_, err = svc.Pending(ctx, order.OrderCode)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyPending)

	completed, err := svc.Complete(ctx, 7, order.OrderCode)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, completed.Status)

	_, err = svc.Pending(ctx, order.OrderCode)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyCompleted)
}

func TestPendingAndCancelAreNotOwnerScoped(t *testing.T) {
	svc, store, ticket, _ := newOrderFixture(t, 5)
	ctx := context.Background()

	order, err := svc.Create(ctx, 7, &models.CreateOrderRequest{Ticket: ticket.ID, Quantity: 2})
	require.NoError(t, err)

	// Another user moves the order through pending and cancellation
	pending, err := svc.Pending(ctx, order.OrderCode)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, pending.Status)

	cancelled, err := svc.Cancel(ctx, order.OrderCode)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	got, err := store.Tickets().GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Available())
}

func TestCancelOrderReleasesHold(t *testing.T) {
	svc, store, ticket, publisher := newOrderFixture(t, 5)
	ctx := context.Background()

	order, err := svc.Create(ctx, 7, &models.CreateOrderRequest{Ticket: ticket.ID, Quantity: 3})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, order.OrderCode)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	got, err := store.Tickets().GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Quantity)
	assert.Equal(t, int64(5), got.Available())

	// Terminal, nothing further is allowed
	_, err = svc.Complete(ctx, 7, order.OrderCode)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyCancelled)
	_, err = svc.Cancel(ctx, order.OrderCode)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyCancelled)

	assert.Equal(t, []string{models.SubjectOrderCreated, models.SubjectOrderCancelled}, publisher.subjects)
}

func TestCancelCompletedOrderKeepsStock(t *testing.T) {
	svc, store, ticket, _ := newOrderFixture(t, 5)
	ctx := context.Background()

	order, err := svc.Create(ctx, 7, &models.CreateOrderRequest{Ticket: ticket.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = svc.Complete(ctx, 7, order.OrderCode)
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, order.OrderCode)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyCompleted)

	got, err := store.Tickets().GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Quantity)
}

func TestRemoveOrder(t *testing.T) {
	svc, store, ticket, _ := newOrderFixture(t, 5)
	ctx := context.Background()

	order, err := svc.Create(ctx, 7, &models.CreateOrderRequest{Ticket: ticket.ID, Quantity: 3})
	require.NoError(t, err)

	removed, err := svc.Remove(ctx, 7, order.OrderCode)
	require.NoError(t, err)
	assert.Equal(t, order.OrderCode, removed.OrderCode)

	// Deleting an open order returns its hold
	got, err := store.Tickets().GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Available())

	_, err = svc.Get(ctx, 7, models.RoleMember, order.OrderCode)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.Remove(ctx, 7, order.OrderCode)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRemoveCompletedOrderKeepsStock(t *testing.T) {
	svc, store, ticket, _ := newOrderFixture(t, 5)
	ctx := context.Background()

	order, err := svc.Create(ctx, 7, &models.CreateOrderRequest{Ticket: ticket.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = svc.Complete(ctx, 7, order.OrderCode)
	require.NoError(t, err)

	_, err = svc.Remove(ctx, 7, order.OrderCode)
	require.NoError(t, err)

	got, err := store.Tickets().GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Quantity)
	assert.Equal(t, int64(0), got.Reserved)
}

func TestGetOrderScoping(t *testing.T) {
	svc, _, ticket, _ := newOrderFixture(t, 5)
	ctx := context.Background()

	order, err := svc.Create(ctx, 7, &models.CreateOrderRequest{Ticket: ticket.ID, Quantity: 1})
	require.NoError(t, err)

	// Owner sees it
	got, err := svc.Get(ctx, 7, models.RoleMember, order.OrderCode)
	require.NoError(t, err)
	assert.Equal(t, order.OrderCode, got.OrderCode)

	// Another member does not
	_, err = svc.Get(ctx, 8, models.RoleMember, order.OrderCode)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Admins see everything
	got, err = svc.Get(ctx, 99, models.RoleAdmin, order.OrderCode)
	require.NoError(t, err)
	assert.Equal(t, order.OrderCode, got.OrderCode)
}

func TestListOrders(t *testing.T) {
	svc, _, ticket, _ := newOrderFixture(t, 50)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, 7, &models.CreateOrderRequest{Ticket: ticket.ID, Quantity: 1})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, 8, &models.CreateOrderRequest{Ticket: ticket.ID, Quantity: 1})
	require.NoError(t, err)

	all, meta, err := svc.List(ctx, models.PageQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, int64(4), meta.Total)
	assert.Equal(t, 1, meta.Current)

	mine, meta, err := svc.ListMine(ctx, 7, models.PageQuery{})
	require.NoError(t, err)
	assert.Len(t, mine, 3)
	assert.Equal(t, int64(3), meta.Total)
	for _, o := range mine {
		assert.Equal(t, int64(7), o.CreatedBy)
	}

	paged, meta, err := svc.ListMine(ctx, 7, models.PageQuery{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, paged, 1)
	assert.Equal(t, int64(2), meta.TotalPage)
}
