package repository

import (
	"context"
	"sync"
	"testing"

	apperrors "gotix/internal/errors"
	"gotix/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTicket(t *testing.T, store *MemoryStore, quantity int64) *models.Ticket {
	t.Helper()
	ticket := &models.Ticket{
		Name:     "Regular",
		Price:    decimal.NewFromInt(10000),
		Quantity: quantity,
		EventID:  1,
	}
	require.NoError(t, store.Tickets().Create(context.Background(), ticket))
	return ticket
}

func TestReserveAndRelease(t *testing.T) {
	store := NewMemoryStore()
	tickets := store.Tickets()
	ctx := context.Background()

	ticket := seedTicket(t, store, 5)

	require.NoError(t, tickets.Reserve(ctx, ticket.ID, 3))
	got, _ := tickets.GetByID(ctx, ticket.ID)
	assert.Equal(t, int64(5), got.Quantity)
	assert.Equal(t, int64(3), got.Reserved)

	// Only 2 left available
	assert.ErrorIs(t, tickets.Reserve(ctx, ticket.ID, 3), apperrors.ErrInsufficientStock)
	require.NoError(t, tickets.Reserve(ctx, ticket.ID, 2))

	require.NoError(t, tickets.Release(ctx, ticket.ID, 2))
	got, _ = tickets.GetByID(ctx, ticket.ID)
	assert.Equal(t, int64(3), got.Reserved)

	// Release never drives the counter negative
	require.NoError(t, tickets.Release(ctx, ticket.ID, 100))
	got, _ = tickets.GetByID(ctx, ticket.ID)
	assert.Equal(t, int64(0), got.Reserved)

	assert.ErrorIs(t, tickets.Reserve(ctx, 999, 1), apperrors.ErrNotFound)
}

func TestConcurrentReserve(t *testing.T) {
	store := NewMemoryStore()
	tickets := store.Tickets()
	ctx := context.Background()

	ticket := seedTicket(t, store, 10)

	var wg sync.WaitGroup
	results := make(chan error, 30)
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- tickets.Reserve(ctx, ticket.ID, 1)
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 10, succeeded)

	got, _ := tickets.GetByID(ctx, ticket.ID)
	assert.Equal(t, int64(10), got.Reserved)
	assert.Equal(t, int64(0), got.Available())
}

func TestCompleteCommitsReservation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	ticket := seedTicket(t, store, 5)
	require.NoError(t, store.Tickets().Reserve(ctx, ticket.ID, 2))

	order := &models.Order{
		OrderCode: "TRX-TEST1",
		CreatedBy: 7,
		TicketID:  ticket.ID,
		Quantity:  2,
		Total:     decimal.NewFromInt(20000),
		Status:    models.OrderStatusCreated,
	}
	require.NoError(t, store.Orders().Create(ctx, order))

	vouchers := []models.Voucher{{VoucherID: "v-1"}, {VoucherID: "v-2"}}
	completed, err := store.Orders().Complete(ctx, "TRX-TEST1", 7, vouchers)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, completed.Status)
	require.Len(t, completed.Vouchers, 2)
	assert.Equal(t, completed.ID, completed.Vouchers[0].OrderID)

	got, _ := store.Tickets().GetByID(ctx, ticket.ID)
	assert.Equal(t, int64(3), got.Quantity)
	assert.Equal(t, int64(0), got.Reserved)
}

func TestCompleteGuards(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	ticket := seedTicket(t, store, 5)
	order := &models.Order{
		OrderCode: "TRX-TEST2",
		CreatedBy: 7,
		TicketID:  ticket.ID,
		Quantity:  2,
		Status:    models.OrderStatusCreated,
	}
	require.NoError(t, store.Orders().Create(ctx, order))

	// Wrong owner
	_, err := store.Orders().Complete(ctx, "TRX-TEST2", 8, nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Unknown code
	_, err = store.Orders().Complete(ctx, "TRX-NOPE", 7, nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = store.Orders().Complete(ctx, "TRX-TEST2", 7, []models.Voucher{{VoucherID: "v"}, {VoucherID: "w"}})
	require.NoError(t, err)

	// Terminal state rejects further transitions
	_, err = store.Orders().Complete(ctx, "TRX-TEST2", 7, nil)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyCompleted)
	_, err = store.Orders().Transition(ctx, "TRX-TEST2", models.OrderStatusCancelled)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyCompleted)
}

func TestTransitionCancelledReleasesReservation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	ticket := seedTicket(t, store, 5)
	require.NoError(t, store.Tickets().Reserve(ctx, ticket.ID, 4))

	order := &models.Order{
		OrderCode: "TRX-TEST3",
		CreatedBy: 7,
		TicketID:  ticket.ID,
		Quantity:  4,
		Status:    models.OrderStatusCreated,
	}
	require.NoError(t, store.Orders().Create(ctx, order))

	cancelled, err := store.Orders().Transition(ctx, "TRX-TEST3", models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	got, _ := store.Tickets().GetByID(ctx, ticket.ID)
	assert.Equal(t, int64(5), got.Quantity)
	assert.Equal(t, int64(0), got.Reserved)
}

func TestOrderListPagingAndSearch(t *testing.T) {
	store := NewMemoryStore()
	orders := store.Orders()
	ctx := context.Background()

	codes := []string{"TRX-AAA1", "TRX-AAA2", "TRX-BBB1"}
	for i, code := range codes {
		require.NoError(t, orders.Create(ctx, &models.Order{
			OrderCode: code,
			CreatedBy: int64(1 + i%2),
			TicketID:  1,
			Quantity:  1,
			Status:    models.OrderStatusCreated,
		}))
	}

	all, total, err := orders.List(ctx, models.PageQuery{Page: 1, Limit: 10}, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, int64(3), total)

	// Code prefix search
	matched, total, err := orders.List(ctx, models.PageQuery{Page: 1, Limit: 10, Search: "trx-aaa"}, nil)
	require.NoError(t, err)
	assert.Len(t, matched, 2)
	assert.Equal(t, int64(2), total)

	// Owner scoping
	owner := int64(1)
	mine, _, err := orders.List(ctx, models.PageQuery{Page: 1, Limit: 10}, &owner)
	require.NoError(t, err)
	for _, o := range mine {
		assert.Equal(t, owner, o.CreatedBy)
	}

	// Page past the end is empty, not an error
	empty, total, err := orders.List(ctx, models.PageQuery{Page: 5, Limit: 10}, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.Equal(t, int64(3), total)
}
