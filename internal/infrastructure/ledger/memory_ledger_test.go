package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/factoryops/backend/internal/domain/production"
	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLedger(qty int64) (*MemoryLedger, uuid.UUID, uuid.UUID) {
	l := NewMemoryLedger()
	tenantID := uuid.New()
	itemID := uuid.New()
	l.AddStock(tenantID, itemID, "B-77", decimal.NewFromInt(qty))
	return l, tenantID, itemID
}

func TestMemoryLedger_Reserve(t *testing.T) {
	ctx := context.Background()

	t.Run("moves stock into the allocation", func(t *testing.T) {
		l, tenantID, itemID := seedLedger(100)

		alloc, err := l.Reserve(ctx, tenantID, production.ReservationRequest{
			AllocationID: uuid.New(),
			ItemID:       itemID,
			BatchNumber:  "B-77",
			Quantity:     decimal.NewFromInt(40),
		})
		require.NoError(t, err)
		assert.True(t, alloc.Reserved.Equal(decimal.NewFromInt(40)))
		assert.True(t, l.Available(tenantID, itemID, "B-77").Equal(decimal.NewFromInt(60)))
	})

	t.Run("insufficient stock", func(t *testing.T) {
		l, tenantID, itemID := seedLedger(10)

		_, err := l.Reserve(ctx, tenantID, production.ReservationRequest{
			AllocationID: uuid.New(),
			ItemID:       itemID,
			BatchNumber:  "B-77",
			Quantity:     decimal.NewFromInt(40),
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.True(t, l.Available(tenantID, itemID, "B-77").Equal(decimal.NewFromInt(10)))
	})

	t.Run("idempotent per allocation ID", func(t *testing.T) {
		l, tenantID, itemID := seedLedger(100)
		req := production.ReservationRequest{
			AllocationID: uuid.New(),
			ItemID:       itemID,
			BatchNumber:  "B-77",
			Quantity:     decimal.NewFromInt(40),
		}

		first, err := l.Reserve(ctx, tenantID, req)
		require.NoError(t, err)
		second, err := l.Reserve(ctx, tenantID, req)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.True(t, second.Reserved.Equal(decimal.NewFromInt(40)))
		// Retried reservation must not take stock twice.
		assert.True(t, l.Available(tenantID, itemID, "B-77").Equal(decimal.NewFromInt(60)))
	})

	t.Run("tenants are isolated", func(t *testing.T) {
		l, tenantID, itemID := seedLedger(100)
		otherTenant := uuid.New()

		_, err := l.Reserve(ctx, otherTenant, production.ReservationRequest{
			AllocationID: uuid.New(),
			ItemID:       itemID,
			BatchNumber:  "B-77",
			Quantity:     decimal.NewFromInt(1),
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.True(t, l.Available(tenantID, itemID, "B-77").Equal(decimal.NewFromInt(100)))
	})
}

func TestMemoryLedger_Consume(t *testing.T) {
	ctx := context.Background()
	l, tenantID, itemID := seedLedger(100)
	allocationID := uuid.New()
	_, err := l.Reserve(ctx, tenantID, production.ReservationRequest{
		AllocationID: allocationID,
		ItemID:       itemID,
		BatchNumber:  "B-77",
		Quantity:     decimal.NewFromInt(60),
	})
	require.NoError(t, err)

	t.Run("books quantity plus waste", func(t *testing.T) {
		require.NoError(t, l.Consume(ctx, tenantID, allocationID, decimal.NewFromInt(50), decimal.NewFromInt(2)))

		alloc := l.Allocation(allocationID)
		require.NotNil(t, alloc)
		assert.True(t, alloc.Consumed.Equal(decimal.NewFromInt(50)))
		assert.True(t, alloc.Wasted.Equal(decimal.NewFromInt(2)))
		assert.True(t, alloc.Remaining().Equal(decimal.NewFromInt(8)))
	})

	t.Run("over-consumption", func(t *testing.T) {
		err := l.Consume(ctx, tenantID, allocationID, decimal.NewFromInt(9), decimal.Zero)
		assert.ErrorIs(t, err, shared.ErrOverConsumption)
	})

	t.Run("unknown allocation", func(t *testing.T) {
		err := l.Consume(ctx, tenantID, uuid.New(), decimal.NewFromInt(1), decimal.Zero)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("wrong tenant", func(t *testing.T) {
		err := l.Consume(ctx, uuid.New(), allocationID, decimal.NewFromInt(1), decimal.Zero)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestMemoryLedger_Release(t *testing.T) {
	ctx := context.Background()
	l, tenantID, itemID := seedLedger(100)
	allocationID := uuid.New()
	_, err := l.Reserve(ctx, tenantID, production.ReservationRequest{
		AllocationID: allocationID,
		ItemID:       itemID,
		BatchNumber:  "B-77",
		Quantity:     decimal.NewFromInt(60),
	})
	require.NoError(t, err)
	require.NoError(t, l.Consume(ctx, tenantID, allocationID, decimal.NewFromInt(30), decimal.Zero))

	t.Run("returns unused stock", func(t *testing.T) {
		require.NoError(t, l.Release(ctx, tenantID, allocationID, decimal.NewFromInt(20)))
		assert.True(t, l.Available(tenantID, itemID, "B-77").Equal(decimal.NewFromInt(60)))
		assert.True(t, l.Allocation(allocationID).Remaining().Equal(decimal.NewFromInt(10)))
	})

	t.Run("cannot release consumed stock", func(t *testing.T) {
		err := l.Release(ctx, tenantID, allocationID, decimal.NewFromInt(11))
		assert.ErrorIs(t, err, shared.ErrOverConsumption)
	})
}

func TestMemoryLedger_ConcurrentReserve(t *testing.T) {
	ctx := context.Background()
	l, tenantID, itemID := seedLedger(100)

	var wg sync.WaitGroup
	errs := make([]error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = l.Reserve(ctx, tenantID, production.ReservationRequest{
				AllocationID: uuid.New(),
				ItemID:       itemID,
				BatchNumber:  "B-77",
				Quantity:     decimal.NewFromInt(10),
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	// Exactly ten reservations of ten fit into a hundred.
	assert.Equal(t, 10, succeeded)
	assert.True(t, l.Available(tenantID, itemID, "B-77").IsZero())
}
