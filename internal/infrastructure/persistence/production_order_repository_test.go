package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/factoryops/backend/internal/domain/production"
	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupProductionOrderTestDB creates an in-memory SQLite database for testing
func setupProductionOrderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&production.ProductionOrder{}))
	return db
}

func newPersistedOrder(t *testing.T, repo *GormProductionOrderRepository, tenantID uuid.UUID, orderNumber string) *production.ProductionOrder {
	order, err := production.NewProductionOrder(tenantID, orderNumber,
		production.ProductSpec{Category: "Saree", Attributes: map[string]string{"design": "D-104"}},
		decimal.NewFromInt(100), "pcs",
		[]production.StagePlanEntry{
			{StageName: "Printing", ProcessType: production.ProcessTypePrinting},
			{StageName: "Washing", ProcessType: production.ProcessTypeWashing},
		})
	require.NoError(t, err)
	require.NoError(t, order.AddRawMaterial(uuid.New(), "Dye", "kg", decimal.NewFromInt(60), decimal.NewFromInt(5)))
	require.NoError(t, repo.Save(context.Background(), order))
	return order
}

func TestGormProductionOrderRepository_SaveAndFind(t *testing.T) {
	db := setupProductionOrderTestDB(t)
	repo := NewGormProductionOrderRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	order := newPersistedOrder(t, repo, tenantID, "MO-2026-00001")

	t.Run("round-trips the embedded documents", func(t *testing.T) {
		found, err := repo.FindByIDForTenant(ctx, tenantID, order.ID)
		require.NoError(t, err)

		assert.Equal(t, order.OrderNumber, found.OrderNumber)
		assert.Equal(t, "Saree", found.Product.Category)
		assert.Equal(t, "D-104", found.Product.Attributes["design"])
		require.Len(t, found.Stages, 2)
		assert.Equal(t, production.StageStatusPending, found.Stages[0].Status)
		require.Len(t, found.RawMaterials, 1)
		assert.True(t, found.RawMaterials[0].RequiredQuantity.Equal(decimal.NewFromInt(60)))
		assert.True(t, found.PendingQuantity.Equal(decimal.NewFromInt(100)))
	})

	t.Run("find by order number", func(t *testing.T) {
		found, err := repo.FindByOrderNumber(ctx, tenantID, "MO-2026-00001")
		require.NoError(t, err)
		assert.Equal(t, order.ID, found.ID)
	})

	t.Run("tenant isolation", func(t *testing.T) {
		_, err := repo.FindByIDForTenant(ctx, uuid.New(), order.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByIDForTenant(ctx, tenantID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductionOrderRepository_SaveWithLock(t *testing.T) {
	db := setupProductionOrderTestDB(t)
	repo := NewGormProductionOrderRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("persists a mutation and bumps the version", func(t *testing.T) {
		order := newPersistedOrder(t, repo, tenantID, "MO-2026-00001")
		require.NoError(t, order.Approve(uuid.New()))

		require.NoError(t, repo.SaveWithLock(ctx, order))
		assert.Equal(t, 2, order.Version)

		found, err := repo.FindByIDForTenant(ctx, tenantID, order.ID)
		require.NoError(t, err)
		assert.Equal(t, production.OrderStatusApproved, found.Status)
		assert.Equal(t, 2, found.Version)
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		order := newPersistedOrder(t, repo, tenantID, "MO-2026-00002")

		// Two readers load the same version.
		first, err := repo.FindByIDForTenant(ctx, tenantID, order.ID)
		require.NoError(t, err)
		second, err := repo.FindByIDForTenant(ctx, tenantID, order.ID)
		require.NoError(t, err)

		require.NoError(t, first.Approve(uuid.New()))
		require.NoError(t, repo.SaveWithLock(ctx, first))

		require.NoError(t, second.Cancel("changed our mind"))
		err = repo.SaveWithLock(ctx, second)
		assert.ErrorIs(t, err, shared.ErrVersionConflict)

		// The winner's write is intact.
		found, err := repo.FindByIDForTenant(ctx, tenantID, order.ID)
		require.NoError(t, err)
		assert.Equal(t, production.OrderStatusApproved, found.Status)
	})

	t.Run("stage mutations survive the round trip", func(t *testing.T) {
		order := newPersistedOrder(t, repo, tenantID, "MO-2026-00003")
		require.NoError(t, order.Approve(uuid.New()))
		require.NoError(t, order.Stages[0].AssignWorker(uuid.New(), "Worker A", decimal.NewFromInt(8), decimal.NewFromInt(20)))
		require.NoError(t, order.StartStage(1, time.Now()))
		require.NoError(t, repo.SaveWithLock(ctx, order))

		found, err := repo.FindByIDForTenant(ctx, tenantID, order.ID)
		require.NoError(t, err)
		assert.Equal(t, production.StageStatusInProgress, found.Stages[0].Status)
		require.Len(t, found.Stages[0].Workers, 1)
		assert.True(t, found.Stages[0].Workers[0].Cost.Equal(decimal.NewFromInt(160)))
		assert.Equal(t, production.OrderStatusInProgress, found.Status)
	})
}

func TestGormProductionOrderRepository_List(t *testing.T) {
	db := setupProductionOrderTestDB(t)
	repo := NewGormProductionOrderRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	first := newPersistedOrder(t, repo, tenantID, "MO-2026-00001")
	second := newPersistedOrder(t, repo, tenantID, "MO-2026-00002")
	require.NoError(t, second.Approve(uuid.New()))
	require.NoError(t, repo.SaveWithLock(ctx, second))
	newPersistedOrder(t, repo, uuid.New(), "MO-2026-00001") // other tenant

	t.Run("lists only the tenant's orders", func(t *testing.T) {
		orders, err := repo.FindAllForTenant(ctx, tenantID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("filters by status", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["status"] = string(production.OrderStatusDraft)

		orders, err := repo.FindAllForTenant(ctx, tenantID, filter)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, first.ID, orders[0].ID)
	})

	t.Run("search by order number", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "00002"

		orders, err := repo.FindAllForTenant(ctx, tenantID, filter)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, second.ID, orders[0].ID)
	})

	t.Run("counts with filter", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["status"] = string(production.OrderStatusApproved)

		count, err := repo.CountForTenant(ctx, tenantID, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("find by status", func(t *testing.T) {
		orders, err := repo.FindByStatus(ctx, tenantID, production.OrderStatusApproved, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, second.ID, orders[0].ID)
	})
}

func TestGormProductionOrderRepository_GenerateOrderNumber(t *testing.T) {
	db := setupProductionOrderTestDB(t)
	repo := NewGormProductionOrderRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	first, err := repo.GenerateOrderNumber(ctx, tenantID)
	require.NoError(t, err)
	assert.Regexp(t, `^MO-\d{4}-00001$`, first)

	newPersistedOrder(t, repo, tenantID, first)

	second, err := repo.GenerateOrderNumber(ctx, tenantID)
	require.NoError(t, err)
	assert.Regexp(t, `^MO-\d{4}-00002$`, second)

	// Numbering is per tenant.
	otherTenant, err := repo.GenerateOrderNumber(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, first, otherTenant)
}

func TestGormProductionOrderRepository_ExistsAndDelete(t *testing.T) {
	db := setupProductionOrderTestDB(t)
	repo := NewGormProductionOrderRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	order := newPersistedOrder(t, repo, tenantID, "MO-2026-00001")

	exists, err := repo.ExistsByOrderNumber(ctx, tenantID, "MO-2026-00001")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByOrderNumber(ctx, tenantID, "MO-2026-99999")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Delete(ctx, order.ID))
	_, err = repo.FindByID(ctx, order.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, order.ID), shared.ErrNotFound)
}
