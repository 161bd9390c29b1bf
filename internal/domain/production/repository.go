package production

import (
	"context"

	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductionOrderRepository defines the interface for production order persistence
type ProductionOrderRepository interface {
	// FindByID finds a production order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProductionOrder, error)

	// FindByIDForTenant finds a production order by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ProductionOrder, error)

	// FindByOrderNumber finds a production order by order number for a tenant
	FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*ProductionOrder, error)

	// FindAllForTenant finds all production orders for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ProductionOrder, error)

	// FindByStatus finds production orders by status for a tenant
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status OrderStatus, filter shared.Filter) ([]ProductionOrder, error)

	// Save creates or updates a production order
	Save(ctx context.Context, order *ProductionOrder) error

	// SaveWithLock saves with optimistic locking; returns
	// shared.ErrVersionConflict when the stored version has moved on
	SaveWithLock(ctx context.Context, order *ProductionOrder) error

	// Delete deletes a production order
	Delete(ctx context.Context, id uuid.UUID) error

	// CountForTenant counts production orders for a tenant with optional filters
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByOrderNumber checks if an order number exists for a tenant
	ExistsByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (bool, error)

	// GenerateOrderNumber generates a unique order number for a tenant
	GenerateOrderNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}
