package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/factoryops/backend/internal/domain/production"
	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductionOrderRepository implements ProductionOrderRepository using GORM.
// The whole aggregate lives on one row: stages, raw material lines and the
// rollup summaries are JSON columns, so a save is always atomic for the
// aggregate as a whole.
type GormProductionOrderRepository struct {
	db *gorm.DB
}

// NewGormProductionOrderRepository creates a new GormProductionOrderRepository
func NewGormProductionOrderRepository(db *gorm.DB) *GormProductionOrderRepository {
	return &GormProductionOrderRepository{db: db}
}

// FindByID finds a production order by its ID
func (r *GormProductionOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.ProductionOrder, error) {
	var order production.ProductionOrder
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDForTenant finds a production order by ID within a tenant
func (r *GormProductionOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*production.ProductionOrder, error) {
	var order production.ProductionOrder
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber finds a production order by order number within a tenant
func (r *GormProductionOrderRepository) FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*production.ProductionOrder, error) {
	var order production.ProductionOrder
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_number = ?", tenantID, orderNumber).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAllForTenant finds all production orders for a tenant
func (r *GormProductionOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]production.ProductionOrder, error) {
	var orders []production.ProductionOrder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&production.ProductionOrder{}).
			Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStatus finds production orders in a given status for a tenant
func (r *GormProductionOrderRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status production.OrderStatus, filter shared.Filter) ([]production.ProductionOrder, error) {
	var orders []production.ProductionOrder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&production.ProductionOrder{}).
			Where("tenant_id = ? AND status = ?", tenantID, status),
		filter,
	)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates a production order
func (r *GormProductionOrderRepository) Save(ctx context.Context, order *production.ProductionOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// SaveWithLock saves with optimistic locking. The version guard covers the
// whole aggregate row; a concurrent writer that bumped the version first
// makes this save fail with shared.ErrVersionConflict and no change.
func (r *GormProductionOrderRepository) SaveWithLock(ctx context.Context, order *production.ProductionOrder) error {
	currentVersion := order.Version
	order.IncrementVersion()

	result := r.db.WithContext(ctx).
		Model(order).
		Where("id = ? AND version = ?", order.ID, currentVersion).
		Updates(map[string]interface{}{
			"order_number":       order.OrderNumber,
			"sales_order_id":     order.SalesOrderID,
			"customer_id":        order.CustomerID,
			"customer_name":      order.CustomerName,
			"product":            order.Product,
			"unit":               order.Unit,
			"order_quantity":     order.OrderQuantity,
			"completed_quantity": order.CompletedQuantity,
			"rejected_quantity":  order.RejectedQuantity,
			"pending_quantity":   order.PendingQuantity,
			"raw_materials":      order.RawMaterials,
			"stages":             order.Stages,
			"priority":           order.Priority,
			"status":             order.Status,
			"schedule":           order.Schedule,
			"cost_summary":       order.CostSummary,
			"quality_summary":    order.QualitySummary,
			"remark":             order.Remark,
			"approved_by":        order.ApprovedBy,
			"approved_at":        order.ApprovedAt,
			"cancelled_at":       order.CancelledAt,
			"cancel_reason":      order.CancelReason,
			"hold_reason":        order.HoldReason,
			"held_from":          order.HeldFrom,
			"version":            order.Version,
			"updated_at":         order.UpdatedAt,
		})

	if result.Error != nil {
		order.Version = currentVersion
		return result.Error
	}
	if result.RowsAffected == 0 {
		order.Version = currentVersion
		return shared.ErrVersionConflict
	}
	return nil
}

// Delete deletes a production order
func (r *GormProductionOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&production.ProductionOrder{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts production orders for a tenant
func (r *GormProductionOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&production.ProductionOrder{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByOrderNumber checks if an order number exists within a tenant
func (r *GormProductionOrderRepository) ExistsByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&production.ProductionOrder{}).
		Where("tenant_id = ? AND order_number = ?", tenantID, orderNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GenerateOrderNumber generates a unique order number for a tenant
// Format: MO-YYYY-NNNNN (e.g., MO-2026-00001)
func (r *GormProductionOrderRepository) GenerateOrderNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("MO-%d-", year)

	var lastOrder production.ProductionOrder
	err := r.db.WithContext(ctx).
		Model(&production.ProductionOrder{}).
		Where("tenant_id = ? AND order_number LIKE ?", tenantID, prefix+"%").
		Order("order_number DESC").
		First(&lastOrder).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastOrder.OrderNumber != "" {
		parts := strings.Split(lastOrder.OrderNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	orderNumber := fmt.Sprintf("%s%05d", prefix, nextNum)

	exists, err := r.ExistsByOrderNumber(ctx, tenantID, orderNumber)
	if err != nil {
		return "", err
	}
	if exists {
		for i := 0; i < 100; i++ {
			nextNum++
			orderNumber = fmt.Sprintf("%s%05d", prefix, nextNum)
			exists, err = r.ExistsByOrderNumber(ctx, tenantID, orderNumber)
			if err != nil {
				return "", err
			}
			if !exists {
				break
			}
		}
	}

	return orderNumber, nil
}

// applyFilter applies filter options to the query
func (r *GormProductionOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering against the sort whitelist
	orderBy := ValidateSortField(filter.OrderBy, ProductionOrderSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormProductionOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("order_number LIKE ? OR customer_name LIKE ?", search, search)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "priority":
			query = query.Where("priority = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "sales_order_id":
			query = query.Where("sales_order_id = ?", value)
		case "delayed":
			if value == true {
				query = query.Where(
					"status NOT IN ? AND schedule->>'planned_end' IS NOT NULL AND (schedule->>'planned_end')::timestamptz < NOW()",
					[]production.OrderStatus{
						production.OrderStatusCompleted,
						production.OrderStatusPartiallyCompleted,
						production.OrderStatusCancelled,
					})
			}
		}
	}

	return query
}

// Ensure GormProductionOrderRepository implements ProductionOrderRepository
var _ production.ProductionOrderRepository = (*GormProductionOrderRepository)(nil)
