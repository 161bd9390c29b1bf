package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/factoryops/backend/internal/domain/production"
	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// stockKey identifies one stock bucket: tenant + item + batch
type stockKey struct {
	tenantID    uuid.UUID
	itemID      uuid.UUID
	batchNumber string
}

// MemoryLedger is an in-process implementation of production.MaterialLedger.
// It serializes all calls behind one mutex, which satisfies the port's
// atomicity contract. Intended for tests and single-node deployments; a
// warehouse-backed implementation replaces it behind the same interface.
type MemoryLedger struct {
	mu          sync.Mutex
	available   map[stockKey]decimal.Decimal
	allocations map[uuid.UUID]*production.Allocation
	tenants     map[uuid.UUID]uuid.UUID // allocation -> owning tenant
}

// NewMemoryLedger creates an empty in-memory ledger
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		available:   make(map[stockKey]decimal.Decimal),
		allocations: make(map[uuid.UUID]*production.Allocation),
		tenants:     make(map[uuid.UUID]uuid.UUID),
	}
}

// AddStock seeds available stock for a tenant's item batch
func (l *MemoryLedger) AddStock(tenantID, itemID uuid.UUID, batchNumber string, quantity decimal.Decimal) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := stockKey{tenantID: tenantID, itemID: itemID, batchNumber: batchNumber}
	l.available[key] = l.availableLocked(key).Add(quantity)
}

// Available returns the available stock for a tenant's item batch
func (l *MemoryLedger) Available(tenantID, itemID uuid.UUID, batchNumber string) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.availableLocked(stockKey{tenantID: tenantID, itemID: itemID, batchNumber: batchNumber})
}

// Allocation returns a copy of the allocation, nil when absent
func (l *MemoryLedger) Allocation(allocationID uuid.UUID) *production.Allocation {
	l.mu.Lock()
	defer l.mu.Unlock()
	alloc, ok := l.allocations[allocationID]
	if !ok {
		return nil
	}
	copied := *alloc
	return &copied
}

// Reserve moves available stock into an allocation. Reserving again with
// the same allocation ID returns the existing allocation unchanged, so a
// retried request cannot double-reserve.
func (l *MemoryLedger) Reserve(ctx context.Context, tenantID uuid.UUID, req production.ReservationRequest) (*production.Allocation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if req.AllocationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Allocation ID cannot be empty")
	}
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Reservation quantity must be positive")
	}

	if existing, ok := l.allocations[req.AllocationID]; ok {
		if l.tenants[req.AllocationID] != tenantID {
			return nil, shared.ErrNotFound
		}
		copied := *existing
		return &copied, nil
	}

	key := stockKey{tenantID: tenantID, itemID: req.ItemID, batchNumber: req.BatchNumber}
	available := l.availableLocked(key)
	if available.LessThan(req.Quantity) {
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Available %s does not cover requested %s", available, req.Quantity))
	}

	l.available[key] = available.Sub(req.Quantity)
	alloc := &production.Allocation{
		ID:          req.AllocationID,
		ItemID:      req.ItemID,
		BatchNumber: req.BatchNumber,
		Reserved:    req.Quantity,
		Consumed:    decimal.Zero,
		Wasted:      decimal.Zero,
	}
	l.allocations[req.AllocationID] = alloc
	l.tenants[req.AllocationID] = tenantID

	copied := *alloc
	return &copied, nil
}

// Consume books quantity plus waste against the allocation
func (l *MemoryLedger) Consume(ctx context.Context, tenantID, allocationID uuid.UUID, quantity, waste decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	alloc, err := l.allocationLocked(tenantID, allocationID)
	if err != nil {
		return err
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Consumption quantity must be positive")
	}
	if waste.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Waste quantity cannot be negative")
	}

	total := quantity.Add(waste)
	if alloc.Remaining().LessThan(total) {
		return shared.NewDomainError("OVER_CONSUMPTION",
			fmt.Sprintf("Allocation %s has %s remaining, requested %s", allocationID, alloc.Remaining(), total))
	}

	alloc.Consumed = alloc.Consumed.Add(quantity)
	alloc.Wasted = alloc.Wasted.Add(waste)
	return nil
}

// Release returns unused reserved quantity to available stock
func (l *MemoryLedger) Release(ctx context.Context, tenantID, allocationID uuid.UUID, quantity decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	alloc, err := l.allocationLocked(tenantID, allocationID)
	if err != nil {
		return err
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Release quantity must be positive")
	}
	if alloc.Remaining().LessThan(quantity) {
		return shared.NewDomainError("OVER_CONSUMPTION",
			fmt.Sprintf("Allocation %s has %s remaining, cannot release %s", allocationID, alloc.Remaining(), quantity))
	}

	alloc.Reserved = alloc.Reserved.Sub(quantity)
	key := stockKey{tenantID: tenantID, itemID: alloc.ItemID, batchNumber: alloc.BatchNumber}
	l.available[key] = l.availableLocked(key).Add(quantity)
	return nil
}

func (l *MemoryLedger) availableLocked(key stockKey) decimal.Decimal {
	if qty, ok := l.available[key]; ok {
		return qty
	}
	return decimal.Zero
}

func (l *MemoryLedger) allocationLocked(tenantID, allocationID uuid.UUID) (*production.Allocation, error) {
	alloc, ok := l.allocations[allocationID]
	if !ok || l.tenants[allocationID] != tenantID {
		return nil, shared.NewDomainError("NOT_FOUND",
			fmt.Sprintf("Allocation %s not found", allocationID))
	}
	return alloc, nil
}
