package production

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Allocation is a ledger-side reservation of raw material against a
// specific item and batch. The engine holds allocations by ID on its
// consumption records; the ledger owns their storage.
type Allocation struct {
	ID          uuid.UUID
	ItemID      uuid.UUID
	BatchNumber string
	Reserved    decimal.Decimal
	Consumed    decimal.Decimal
	Wasted      decimal.Decimal
}

// Remaining returns the reserved quantity not yet consumed or wasted
func (a *Allocation) Remaining() decimal.Decimal {
	return a.Reserved.Sub(a.Consumed).Sub(a.Wasted)
}

// ReservationRequest asks the ledger to reserve stock. AllocationID is
// caller-supplied so that a retried request lands on the same allocation:
// reserving twice with the same ID has the effect of one reservation.
type ReservationRequest struct {
	AllocationID uuid.UUID
	ItemID       uuid.UUID
	BatchNumber  string
	Quantity     decimal.Decimal
}

// MaterialLedger is the engine's port to the external stock ledger.
// Reservation and consumption against the same item or batch from
// different orders are serialized by the ledger itself; this engine only
// requires each call to be individually atomic. No transaction spans a
// ledger call and the aggregate save.
type MaterialLedger interface {
	// Reserve moves available stock into the allocation. Idempotent per
	// allocation ID. Returns shared.ErrInsufficientStock when available
	// stock does not cover the quantity.
	Reserve(ctx context.Context, tenantID uuid.UUID, req ReservationRequest) (*Allocation, error)

	// Consume books quantity plus waste against the allocation. Returns
	// shared.ErrOverConsumption when the allocation's remaining reserved
	// amount does not cover it.
	Consume(ctx context.Context, tenantID, allocationID uuid.UUID, quantity, waste decimal.Decimal) error

	// Release returns unused reserved quantity to available stock; used on
	// order cancellation.
	Release(ctx context.Context, tenantID, allocationID uuid.UUID, quantity decimal.Decimal) error
}
