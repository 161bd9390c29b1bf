package production

import (
	"fmt"
	"time"

	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a production order.
// Only DRAFT->APPROVED, ->CANCELLED and ->ON_HOLD are set by operator
// actions; every other status is derived from stage state on recalculation.
type OrderStatus string

const (
	OrderStatusDraft              OrderStatus = "DRAFT"
	OrderStatusApproved           OrderStatus = "APPROVED"
	OrderStatusInProgress         OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted          OrderStatus = "COMPLETED"
	OrderStatusPartiallyCompleted OrderStatus = "PARTIALLY_COMPLETED"
	OrderStatusCancelled          OrderStatus = "CANCELLED"
	OrderStatusOnHold             OrderStatus = "ON_HOLD"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusApproved, OrderStatusInProgress,
		OrderStatusCompleted, OrderStatusPartiallyCompleted,
		OrderStatusCancelled, OrderStatusOnHold:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true for statuses that end the order
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusPartiallyCompleted || s == OrderStatusCancelled
}

// Priority of a production order; informational, consumed by scheduling
// and reporting outside this engine
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
	PriorityRush   Priority = "RUSH"
)

// IsValid checks if the priority is one of the known set
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent, PriorityRush:
		return true
	}
	return false
}

// RawMaterialLine is one raw material requirement of the order. Allocated,
// consumed and waste counters track ledger activity; line cost is derived
// from consumed quantity at the material's rate, with waste absorbed
// rather than costed separately.
//
// The engine deliberately does not enforce consumed+waste <= allocated:
// over-consumption against the aggregate's own counters is scrap accounting
// and is only bounded by the ledger's per-allocation guard.
type RawMaterialLine struct {
	ItemID            uuid.UUID       `json:"item_id"`
	ItemName          string          `json:"item_name"`
	Unit              string          `json:"unit"`
	RequiredQuantity  decimal.Decimal `json:"required_quantity"`
	AllocatedQuantity decimal.Decimal `json:"allocated_quantity"`
	ConsumedQuantity  decimal.Decimal `json:"consumed_quantity"`
	WasteQuantity     decimal.Decimal `json:"waste_quantity"`
	Rate              decimal.Decimal `json:"rate"`
	LineCost          decimal.Decimal `json:"line_cost"`
}

// ProductionSchedule holds planned and actual order dates; used only for
// delay detection, never enforced
type ProductionSchedule struct {
	PlannedStart *time.Time `json:"planned_start,omitempty"`
	PlannedEnd   *time.Time `json:"planned_end,omitempty"`
	ActualStart  *time.Time `json:"actual_start,omitempty"`
	ActualEnd    *time.Time `json:"actual_end,omitempty"`
}

// CostSummary is the order-level cost rollup, fully derived from stage data
type CostSummary struct {
	MaterialCost        decimal.Decimal `json:"material_cost"`
	LaborCost           decimal.Decimal `json:"labor_cost"`
	MachineCost         decimal.Decimal `json:"machine_cost"`
	OverheadCost        decimal.Decimal `json:"overhead_cost"`
	JobWorkCost         decimal.Decimal `json:"job_work_cost"`
	TotalProductionCost decimal.Decimal `json:"total_production_cost"`
	CostPerUnit         decimal.Decimal `json:"cost_per_unit"`
}

// QualitySummary is the order-level quality rollup, fully derived from
// stages that carry a final quality record
type QualitySummary struct {
	TotalProduced  decimal.Decimal `json:"total_produced"`
	TotalApproved  decimal.Decimal `json:"total_approved"`
	TotalRejected  decimal.Decimal `json:"total_rejected"`
	TotalRework    decimal.Decimal `json:"total_rework"`
	DefectRate     decimal.Decimal `json:"defect_rate"`
	FirstPassYield decimal.Decimal `json:"first_pass_yield"`
}

// StagePlanEntry seeds one stage at order creation
type StagePlanEntry struct {
	StageName   string
	ProcessType ProcessType
}

// ProductSpec is the descriptive product snapshot carried on the order.
// Attributes are opaque to the engine; they pass through to labeling and
// reporting.
type ProductSpec struct {
	Category   string            `json:"category"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// ProductionOrder is the aggregate root of the production lifecycle engine.
// It exclusively owns its stages and raw material lines; customer order,
// customer, items and users are referenced by ID with denormalized display
// fields captured at creation time and never written back.
type ProductionOrder struct {
	shared.TenantAggregateRoot
	// Uniqueness of (tenant_id, order_number) is enforced by migration.
	OrderNumber  string     `gorm:"type:varchar(50);not null;index"`
	SalesOrderID *uuid.UUID `gorm:"type:uuid;index"`
	CustomerID   *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName string     `gorm:"type:varchar(200)"`

	Product ProductSpec `gorm:"serializer:json;type:jsonb"`
	Unit    string      `gorm:"type:varchar(20)"`

	OrderQuantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CompletedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RejectedQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PendingQuantity   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	RawMaterials []RawMaterialLine `gorm:"serializer:json;type:jsonb"`
	Stages       []ProductionStage `gorm:"serializer:json;type:jsonb"`

	Priority Priority    `gorm:"type:varchar(20);not null"`
	Status   OrderStatus `gorm:"type:varchar(30);not null;index"`

	Schedule       ProductionSchedule `gorm:"serializer:json;type:jsonb"`
	CostSummary    CostSummary        `gorm:"serializer:json;type:jsonb"`
	QualitySummary QualitySummary     `gorm:"serializer:json;type:jsonb"`

	Remark       string     `gorm:"type:text"`
	ApprovedBy   *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt   *time.Time
	CancelledAt  *time.Time
	CancelReason string `gorm:"type:text"`
	HoldReason   string `gorm:"type:text"`

	// heldFrom remembers the derived status to restore on resume
	HeldFrom OrderStatus `gorm:"type:varchar(30)"`
}

// TableName returns the table name for GORM
func (ProductionOrder) TableName() string {
	return "production_orders"
}

// NewProductionOrder creates a draft order with its stages seeded in
// PENDING state and zero consumption
func NewProductionOrder(tenantID uuid.UUID, orderNumber string, product ProductSpec, orderQuantity decimal.Decimal, unit string, stagePlan []StagePlanEntry) (*ProductionOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order number cannot exceed 50 characters")
	}
	if orderQuantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order quantity must be positive")
	}
	if len(stagePlan) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "At least one production stage is required")
	}

	order := &ProductionOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         orderNumber,
		Product:             product,
		Unit:                unit,
		OrderQuantity:       orderQuantity,
		CompletedQuantity:   decimal.Zero,
		RejectedQuantity:    decimal.Zero,
		PendingQuantity:     orderQuantity,
		RawMaterials:        make([]RawMaterialLine, 0),
		Stages:              make([]ProductionStage, 0, len(stagePlan)),
		Priority:            PriorityMedium,
		Status:              OrderStatusDraft,
	}

	for i, entry := range stagePlan {
		stage, err := NewProductionStage(i+1, entry.StageName, entry.ProcessType)
		if err != nil {
			return nil, err
		}
		order.Stages = append(order.Stages, *stage)
	}

	order.AddDomainEvent(NewProductionOrderCreatedEvent(order))

	return order, nil
}

// SetPriority sets the order priority
func (o *ProductionOrder) SetPriority(p Priority) error {
	if !p.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown priority %q", p))
	}
	o.Priority = p
	o.UpdatedAt = time.Now()
	return nil
}

// SetSourceOrder links the originating customer order snapshot
func (o *ProductionOrder) SetSourceOrder(salesOrderID, customerID uuid.UUID, customerName string) {
	o.SalesOrderID = &salesOrderID
	o.CustomerID = &customerID
	o.CustomerName = customerName
	o.UpdatedAt = time.Now()
}

// SetSchedule sets the planned dates
func (o *ProductionOrder) SetSchedule(plannedStart, plannedEnd *time.Time) error {
	if plannedStart != nil && plannedEnd != nil && plannedEnd.Before(*plannedStart) {
		return shared.NewDomainError("INVALID_INPUT", "Planned end cannot be before planned start")
	}
	o.Schedule.PlannedStart = plannedStart
	o.Schedule.PlannedEnd = plannedEnd
	o.UpdatedAt = time.Now()
	return nil
}

// AddRawMaterial adds a raw material requirement line.
// Only allowed in DRAFT status.
func (o *ProductionOrder) AddRawMaterial(itemID uuid.UUID, itemName, unit string, requiredQuantity, rate decimal.Decimal) error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_TRANSITION", "Raw materials can only be added to a draft order")
	}
	if itemID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Item ID cannot be empty")
	}
	if requiredQuantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Required quantity must be positive")
	}
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Material rate cannot be negative")
	}
	for _, line := range o.RawMaterials {
		if line.ItemID == itemID {
			return shared.NewDomainError("INVALID_INPUT", "Item already present in raw material list")
		}
	}

	o.RawMaterials = append(o.RawMaterials, RawMaterialLine{
		ItemID:            itemID,
		ItemName:          itemName,
		Unit:              unit,
		RequiredQuantity:  requiredQuantity,
		AllocatedQuantity: decimal.Zero,
		ConsumedQuantity:  decimal.Zero,
		WasteQuantity:     decimal.Zero,
		Rate:              rate,
		LineCost:          decimal.Zero,
	})
	o.UpdatedAt = time.Now()
	return nil
}

// RawMaterial returns the raw material line for an item, nil when absent
func (o *ProductionOrder) RawMaterial(itemID uuid.UUID) *RawMaterialLine {
	for idx := range o.RawMaterials {
		if o.RawMaterials[idx].ItemID == itemID {
			return &o.RawMaterials[idx]
		}
	}
	return nil
}

// Stage returns the stage with the given number, nil when absent
func (o *ProductionOrder) Stage(stageNumber int) *ProductionStage {
	for idx := range o.Stages {
		if o.Stages[idx].StageNumber == stageNumber {
			return &o.Stages[idx]
		}
	}
	return nil
}

// Approve moves the order from DRAFT to APPROVED; the only status an
// operator sets directly besides cancel and hold
func (o *ProductionOrder) Approve(approverID uuid.UUID) error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot approve order in %s status", o.Status))
	}
	if approverID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Approver is required")
	}

	now := time.Now()
	o.Status = OrderStatusApproved
	o.ApprovedBy = &approverID
	o.ApprovedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewProductionOrderApprovedEvent(o, approverID))
	return nil
}

// Cancel terminates the order from any non-terminal status. No further
// stage transitions are accepted afterwards. Reserved material is not
// released here; compensation against the ledger is the service's call.
func (o *ProductionOrder) Cancel(reason string) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_INPUT", "Cancel reason is required")
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now

	o.AddDomainEvent(NewProductionOrderCancelledEvent(o, reason))
	return nil
}

// Hold pauses the order from any non-terminal status
func (o *ProductionOrder) Hold(reason string) error {
	if o.Status.IsTerminal() || o.Status == OrderStatusOnHold {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot hold order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_INPUT", "Hold reason is required")
	}

	o.HeldFrom = o.Status
	o.Status = OrderStatusOnHold
	o.HoldReason = reason
	o.UpdatedAt = time.Now()
	return nil
}

// Resume lifts an order-level hold and re-derives the status from stages
func (o *ProductionOrder) Resume() error {
	if o.Status != OrderStatusOnHold {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot resume order in %s status", o.Status))
	}
	o.Status = o.HeldFrom
	o.HeldFrom = ""
	o.HoldReason = ""
	o.recalculate()
	o.UpdatedAt = time.Now()
	return nil
}

// acceptsStageTransitions guards every stage mutation with the order-level
// lifecycle: draft orders must be approved first, held and terminal orders
// accept nothing.
func (o *ProductionOrder) acceptsStageTransitions() error {
	switch o.Status {
	case OrderStatusApproved, OrderStatusInProgress:
		return nil
	case OrderStatusDraft:
		return shared.NewDomainError("INVALID_TRANSITION", "Order must be approved before stages can run")
	case OrderStatusPartiallyCompleted:
		// Re-attempt of a rejected stage is allowed; everything else is not.
		return nil
	default:
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Order in %s status accepts no stage transitions", o.Status))
	}
}

// StartStage moves a stage into IN_PROGRESS. All lower-numbered stages must
// be completed first; parallel stage execution is not supported.
func (o *ProductionOrder) StartStage(stageNumber int, now time.Time) error {
	if err := o.acceptsStageTransitions(); err != nil {
		return err
	}
	stage := o.Stage(stageNumber)
	if stage == nil {
		return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Stage %d not found", stageNumber))
	}
	for idx := range o.Stages {
		prev := &o.Stages[idx]
		if prev.StageNumber < stageNumber && prev.Status != StageStatusCompleted {
			return shared.NewDomainError("INVALID_TRANSITION",
				fmt.Sprintf("Stage %d cannot start while stage %d is %s", stageNumber, prev.StageNumber, prev.Status))
		}
	}
	if err := stage.Start(now); err != nil {
		return err
	}
	if o.Schedule.ActualStart == nil {
		o.Schedule.ActualStart = &now
	}

	o.recalculate()
	o.UpdatedAt = now
	o.AddDomainEvent(NewProductionStageStartedEvent(o, stage))
	return nil
}

// HoldStage pauses an in-progress stage
func (o *ProductionOrder) HoldStage(stageNumber int, reason string) error {
	if err := o.acceptsStageTransitions(); err != nil {
		return err
	}
	stage := o.Stage(stageNumber)
	if stage == nil {
		return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Stage %d not found", stageNumber))
	}
	if err := stage.Hold(reason); err != nil {
		return err
	}
	o.recalculate()
	o.UpdatedAt = time.Now()
	return nil
}

// ResumeStage returns a held stage to IN_PROGRESS
func (o *ProductionOrder) ResumeStage(stageNumber int) error {
	if err := o.acceptsStageTransitions(); err != nil {
		return err
	}
	stage := o.Stage(stageNumber)
	if stage == nil {
		return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Stage %d not found", stageNumber))
	}
	if err := stage.Resume(); err != nil {
		return err
	}
	o.recalculate()
	o.UpdatedAt = time.Now()
	return nil
}

// RecordStageConsumption appends a consumption fact to a stage and rolls the
// quantities up into the matching raw material line. The ledger call that
// covers this consumption happens before this method; a failure there means
// this is never reached.
func (o *ProductionOrder) RecordStageConsumption(stageNumber int, entry MaterialConsumption) error {
	if err := o.acceptsStageTransitions(); err != nil {
		return err
	}
	if o.Status == OrderStatusPartiallyCompleted {
		return shared.NewDomainError("INVALID_TRANSITION", "Order is frozen, no further material movements")
	}
	stage := o.Stage(stageNumber)
	if stage == nil {
		return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Stage %d not found", stageNumber))
	}
	line := o.RawMaterial(entry.ItemID)
	if line == nil {
		return shared.NewDomainError("NOT_FOUND", "Item is not in the order's raw material list")
	}
	if entry.Rate.IsZero() {
		entry.Rate = line.Rate
	}
	if err := stage.RecordConsumption(entry); err != nil {
		return err
	}

	line.ConsumedQuantity = line.ConsumedQuantity.Add(entry.Quantity)
	line.WasteQuantity = line.WasteQuantity.Add(entry.WasteQuantity)
	line.LineCost = line.ConsumedQuantity.Mul(line.Rate)

	o.recalculate()
	o.UpdatedAt = time.Now()
	return nil
}

// RecordMaterialAllocation tracks a successful ledger reservation on the
// raw material line
func (o *ProductionOrder) RecordMaterialAllocation(itemID uuid.UUID, quantity decimal.Decimal) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_TRANSITION", "Order is frozen, no further material movements")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Allocation quantity must be positive")
	}
	line := o.RawMaterial(itemID)
	if line == nil {
		return shared.NewDomainError("NOT_FOUND", "Item is not in the order's raw material list")
	}
	line.AllocatedQuantity = line.AllocatedQuantity.Add(quantity)
	o.UpdatedAt = time.Now()
	return nil
}

// RecordStageCheckpoint appends a quality checkpoint to a stage
func (o *ProductionOrder) RecordStageCheckpoint(stageNumber int, cp QualityCheckpoint) error {
	if err := o.acceptsStageTransitions(); err != nil {
		return err
	}
	stage := o.Stage(stageNumber)
	if stage == nil {
		return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Stage %d not found", stageNumber))
	}
	if err := stage.RecordCheckpoint(cp); err != nil {
		return err
	}
	o.recalculate()
	o.UpdatedAt = time.Now()
	return nil
}

// CompleteStage finishes a stage with its output and optional final quality
func (o *ProductionOrder) CompleteStage(stageNumber int, output StageOutput, final *FinalQuality, now time.Time) error {
	if err := o.acceptsStageTransitions(); err != nil {
		return err
	}
	stage := o.Stage(stageNumber)
	if stage == nil {
		return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Stage %d not found", stageNumber))
	}
	if err := stage.SetOutput(output); err != nil {
		return err
	}
	if final != nil {
		if err := stage.SetFinalQuality(*final); err != nil {
			return err
		}
	}
	if err := stage.Complete(now); err != nil {
		return err
	}
	if o.allStagesTerminal() {
		o.Schedule.ActualEnd = &now
	}

	o.recalculate()
	o.UpdatedAt = now
	o.AddDomainEvent(NewProductionStageCompletedEvent(o, stage))
	if o.Status == OrderStatusCompleted || o.Status == OrderStatusPartiallyCompleted {
		o.AddDomainEvent(NewProductionOrderFinishedEvent(o))
	}
	return nil
}

// RejectStage fails a stage on quality grounds. Consumed material stays
// consumed and its reservation stays with the ledger: scrap accounting.
func (o *ProductionOrder) RejectStage(stageNumber int, output *StageOutput, final *FinalQuality, now time.Time) error {
	if err := o.acceptsStageTransitions(); err != nil {
		return err
	}
	stage := o.Stage(stageNumber)
	if stage == nil {
		return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Stage %d not found", stageNumber))
	}
	if output != nil {
		if err := stage.SetOutput(*output); err != nil {
			return err
		}
	}
	if final != nil {
		if err := stage.SetFinalQuality(*final); err != nil {
			return err
		}
	}
	if err := stage.Reject(now); err != nil {
		return err
	}
	if o.allStagesTerminal() {
		o.Schedule.ActualEnd = &now
	}

	o.recalculate()
	o.UpdatedAt = now
	o.AddDomainEvent(NewProductionStageRejectedEvent(o, stage))
	if o.Status == OrderStatusCompleted || o.Status == OrderStatusPartiallyCompleted {
		o.AddDomainEvent(NewProductionOrderFinishedEvent(o))
	}
	return nil
}

// ReworkStage marks part of a stage's output for rework; the stage stays
// in progress for another cycle
func (o *ProductionOrder) ReworkStage(stageNumber int, quantity decimal.Decimal) error {
	if err := o.acceptsStageTransitions(); err != nil {
		return err
	}
	stage := o.Stage(stageNumber)
	if stage == nil {
		return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Stage %d not found", stageNumber))
	}
	if err := stage.Rework(quantity); err != nil {
		return err
	}
	o.recalculate()
	o.UpdatedAt = time.Now()
	return nil
}

// RestartStage re-attempts a rejected or reworked stage. The engine imposes
// no retry limit; bounding retries is the caller's policy.
func (o *ProductionOrder) RestartStage(stageNumber int, now time.Time) error {
	if err := o.acceptsStageTransitions(); err != nil {
		return err
	}
	stage := o.Stage(stageNumber)
	if stage == nil {
		return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Stage %d not found", stageNumber))
	}
	if stage.Status != StageStatusRejected && stage.Status != StageStatusRework {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Stage %d is %s, only rejected or reworked stages can be restarted", stageNumber, stage.Status))
	}
	if err := stage.Start(now); err != nil {
		return err
	}
	o.Schedule.ActualEnd = nil
	o.recalculate()
	o.UpdatedAt = now
	return nil
}

// allStagesTerminal reports whether every stage is completed or rejected
func (o *ProductionOrder) allStagesTerminal() bool {
	for idx := range o.Stages {
		if !o.Stages[idx].Status.IsTerminal() {
			return false
		}
	}
	return len(o.Stages) > 0
}

// IsDelayed reports whether the order missed its planned end date
func (o *ProductionOrder) IsDelayed(now time.Time) bool {
	if o.Schedule.PlannedEnd == nil {
		return false
	}
	if o.Schedule.ActualEnd != nil {
		return o.Schedule.ActualEnd.After(*o.Schedule.PlannedEnd)
	}
	return !o.Status.IsTerminal() && now.After(*o.Schedule.PlannedEnd)
}
