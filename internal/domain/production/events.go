package production

import (
	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types for the production order aggregate
const (
	EventProductionOrderCreated   = "production.order.created"
	EventProductionOrderApproved  = "production.order.approved"
	EventProductionOrderCancelled = "production.order.cancelled"
	EventProductionOrderFinished  = "production.order.finished"
	EventProductionStageStarted   = "production.stage.started"
	EventProductionStageCompleted = "production.stage.completed"
	EventProductionStageRejected  = "production.stage.rejected"
)

const aggregateTypeProductionOrder = "ProductionOrder"

// ProductionOrderCreatedEvent is emitted when a production order is created
type ProductionOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber   string          `json:"order_number"`
	OrderQuantity decimal.Decimal `json:"order_quantity"`
	StageCount    int             `json:"stage_count"`
}

// NewProductionOrderCreatedEvent creates a ProductionOrderCreatedEvent
func NewProductionOrderCreatedEvent(order *ProductionOrder) *ProductionOrderCreatedEvent {
	return &ProductionOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventProductionOrderCreated, aggregateTypeProductionOrder, order.ID, order.TenantID),
		OrderNumber:     order.OrderNumber,
		OrderQuantity:   order.OrderQuantity,
		StageCount:      len(order.Stages),
	}
}

// ProductionOrderApprovedEvent is emitted when a draft order is approved
type ProductionOrderApprovedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string    `json:"order_number"`
	ApprovedBy  uuid.UUID `json:"approved_by"`
}

// NewProductionOrderApprovedEvent creates a ProductionOrderApprovedEvent
func NewProductionOrderApprovedEvent(order *ProductionOrder, approvedBy uuid.UUID) *ProductionOrderApprovedEvent {
	return &ProductionOrderApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventProductionOrderApproved, aggregateTypeProductionOrder, order.ID, order.TenantID),
		OrderNumber:     order.OrderNumber,
		ApprovedBy:      approvedBy,
	}
}

// ProductionOrderCancelledEvent is emitted when an order is cancelled.
// Consumers holding ledger reservations for the order release them on this
// signal.
type ProductionOrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
	Reason      string `json:"reason"`
}

// NewProductionOrderCancelledEvent creates a ProductionOrderCancelledEvent
func NewProductionOrderCancelledEvent(order *ProductionOrder, reason string) *ProductionOrderCancelledEvent {
	return &ProductionOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventProductionOrderCancelled, aggregateTypeProductionOrder, order.ID, order.TenantID),
		OrderNumber:     order.OrderNumber,
		Reason:          reason,
	}
}

// ProductionOrderFinishedEvent is emitted once every stage is terminal and
// the order settles into COMPLETED or PARTIALLY_COMPLETED
type ProductionOrderFinishedEvent struct {
	shared.BaseDomainEvent
	OrderNumber       string          `json:"order_number"`
	Status            OrderStatus     `json:"status"`
	CompletedQuantity decimal.Decimal `json:"completed_quantity"`
	RejectedQuantity  decimal.Decimal `json:"rejected_quantity"`
}

// NewProductionOrderFinishedEvent creates a ProductionOrderFinishedEvent
func NewProductionOrderFinishedEvent(order *ProductionOrder) *ProductionOrderFinishedEvent {
	return &ProductionOrderFinishedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventProductionOrderFinished, aggregateTypeProductionOrder, order.ID, order.TenantID),
		OrderNumber:       order.OrderNumber,
		Status:            order.Status,
		CompletedQuantity: order.CompletedQuantity,
		RejectedQuantity:  order.RejectedQuantity,
	}
}

// ProductionStageStartedEvent is emitted when a stage enters IN_PROGRESS
type ProductionStageStartedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string      `json:"order_number"`
	StageNumber int         `json:"stage_number"`
	StageName   string      `json:"stage_name"`
	ProcessType ProcessType `json:"process_type"`
}

// NewProductionStageStartedEvent creates a ProductionStageStartedEvent
func NewProductionStageStartedEvent(order *ProductionOrder, stage *ProductionStage) *ProductionStageStartedEvent {
	return &ProductionStageStartedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventProductionStageStarted, aggregateTypeProductionOrder, order.ID, order.TenantID),
		OrderNumber:     order.OrderNumber,
		StageNumber:     stage.StageNumber,
		StageName:       stage.StageName,
		ProcessType:     stage.ProcessType,
	}
}

// ProductionStageCompletedEvent is emitted when a stage completes
type ProductionStageCompletedEvent struct {
	shared.BaseDomainEvent
	OrderNumber      string          `json:"order_number"`
	StageNumber      int             `json:"stage_number"`
	ProducedQuantity decimal.Decimal `json:"produced_quantity"`
	TotalStageCost   decimal.Decimal `json:"total_stage_cost"`
}

// NewProductionStageCompletedEvent creates a ProductionStageCompletedEvent
func NewProductionStageCompletedEvent(order *ProductionOrder, stage *ProductionStage) *ProductionStageCompletedEvent {
	return &ProductionStageCompletedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventProductionStageCompleted, aggregateTypeProductionOrder, order.ID, order.TenantID),
		OrderNumber:      order.OrderNumber,
		StageNumber:      stage.StageNumber,
		ProducedQuantity: stage.Output.ProducedQuantity,
		TotalStageCost:   stage.Costs.TotalStageCost,
	}
}

// ProductionStageRejectedEvent is emitted when a stage is rejected
type ProductionStageRejectedEvent struct {
	shared.BaseDomainEvent
	OrderNumber      string          `json:"order_number"`
	StageNumber      int             `json:"stage_number"`
	RejectedQuantity decimal.Decimal `json:"rejected_quantity"`
}

// NewProductionStageRejectedEvent creates a ProductionStageRejectedEvent
func NewProductionStageRejectedEvent(order *ProductionOrder, stage *ProductionStage) *ProductionStageRejectedEvent {
	return &ProductionStageRejectedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventProductionStageRejected, aggregateTypeProductionOrder, order.ID, order.TenantID),
		OrderNumber:      order.OrderNumber,
		StageNumber:      stage.StageNumber,
		RejectedQuantity: stage.Output.ProducedQuantity,
	}
}
