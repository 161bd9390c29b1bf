package production

import (
	"time"

	"github.com/factoryops/backend/internal/domain/production"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductionOrderRequest represents a request to create a production order
type CreateProductionOrderRequest struct {
	OrderNumber   string                   `json:"order_number"` // generated when empty
	Product       production.ProductSpec   `json:"product"`
	OrderQuantity decimal.Decimal          `json:"order_quantity"`
	Unit          string                   `json:"unit"`
	Priority      string                   `json:"priority"`
	Stages        []StagePlanRequest       `json:"stages"`
	RawMaterials  []RawMaterialLineRequest `json:"raw_materials"`
	SalesOrderID  *uuid.UUID               `json:"sales_order_id"`
	CustomerID    *uuid.UUID               `json:"customer_id"`
	CustomerName  string                   `json:"customer_name"`
	PlannedStart  *time.Time               `json:"planned_start"`
	PlannedEnd    *time.Time               `json:"planned_end"`
	Remark        string                   `json:"remark"`
}

// StagePlanRequest seeds one stage of the order's workflow
type StagePlanRequest struct {
	StageName   string `json:"stage_name"`
	ProcessType string `json:"process_type"`
}

// RawMaterialLineRequest represents one raw material requirement
type RawMaterialLineRequest struct {
	ItemID           uuid.UUID       `json:"item_id"`
	ItemName         string          `json:"item_name"`
	Unit             string          `json:"unit"`
	RequiredQuantity decimal.Decimal `json:"required_quantity"`
	Rate             decimal.Decimal `json:"rate"`
}

// StageAction is an operator action against one stage of an order
type StageAction string

const (
	StageActionStart             StageAction = "start"
	StageActionHold              StageAction = "hold"
	StageActionResume            StageAction = "resume"
	StageActionRecordConsumption StageAction = "record_consumption"
	StageActionRecordCheckpoint  StageAction = "record_checkpoint"
	StageActionComplete          StageAction = "complete"
	StageActionReject            StageAction = "reject"
	StageActionRework            StageAction = "rework"
)

// TransitionStageRequest carries one stage action with its payload. Only
// the fields relevant to the action are read; the rest are ignored.
type TransitionStageRequest struct {
	Action StageAction `json:"action"`

	// hold
	Reason string `json:"reason"`

	// record_consumption
	Consumption *ConsumptionRequest `json:"consumption"`

	// record_checkpoint
	Checkpoint *CheckpointRequest `json:"checkpoint"`

	// complete / reject
	Output       *StageOutputRequest  `json:"output"`
	FinalQuality *FinalQualityRequest `json:"final_quality"`
	OverheadCost *decimal.Decimal     `json:"overhead_cost"`

	// rework
	ReworkQuantity decimal.Decimal `json:"rework_quantity"`
}

// ConsumptionRequest records material drawn by a stage. AllocationID must
// reference a prior reservation; the ledger consumption runs before the
// aggregate is touched.
type ConsumptionRequest struct {
	AllocationID  uuid.UUID       `json:"allocation_id"`
	ItemID        uuid.UUID       `json:"item_id"`
	ItemName      string          `json:"item_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	WasteQuantity decimal.Decimal `json:"waste_quantity"`
	Rate          decimal.Decimal `json:"rate"`
	BatchNumber   string          `json:"batch_number"`
	RecordedBy    uuid.UUID       `json:"recorded_by"`
}

// CheckpointRequest records one quality checkpoint result
type CheckpointRequest struct {
	Parameter string    `json:"parameter"`
	Expected  string    `json:"expected"`
	Actual    string    `json:"actual"`
	Result    string    `json:"result"`
	CheckedBy uuid.UUID `json:"checked_by"`
}

// StageOutputRequest describes produced output for complete/reject
type StageOutputRequest struct {
	ProducedQuantity decimal.Decimal `json:"produced_quantity"`
	Unit             string          `json:"unit"`
	LocationID       *uuid.UUID      `json:"location_id"`
	BatchNumber      string          `json:"batch_number"`
}

// FinalQualityRequest is the terminal quality record of a stage
type FinalQualityRequest struct {
	Grade            string          `json:"grade"`
	DefectCount      int             `json:"defect_count"`
	DefectPercentage decimal.Decimal `json:"defect_percentage"`
	ApprovedQuantity decimal.Decimal `json:"approved_quantity"`
	RejectedQuantity decimal.Decimal `json:"rejected_quantity"`
	ReworkQuantity   decimal.Decimal `json:"rework_quantity"`
	InspectedBy      uuid.UUID       `json:"inspected_by"`
}

// AssignResourceRequest assigns a worker, machine or job-work vendor to a
// stage before it starts
type AssignResourceRequest struct {
	WorkerID         *uuid.UUID      `json:"worker_id"`
	MachineID        *uuid.UUID      `json:"machine_id"`
	VendorID         *uuid.UUID      `json:"vendor_id"`
	Name             string          `json:"name"`
	Hours            decimal.Decimal `json:"hours"`
	Rate             decimal.Decimal `json:"rate"`
	Quantity         decimal.Decimal `json:"quantity"`
	ExpectedDelivery *time.Time      `json:"expected_delivery"`
}

// AllocateMaterialRequest reserves raw material for the order against the
// stock ledger. AllocationID is caller-supplied so retries are idempotent.
type AllocateMaterialRequest struct {
	AllocationID uuid.UUID       `json:"allocation_id"`
	ItemID       uuid.UUID       `json:"item_id"`
	BatchNumber  string          `json:"batch_number"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// ProductionOrderListFilter represents filter options for order lists
type ProductionOrderListFilter struct {
	Search     string     `form:"search"`
	Status     string     `form:"status"`
	Priority   string     `form:"priority"`
	CustomerID *uuid.UUID `form:"customer_id"`
	Delayed    *bool      `form:"delayed"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
}

// ProductionOrderResponse represents a production order in API responses
type ProductionOrderResponse struct {
	ID                uuid.UUID                      `json:"id"`
	TenantID          uuid.UUID                      `json:"tenant_id"`
	OrderNumber       string                         `json:"order_number"`
	SalesOrderID      *uuid.UUID                     `json:"sales_order_id,omitempty"`
	CustomerID        *uuid.UUID                     `json:"customer_id,omitempty"`
	CustomerName      string                         `json:"customer_name,omitempty"`
	Product           production.ProductSpec         `json:"product"`
	Unit              string                         `json:"unit"`
	OrderQuantity     decimal.Decimal                `json:"order_quantity"`
	CompletedQuantity decimal.Decimal                `json:"completed_quantity"`
	RejectedQuantity  decimal.Decimal                `json:"rejected_quantity"`
	PendingQuantity   decimal.Decimal                `json:"pending_quantity"`
	Priority          string                         `json:"priority"`
	Status            string                         `json:"status"`
	RawMaterials      []production.RawMaterialLine   `json:"raw_materials"`
	Stages            []production.ProductionStage   `json:"stages"`
	Schedule          production.ProductionSchedule  `json:"schedule"`
	CostSummary       production.CostSummary         `json:"cost_summary"`
	QualitySummary    production.QualitySummary      `json:"quality_summary"`
	IsDelayed         bool                           `json:"is_delayed"`
	Remark            string                         `json:"remark,omitempty"`
	CreatedAt         time.Time                      `json:"created_at"`
	UpdatedAt         time.Time                      `json:"updated_at"`
	Version           int                            `json:"version"`
}

// ProductionOrderListItemResponse represents an order in list responses
type ProductionOrderListItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	OrderNumber       string          `json:"order_number"`
	CustomerName      string          `json:"customer_name,omitempty"`
	ProductCategory   string          `json:"product_category"`
	OrderQuantity     decimal.Decimal `json:"order_quantity"`
	CompletedQuantity decimal.Decimal `json:"completed_quantity"`
	PendingQuantity   decimal.Decimal `json:"pending_quantity"`
	Priority          string          `json:"priority"`
	Status            string          `json:"status"`
	IsDelayed         bool            `json:"is_delayed"`
	PlannedEnd        *time.Time      `json:"planned_end,omitempty"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToProductionOrderResponse converts a domain order to a response DTO
func ToProductionOrderResponse(order *production.ProductionOrder) ProductionOrderResponse {
	return ProductionOrderResponse{
		ID:                order.ID,
		TenantID:          order.TenantID,
		OrderNumber:       order.OrderNumber,
		SalesOrderID:      order.SalesOrderID,
		CustomerID:        order.CustomerID,
		CustomerName:      order.CustomerName,
		Product:           order.Product,
		Unit:              order.Unit,
		OrderQuantity:     order.OrderQuantity,
		CompletedQuantity: order.CompletedQuantity,
		RejectedQuantity:  order.RejectedQuantity,
		PendingQuantity:   order.PendingQuantity,
		Priority:          string(order.Priority),
		Status:            string(order.Status),
		RawMaterials:      order.RawMaterials,
		Stages:            order.Stages,
		Schedule:          order.Schedule,
		CostSummary:       order.CostSummary,
		QualitySummary:    order.QualitySummary,
		IsDelayed:         order.IsDelayed(time.Now()),
		Remark:            order.Remark,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
		Version:           order.Version,
	}
}

// ToProductionOrderListItemResponses converts domain orders to list DTOs
func ToProductionOrderListItemResponses(orders []production.ProductionOrder) []ProductionOrderListItemResponse {
	now := time.Now()
	responses := make([]ProductionOrderListItemResponse, len(orders))
	for i := range orders {
		order := &orders[i]
		responses[i] = ProductionOrderListItemResponse{
			ID:                order.ID,
			OrderNumber:       order.OrderNumber,
			CustomerName:      order.CustomerName,
			ProductCategory:   order.Product.Category,
			OrderQuantity:     order.OrderQuantity,
			CompletedQuantity: order.CompletedQuantity,
			PendingQuantity:   order.PendingQuantity,
			Priority:          string(order.Priority),
			Status:            string(order.Status),
			IsDelayed:         order.IsDelayed(now),
			PlannedEnd:        order.Schedule.PlannedEnd,
			UpdatedAt:         order.UpdatedAt,
		}
	}
	return responses
}
