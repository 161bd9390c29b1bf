package production

import (
	"context"
	"fmt"
	"time"

	"github.com/factoryops/backend/internal/domain/production"
	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductionOrderService orchestrates the production order lifecycle: it
// loads the aggregate, calls ledger operations where material moves, applies
// the domain transition and saves with optimistic locking. No transaction
// spans a ledger call and the save; a failed save after a successful ledger
// consumption is surfaced to the caller for retry with the same allocation.
type ProductionOrderService struct {
	orderRepo      production.ProductionOrderRepository
	ledger         production.MaterialLedger
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProductionOrderService creates a new ProductionOrderService
func NewProductionOrderService(
	orderRepo production.ProductionOrderRepository,
	ledger production.MaterialLedger,
	logger *zap.Logger,
) *ProductionOrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductionOrderService{
		orderRepo: orderRepo,
		ledger:    ledger,
		logger:    logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProductionOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// publishDomainEvents publishes pending domain events after a successful save
func (s *ProductionOrderService) publishDomainEvents(ctx context.Context, order *production.ProductionOrder) {
	if s.eventPublisher == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Errors are logged by the event bus, not propagated.
	_ = s.eventPublisher.Publish(ctx, events...)
	order.ClearDomainEvents()
}

// Create creates a draft production order with its stage plan and raw
// material requirements. The order number is generated when not supplied.
func (s *ProductionOrderService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductionOrderRequest) (*ProductionOrderResponse, error) {
	orderNumber := req.OrderNumber
	if orderNumber == "" {
		generated, err := s.orderRepo.GenerateOrderNumber(ctx, tenantID)
		if err != nil {
			return nil, fmt.Errorf("failed to generate order number: %w", err)
		}
		orderNumber = generated
	} else {
		exists, err := s.orderRepo.ExistsByOrderNumber(ctx, tenantID, orderNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("INVALID_INPUT",
				fmt.Sprintf("Order number %s already exists", orderNumber))
		}
	}

	stagePlan := make([]production.StagePlanEntry, len(req.Stages))
	for i, entry := range req.Stages {
		stagePlan[i] = production.StagePlanEntry{
			StageName:   entry.StageName,
			ProcessType: production.ProcessType(entry.ProcessType),
		}
	}

	order, err := production.NewProductionOrder(tenantID, orderNumber, req.Product, req.OrderQuantity, req.Unit, stagePlan)
	if err != nil {
		return nil, err
	}

	if req.Priority != "" {
		if err := order.SetPriority(production.Priority(req.Priority)); err != nil {
			return nil, err
		}
	}
	if req.SalesOrderID != nil && req.CustomerID != nil {
		order.SetSourceOrder(*req.SalesOrderID, *req.CustomerID, req.CustomerName)
	}
	if req.PlannedStart != nil || req.PlannedEnd != nil {
		if err := order.SetSchedule(req.PlannedStart, req.PlannedEnd); err != nil {
			return nil, err
		}
	}
	for _, line := range req.RawMaterials {
		if err := order.AddRawMaterial(line.ItemID, line.ItemName, line.Unit, line.RequiredQuantity, line.Rate); err != nil {
			return nil, err
		}
	}
	order.Remark = req.Remark

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("production order created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.Int("stages", len(order.Stages)))

	s.publishDomainEvents(ctx, order)
	response := ToProductionOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a production order by ID
func (s *ProductionOrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*ProductionOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToProductionOrderResponse(order)
	return &response, nil
}

// GetByOrderNumber retrieves a production order by its order number
func (s *ProductionOrderService) GetByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*ProductionOrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, tenantID, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToProductionOrderResponse(order)
	return &response, nil
}

// List retrieves production orders with filtering and pagination
func (s *ProductionOrderService) List(ctx context.Context, tenantID uuid.UUID, filter ProductionOrderListFilter) (*shared.Paginated[ProductionOrderListItemResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "updated_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Priority != "" {
		domainFilter.Filters["priority"] = filter.Priority
	}
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.Delayed != nil && *filter.Delayed {
		domainFilter.Filters["delayed"] = true
	}

	orders, err := s.orderRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToProductionOrderListItemResponses(orders), total, filter.Page, filter.PageSize)
	return &page, nil
}

// Approve approves a draft production order
func (s *ProductionOrderService) Approve(ctx context.Context, tenantID, orderID, approverID uuid.UUID) (*ProductionOrderResponse, error) {
	return s.mutate(ctx, tenantID, orderID, func(order *production.ProductionOrder) error {
		return order.Approve(approverID)
	})
}

// Cancel cancels a production order. Outstanding reservations are returned
// to the ledger; consumed material stays consumed.
func (s *ProductionOrderService) Cancel(ctx context.Context, tenantID, orderID uuid.UUID, reason string) (*ProductionOrderResponse, error) {
	response, err := s.mutate(ctx, tenantID, orderID, func(order *production.ProductionOrder) error {
		return order.Cancel(reason)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("production order cancelled",
		zap.String("tenant_id", tenantID.String()),
		zap.String("order_id", orderID.String()),
		zap.String("reason", reason))
	return response, nil
}

// Hold pauses a production order
func (s *ProductionOrderService) Hold(ctx context.Context, tenantID, orderID uuid.UUID, reason string) (*ProductionOrderResponse, error) {
	return s.mutate(ctx, tenantID, orderID, func(order *production.ProductionOrder) error {
		return order.Hold(reason)
	})
}

// Resume lifts an order-level hold
func (s *ProductionOrderService) Resume(ctx context.Context, tenantID, orderID uuid.UUID) (*ProductionOrderResponse, error) {
	return s.mutate(ctx, tenantID, orderID, func(order *production.ProductionOrder) error {
		return order.Resume()
	})
}

// AllocateMaterial reserves raw material for the order against the stock
// ledger, then records the allocation on the aggregate. The reservation is
// idempotent per allocation ID, so a retry after a failed save lands on the
// same allocation instead of double-reserving.
func (s *ProductionOrderService) AllocateMaterial(ctx context.Context, tenantID, orderID uuid.UUID, req AllocateMaterialRequest) (*ProductionOrderResponse, error) {
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Allocation quantity must be positive")
	}

	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	// Same guard the aggregate applies in RecordMaterialAllocation, checked
	// here before the ledger call so a frozen order never books a
	// reservation it will refuse to record.
	if order.Status.IsTerminal() {
		return nil, shared.NewDomainError("INVALID_TRANSITION", "Order is frozen, no further material movements")
	}
	if order.RawMaterial(req.ItemID) == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Item is not in the order's raw material list")
	}

	// Ledger first: a reservation failure leaves the aggregate untouched.
	allocation, err := s.ledger.Reserve(ctx, tenantID, production.ReservationRequest{
		AllocationID: req.AllocationID,
		ItemID:       req.ItemID,
		BatchNumber:  req.BatchNumber,
		Quantity:     req.Quantity,
	})
	if err != nil {
		return nil, err
	}

	if err := order.RecordMaterialAllocation(req.ItemID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		// The reservation stands; the caller retries with the same
		// allocation ID and the ledger call becomes a no-op.
		s.logger.Warn("allocation recorded on ledger but order save failed",
			zap.String("order_id", orderID.String()),
			zap.String("allocation_id", allocation.ID.String()),
			zap.Error(err))
		return nil, err
	}

	response := ToProductionOrderResponse(order)
	return &response, nil
}

// TransitionStage applies one operator action to a stage of the order.
// Validation and ledger failures abort before any aggregate mutation is
// persisted; the caller sees either the full transition or none of it.
func (s *ProductionOrderService) TransitionStage(ctx context.Context, tenantID, orderID uuid.UUID, stageNumber int, req TransitionStageRequest) (*ProductionOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	switch req.Action {
	case StageActionStart:
		stage := order.Stage(stageNumber)
		if stage != nil && (stage.Status == production.StageStatusRejected || stage.Status == production.StageStatusRework) {
			err = order.RestartStage(stageNumber, now)
		} else {
			err = order.StartStage(stageNumber, now)
		}

	case StageActionHold:
		err = order.HoldStage(stageNumber, req.Reason)

	case StageActionResume:
		err = order.ResumeStage(stageNumber)

	case StageActionRecordConsumption:
		if req.Consumption == nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Consumption payload is required")
		}
		err = s.recordConsumption(ctx, tenantID, order, stageNumber, *req.Consumption)

	case StageActionRecordCheckpoint:
		if req.Checkpoint == nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Checkpoint payload is required")
		}
		err = order.RecordStageCheckpoint(stageNumber, production.QualityCheckpoint{
			Parameter: req.Checkpoint.Parameter,
			Expected:  req.Checkpoint.Expected,
			Actual:    req.Checkpoint.Actual,
			Result:    production.CheckResult(req.Checkpoint.Result),
			CheckedBy: req.Checkpoint.CheckedBy,
			CheckedAt: now,
		})

	case StageActionComplete:
		if req.Output == nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Output payload is required")
		}
		if req.OverheadCost != nil {
			stage := order.Stage(stageNumber)
			if stage == nil {
				return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Stage %d not found", stageNumber))
			}
			if err := stage.SetOverheadCost(*req.OverheadCost); err != nil {
				return nil, err
			}
		}
		err = order.CompleteStage(stageNumber, toStageOutput(*req.Output), toFinalQuality(req.FinalQuality, now), now)

	case StageActionReject:
		var output *production.StageOutput
		if req.Output != nil {
			converted := toStageOutput(*req.Output)
			output = &converted
		}
		err = order.RejectStage(stageNumber, output, toFinalQuality(req.FinalQuality, now), now)

	case StageActionRework:
		err = order.ReworkStage(stageNumber, req.ReworkQuantity)

	default:
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown stage action %q", req.Action))
	}
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("stage transition applied",
		zap.String("tenant_id", tenantID.String()),
		zap.String("order_id", orderID.String()),
		zap.Int("stage", stageNumber),
		zap.String("action", string(req.Action)),
		zap.String("order_status", order.Status.String()))

	s.publishDomainEvents(ctx, order)
	response := ToProductionOrderResponse(order)
	return &response, nil
}

// recordConsumption books the consumption with the ledger first, then
// mirrors it on the stage and the raw material line. A ledger failure is
// returned verbatim with the aggregate unmodified.
func (s *ProductionOrderService) recordConsumption(ctx context.Context, tenantID uuid.UUID, order *production.ProductionOrder, stageNumber int, req ConsumptionRequest) error {
	// Validate the domain side before touching the ledger, so a rejected
	// transition never leaves a booked consumption behind.
	if order.Status != production.OrderStatusApproved && order.Status != production.OrderStatusInProgress {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Order in %s status accepts no material movements", order.Status))
	}
	if stage := order.Stage(stageNumber); stage == nil {
		return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Stage %d not found", stageNumber))
	} else if stage.Status != production.StageStatusInProgress {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot record consumption on stage %d in %s status", stageNumber, stage.Status))
	}
	if order.RawMaterial(req.ItemID) == nil {
		return shared.NewDomainError("NOT_FOUND", "Item is not in the order's raw material list")
	}
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Consumption quantity must be positive")
	}
	if req.WasteQuantity.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Waste quantity cannot be negative")
	}

	if err := s.ledger.Consume(ctx, tenantID, req.AllocationID, req.Quantity, req.WasteQuantity); err != nil {
		return err
	}

	return order.RecordStageConsumption(stageNumber, production.MaterialConsumption{
		ItemID:        req.ItemID,
		ItemName:      req.ItemName,
		Quantity:      req.Quantity,
		WasteQuantity: req.WasteQuantity,
		Rate:          req.Rate,
		BatchNumber:   req.BatchNumber,
		AllocationID:  req.AllocationID,
		RecordedBy:    req.RecordedBy,
		RecordedAt:    time.Now(),
	})
}

// AssignStageResource assigns a worker, machine or external vendor to a
// stage before it starts. Exactly one of the resource IDs must be set.
func (s *ProductionOrderService) AssignStageResource(ctx context.Context, tenantID, orderID uuid.UUID, stageNumber int, req AssignResourceRequest) (*ProductionOrderResponse, error) {
	selected := 0
	if req.WorkerID != nil {
		selected++
	}
	if req.MachineID != nil {
		selected++
	}
	if req.VendorID != nil {
		selected++
	}
	if selected != 1 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Exactly one of worker_id, machine_id or vendor_id must be set")
	}

	return s.mutateStage(ctx, tenantID, orderID, stageNumber, func(stage *production.ProductionStage) error {
		switch {
		case req.WorkerID != nil:
			return stage.AssignWorker(*req.WorkerID, req.Name, req.Hours, req.Rate)
		case req.MachineID != nil:
			return stage.AssignMachine(*req.MachineID, req.Name, req.Hours, req.Rate)
		default:
			return stage.AssignJobWork(*req.VendorID, req.Name, req.Rate, req.Quantity, req.ExpectedDelivery)
		}
	})
}

// ReleaseMaterial returns unused reserved material to the ledger; used
// after cancellation when the shop floor hands leftover stock back.
func (s *ProductionOrderService) ReleaseMaterial(ctx context.Context, tenantID, allocationID uuid.UUID, quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Release quantity must be positive")
	}
	return s.ledger.Release(ctx, tenantID, allocationID, quantity)
}

// mutate loads the order, applies fn and saves with optimistic locking
func (s *ProductionOrderService) mutate(ctx context.Context, tenantID, orderID uuid.UUID, fn func(*production.ProductionOrder) error) (*ProductionOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if err := fn(order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, order)
	response := ToProductionOrderResponse(order)
	return &response, nil
}

// mutateStage is mutate scoped to one stage of the order
func (s *ProductionOrderService) mutateStage(ctx context.Context, tenantID, orderID uuid.UUID, stageNumber int, fn func(*production.ProductionStage) error) (*ProductionOrderResponse, error) {
	return s.mutate(ctx, tenantID, orderID, func(order *production.ProductionOrder) error {
		stage := order.Stage(stageNumber)
		if stage == nil {
			return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Stage %d not found", stageNumber))
		}
		return fn(stage)
	})
}

func toStageOutput(req StageOutputRequest) production.StageOutput {
	return production.StageOutput{
		ProducedQuantity: req.ProducedQuantity,
		Unit:             req.Unit,
		LocationID:       req.LocationID,
		BatchNumber:      req.BatchNumber,
	}
}

func toFinalQuality(req *FinalQualityRequest, now time.Time) *production.FinalQuality {
	if req == nil {
		return nil
	}
	return &production.FinalQuality{
		Grade:            req.Grade,
		DefectCount:      req.DefectCount,
		DefectPercentage: req.DefectPercentage,
		ApprovedQuantity: req.ApprovedQuantity,
		RejectedQuantity: req.RejectedQuantity,
		ReworkQuantity:   req.ReworkQuantity,
		InspectedBy:      req.InspectedBy,
		InspectedAt:      now,
	}
}
