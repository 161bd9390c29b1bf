package production

import (
	"fmt"
	"time"

	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StageStatus represents the status of a production stage
type StageStatus string

const (
	StageStatusPending    StageStatus = "PENDING"
	StageStatusInProgress StageStatus = "IN_PROGRESS"
	StageStatusCompleted  StageStatus = "COMPLETED"
	StageStatusOnHold     StageStatus = "ON_HOLD"
	StageStatusRejected   StageStatus = "REJECTED"
	StageStatusRework     StageStatus = "REWORK"
)

// IsValid checks if the status is a valid StageStatus
func (s StageStatus) IsValid() bool {
	switch s {
	case StageStatusPending, StageStatusInProgress, StageStatusCompleted,
		StageStatusOnHold, StageStatusRejected, StageStatusRework:
		return true
	}
	return false
}

// String returns the string representation of StageStatus
func (s StageStatus) String() string {
	return string(s)
}

// IsTerminal returns true for statuses that end a stage attempt.
// A rejected stage may still be restarted as a new attempt.
func (s StageStatus) IsTerminal() bool {
	return s == StageStatusCompleted || s == StageStatusRejected
}

// CanTransitionTo checks if the status can transition to the target status
func (s StageStatus) CanTransitionTo(target StageStatus) bool {
	switch s {
	case StageStatusPending:
		return target == StageStatusInProgress
	case StageStatusInProgress:
		return target == StageStatusCompleted || target == StageStatusRejected ||
			target == StageStatusRework || target == StageStatusOnHold
	case StageStatusOnHold:
		return target == StageStatusInProgress
	case StageStatusRejected, StageStatusRework:
		// Re-attempt; any retry limit is the caller's policy, not the engine's.
		return target == StageStatusInProgress
	case StageStatusCompleted:
		return false
	}
	return false
}

// ProcessType labels the kind of work a stage performs. It is a closed set
// and carries no behavioral difference in the engine; reporting consumes it.
type ProcessType string

const (
	ProcessTypePrinting     ProcessType = "PRINTING"
	ProcessTypeWashing      ProcessType = "WASHING"
	ProcessTypeFixing       ProcessType = "FIXING"
	ProcessTypeStitching    ProcessType = "STITCHING"
	ProcessTypeFinishing    ProcessType = "FINISHING"
	ProcessTypeQualityCheck ProcessType = "QUALITY_CHECK"
)

// IsValid checks if the process type is one of the known set
func (p ProcessType) IsValid() bool {
	switch p {
	case ProcessTypePrinting, ProcessTypeWashing, ProcessTypeFixing,
		ProcessTypeStitching, ProcessTypeFinishing, ProcessTypeQualityCheck:
		return true
	}
	return false
}

// String returns the string representation of ProcessType
func (p ProcessType) String() string {
	return string(p)
}

// CheckResult is the outcome of a single quality checkpoint
type CheckResult string

const (
	CheckResultPass   CheckResult = "PASS"
	CheckResultFail   CheckResult = "FAIL"
	CheckResultRework CheckResult = "REWORK"
)

// QualityGradeReject is the final grade that forces a stage rejection
const QualityGradeReject = "Reject"

// WorkerAssignment records a worker assigned to a stage with labor cost
type WorkerAssignment struct {
	WorkerID    uuid.UUID       `json:"worker_id"`
	WorkerName  string          `json:"worker_name"`
	HoursWorked decimal.Decimal `json:"hours_worked"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
	Cost        decimal.Decimal `json:"cost"`
}

// MachineAssignment records a machine assigned to a stage with machine cost
type MachineAssignment struct {
	MachineID   uuid.UUID       `json:"machine_id"`
	MachineName string          `json:"machine_name"`
	HoursUsed   decimal.Decimal `json:"hours_used"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
	Cost        decimal.Decimal `json:"cost"`
}

// JobWorkAssignment records work subcontracted to an external vendor
type JobWorkAssignment struct {
	VendorID         uuid.UUID       `json:"vendor_id"`
	VendorName       string          `json:"vendor_name"`
	Rate             decimal.Decimal `json:"rate"`
	Quantity         decimal.Decimal `json:"quantity"`
	ExpectedDelivery *time.Time      `json:"expected_delivery,omitempty"`
	Cost             decimal.Decimal `json:"cost"`
}

// StageTiming holds planned and actual timing; informational only,
// it feeds delay detection and is never enforced
type StageTiming struct {
	PlannedStart    *time.Time `json:"planned_start,omitempty"`
	PlannedEnd      *time.Time `json:"planned_end,omitempty"`
	ActualStart     *time.Time `json:"actual_start,omitempty"`
	ActualEnd       *time.Time `json:"actual_end,omitempty"`
	BreakMinutes    int        `json:"break_minutes"`
	OvertimeMinutes int        `json:"overtime_minutes"`
}

// MaterialConsumption is one recorded consumption fact. Entries are
// append-only within a stage: once recorded they are never mutated,
// a rework cycle appends further entries instead.
type MaterialConsumption struct {
	ItemID        uuid.UUID       `json:"item_id"`
	ItemName      string          `json:"item_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	WasteQuantity decimal.Decimal `json:"waste_quantity"`
	Rate          decimal.Decimal `json:"rate"`
	BatchNumber   string          `json:"batch_number"`
	AllocationID  uuid.UUID       `json:"allocation_id"`
	RecordedBy    uuid.UUID       `json:"recorded_by"`
	RecordedAt    time.Time       `json:"recorded_at"`
}

// WastePercentage returns waste / (consumed + waste) * 100 rounded to two
// decimal places. Display only; rollups always sum the unrounded quantities.
func (c MaterialConsumption) WastePercentage() decimal.Decimal {
	total := c.Quantity.Add(c.WasteQuantity)
	if total.IsZero() {
		return decimal.Zero
	}
	return c.WasteQuantity.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
}

// Cost returns the material cost of this entry. Waste carries no separate
// cost line; it is absorbed by the consumption cost.
func (c MaterialConsumption) Cost() decimal.Decimal {
	return c.Quantity.Mul(c.Rate)
}

// QualityCheckpoint is one ordered quality check within a stage
type QualityCheckpoint struct {
	Parameter string      `json:"parameter"`
	Expected  string      `json:"expected"`
	Actual    string      `json:"actual"`
	Result    CheckResult `json:"result"`
	CheckedBy uuid.UUID   `json:"checked_by"`
	CheckedAt time.Time   `json:"checked_at"`
}

// FinalQuality is the terminal quality record of a stage, set once the
// stage reaches an outcome
type FinalQuality struct {
	Grade             string          `json:"grade"`
	DefectCount       int             `json:"defect_count"`
	DefectPercentage  decimal.Decimal `json:"defect_percentage"`
	ApprovedQuantity  decimal.Decimal `json:"approved_quantity"`
	RejectedQuantity  decimal.Decimal `json:"rejected_quantity"`
	ReworkQuantity    decimal.Decimal `json:"rework_quantity"`
	InspectedBy       uuid.UUID       `json:"inspected_by"`
	InspectedAt       time.Time       `json:"inspected_at"`
}

// StageOutput describes what a stage produced
type StageOutput struct {
	ProducedQuantity decimal.Decimal `json:"produced_quantity"`
	Unit             string          `json:"unit"`
	LocationID       *uuid.UUID      `json:"location_id,omitempty"`
	BatchNumber      string          `json:"batch_number"`
}

// StageCosts are the cost leaves the order-level summary sums over
type StageCosts struct {
	MaterialCost   decimal.Decimal `json:"material_cost"`
	LaborCost      decimal.Decimal `json:"labor_cost"`
	MachineCost    decimal.Decimal `json:"machine_cost"`
	OverheadCost   decimal.Decimal `json:"overhead_cost"`
	JobWorkCost    decimal.Decimal `json:"job_work_cost"`
	TotalStageCost decimal.Decimal `json:"total_stage_cost"`
}

// ProductionStage is one ordered step of a production order's workflow.
// It is owned by the order: it has no identity or persistence of its own
// and is only ever mutated through the aggregate.
type ProductionStage struct {
	StageNumber int         `json:"stage_number"`
	StageName   string      `json:"stage_name"`
	ProcessType ProcessType `json:"process_type"`
	Status      StageStatus `json:"status"`

	Workers  []WorkerAssignment  `json:"workers,omitempty"`
	Machines []MachineAssignment `json:"machines,omitempty"`
	JobWork  *JobWorkAssignment  `json:"job_work,omitempty"`

	Timing      StageTiming           `json:"timing"`
	Consumption []MaterialConsumption `json:"consumption,omitempty"`
	Checkpoints []QualityCheckpoint   `json:"checkpoints,omitempty"`
	Final       *FinalQuality         `json:"final_quality,omitempty"`
	Output      StageOutput           `json:"output"`
	Costs       StageCosts            `json:"costs"`

	ReworkQuantity decimal.Decimal `json:"rework_quantity"`
	HoldReason     string          `json:"hold_reason,omitempty"`
}

// NewProductionStage creates a pending stage with zero consumption
func NewProductionStage(stageNumber int, stageName string, processType ProcessType) (*ProductionStage, error) {
	if stageNumber <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Stage number must be positive")
	}
	if stageName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Stage name cannot be empty")
	}
	if !processType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown process type %q", processType))
	}

	return &ProductionStage{
		StageNumber:    stageNumber,
		StageName:      stageName,
		ProcessType:    processType,
		Status:         StageStatusPending,
		ReworkQuantity: decimal.Zero,
	}, nil
}

// HasResourceAssignment returns true when at least one worker, machine or
// job-work assignment is present; starting a stage requires one
func (s *ProductionStage) HasResourceAssignment() bool {
	return len(s.Workers) > 0 || len(s.Machines) > 0 || s.JobWork != nil
}

// AssignWorker adds a worker assignment; cost is hours * rate
func (s *ProductionStage) AssignWorker(workerID uuid.UUID, name string, hours, rate decimal.Decimal) error {
	if s.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot assign workers to stage %d in %s status", s.StageNumber, s.Status))
	}
	if workerID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Worker ID cannot be empty")
	}
	if hours.IsNegative() || rate.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Worker hours and rate cannot be negative")
	}
	s.Workers = append(s.Workers, WorkerAssignment{
		WorkerID:    workerID,
		WorkerName:  name,
		HoursWorked: hours,
		HourlyRate:  rate,
		Cost:        hours.Mul(rate),
	})
	return nil
}

// AssignMachine adds a machine assignment; cost is hours * rate
func (s *ProductionStage) AssignMachine(machineID uuid.UUID, name string, hours, rate decimal.Decimal) error {
	if s.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot assign machines to stage %d in %s status", s.StageNumber, s.Status))
	}
	if machineID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Machine ID cannot be empty")
	}
	if hours.IsNegative() || rate.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Machine hours and rate cannot be negative")
	}
	s.Machines = append(s.Machines, MachineAssignment{
		MachineID:   machineID,
		MachineName: name,
		HoursUsed:   hours,
		HourlyRate:  rate,
		Cost:        hours.Mul(rate),
	})
	return nil
}

// AssignJobWork subcontracts the stage to an external vendor
func (s *ProductionStage) AssignJobWork(vendorID uuid.UUID, name string, rate, quantity decimal.Decimal, expectedDelivery *time.Time) error {
	if s.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot assign job work to stage %d in %s status", s.StageNumber, s.Status))
	}
	if vendorID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Vendor ID cannot be empty")
	}
	if rate.IsNegative() || quantity.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Job work rate and quantity cannot be negative")
	}
	s.JobWork = &JobWorkAssignment{
		VendorID:         vendorID,
		VendorName:       name,
		Rate:             rate,
		Quantity:         quantity,
		ExpectedDelivery: expectedDelivery,
		Cost:             rate.Mul(quantity),
	}
	return nil
}

// Start moves the stage from PENDING (or a REJECTED/REWORK re-attempt)
// into IN_PROGRESS. Stage ordering against the rest of the order is the
// aggregate's check, not this one.
func (s *ProductionStage) Start(now time.Time) error {
	if !s.Status.CanTransitionTo(StageStatusInProgress) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot start stage %d in %s status", s.StageNumber, s.Status))
	}
	if s.Status == StageStatusOnHold {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Stage %d is on hold, resume it instead", s.StageNumber))
	}
	if !s.HasResourceAssignment() {
		return shared.NewDomainError("PRECONDITION_FAILED",
			fmt.Sprintf("Stage %d requires at least one worker, machine or job-work assignment", s.StageNumber))
	}

	// A re-attempt keeps its consumption counters; only first start stamps the time.
	if s.Timing.ActualStart == nil {
		s.Timing.ActualStart = &now
	}
	s.Status = StageStatusInProgress
	return nil
}

// Hold pauses an in-progress stage. Partial consumption and assignment
// costs are kept as-is.
func (s *ProductionStage) Hold(reason string) error {
	if s.Status != StageStatusInProgress {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot hold stage %d in %s status", s.StageNumber, s.Status))
	}
	s.Status = StageStatusOnHold
	s.HoldReason = reason
	return nil
}

// Resume returns a held stage to IN_PROGRESS
func (s *ProductionStage) Resume() error {
	if s.Status != StageStatusOnHold {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot resume stage %d in %s status", s.StageNumber, s.Status))
	}
	s.Status = StageStatusInProgress
	s.HoldReason = ""
	return nil
}

// RecordConsumption appends a consumption fact to an in-progress stage
func (s *ProductionStage) RecordConsumption(entry MaterialConsumption) error {
	if s.Status != StageStatusInProgress {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot record consumption on stage %d in %s status", s.StageNumber, s.Status))
	}
	if entry.ItemID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Consumption item ID cannot be empty")
	}
	if entry.Quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Consumption quantity must be positive")
	}
	if entry.WasteQuantity.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Waste quantity cannot be negative")
	}
	s.Consumption = append(s.Consumption, entry)
	return nil
}

// RecordCheckpoint appends a quality checkpoint result to an in-progress stage
func (s *ProductionStage) RecordCheckpoint(cp QualityCheckpoint) error {
	if s.Status != StageStatusInProgress {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot record checkpoint on stage %d in %s status", s.StageNumber, s.Status))
	}
	if cp.Parameter == "" {
		return shared.NewDomainError("INVALID_INPUT", "Checkpoint parameter cannot be empty")
	}
	switch cp.Result {
	case CheckResultPass, CheckResultFail, CheckResultRework:
	default:
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown checkpoint result %q", cp.Result))
	}
	s.Checkpoints = append(s.Checkpoints, cp)
	return nil
}

// SetFinalQuality records the terminal quality outcome of the stage
func (s *ProductionStage) SetFinalQuality(fq FinalQuality) error {
	if s.Status != StageStatusInProgress {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot set final quality on stage %d in %s status", s.StageNumber, s.Status))
	}
	if fq.Grade == "" {
		return shared.NewDomainError("INVALID_INPUT", "Quality grade cannot be empty")
	}
	if fq.ApprovedQuantity.IsNegative() || fq.RejectedQuantity.IsNegative() || fq.ReworkQuantity.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Final quality quantities cannot be negative")
	}
	s.Final = &fq
	return nil
}

// SetOutput records produced quantity and destination for the stage
func (s *ProductionStage) SetOutput(output StageOutput) error {
	if s.Status != StageStatusInProgress {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot set output on stage %d in %s status", s.StageNumber, s.Status))
	}
	if output.ProducedQuantity.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Produced quantity cannot be negative")
	}
	s.Output = output
	return nil
}

// SetOverheadCost assigns the overhead allocated to this stage
func (s *ProductionStage) SetOverheadCost(cost decimal.Decimal) error {
	if s.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot set overhead on stage %d in %s status", s.StageNumber, s.Status))
	}
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Overhead cost cannot be negative")
	}
	s.Costs.OverheadCost = cost
	return nil
}

// Complete finishes the stage. Requires produced output, and when quality
// checkpoints were recorded, a final quality record with a non-reject grade.
func (s *ProductionStage) Complete(now time.Time) error {
	if !s.Status.CanTransitionTo(StageStatusCompleted) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot complete stage %d in %s status", s.StageNumber, s.Status))
	}
	if !s.Output.ProducedQuantity.IsPositive() {
		return shared.NewDomainError("PRECONDITION_FAILED",
			fmt.Sprintf("Stage %d has no produced output", s.StageNumber))
	}
	if len(s.Checkpoints) > 0 {
		if s.Final == nil {
			return shared.NewDomainError("PRECONDITION_FAILED",
				fmt.Sprintf("Stage %d has quality checkpoints but no final quality record", s.StageNumber))
		}
		if s.Final.Grade == QualityGradeReject {
			return shared.NewDomainError("PRECONDITION_FAILED",
				fmt.Sprintf("Stage %d final quality is %s, reject it instead", s.StageNumber, QualityGradeReject))
		}
	}

	s.Status = StageStatusCompleted
	s.Timing.ActualEnd = &now
	s.computeCosts()
	return nil
}

// Reject fails the stage. Requires either a reject final grade or a failed
// checkpoint with no rework result. Material already consumed stays consumed:
// it is scrap accounting, nothing is returned to the ledger here.
func (s *ProductionStage) Reject(now time.Time) error {
	if !s.Status.CanTransitionTo(StageStatusRejected) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot reject stage %d in %s status", s.StageNumber, s.Status))
	}
	if !s.hasRejectCause() {
		return shared.NewDomainError("PRECONDITION_FAILED",
			fmt.Sprintf("Stage %d has no reject-grade final quality or unrecovered checkpoint failure", s.StageNumber))
	}

	s.Status = StageStatusRejected
	s.Timing.ActualEnd = &now
	// Scrap still cost money; the stage keeps its accrued costs.
	s.computeCosts()
	return nil
}

// Rework marks part of the produced output for rework. The stage moves to
// REWORK until the operator starts the next attempt; consumption counters
// are not reset, further consumption appends on the re-attempt.
func (s *ProductionStage) Rework(quantity decimal.Decimal) error {
	if s.Status != StageStatusInProgress {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot rework stage %d in %s status", s.StageNumber, s.Status))
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Rework quantity must be positive")
	}
	if quantity.GreaterThan(s.Output.ProducedQuantity) {
		return shared.NewDomainError("PRECONDITION_FAILED",
			fmt.Sprintf("Rework quantity exceeds produced quantity on stage %d", s.StageNumber))
	}
	s.ReworkQuantity = s.ReworkQuantity.Add(quantity)
	s.Status = StageStatusRework
	return nil
}

// hasRejectCause reports whether the quality records justify a rejection
func (s *ProductionStage) hasRejectCause() bool {
	if s.Final != nil && s.Final.Grade == QualityGradeReject {
		return true
	}
	failed := false
	for _, cp := range s.Checkpoints {
		switch cp.Result {
		case CheckResultFail:
			failed = true
		case CheckResultRework:
			// A rework path exists; failure alone no longer forces rejection.
			failed = false
		}
	}
	return failed
}

// MaterialCost sums the cost of all consumption entries, waste included
func (s *ProductionStage) MaterialCost() decimal.Decimal {
	total := decimal.Zero
	for _, c := range s.Consumption {
		total = total.Add(c.Cost())
	}
	return total
}

// LaborCost sums the cost of all worker assignments
func (s *ProductionStage) LaborCost() decimal.Decimal {
	total := decimal.Zero
	for _, w := range s.Workers {
		total = total.Add(w.Cost)
	}
	return total
}

// MachineCost sums the cost of all machine assignments
func (s *ProductionStage) MachineCost() decimal.Decimal {
	total := decimal.Zero
	for _, m := range s.Machines {
		total = total.Add(m.Cost)
	}
	return total
}

// JobWorkCost returns the subcontracting cost, zero when not job-worked
func (s *ProductionStage) JobWorkCost() decimal.Decimal {
	if s.JobWork == nil {
		return decimal.Zero
	}
	return s.JobWork.Cost
}

// computeCosts recomputes the stage cost leaves from the assignment and
// consumption records
func (s *ProductionStage) computeCosts() {
	s.Costs.MaterialCost = s.MaterialCost()
	s.Costs.LaborCost = s.LaborCost()
	s.Costs.MachineCost = s.MachineCost()
	s.Costs.JobWorkCost = s.JobWorkCost()
	s.Costs.TotalStageCost = s.Costs.MaterialCost.
		Add(s.Costs.LaborCost).
		Add(s.Costs.MachineCost).
		Add(s.Costs.OverheadCost).
		Add(s.Costs.JobWorkCost)
}

// IsDelayed reports whether the stage missed its planned end
func (s *ProductionStage) IsDelayed(now time.Time) bool {
	if s.Timing.PlannedEnd == nil {
		return false
	}
	if s.Timing.ActualEnd != nil {
		return s.Timing.ActualEnd.After(*s.Timing.PlannedEnd)
	}
	return !s.Status.IsTerminal() && now.After(*s.Timing.PlannedEnd)
}
