package production

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// recalculate recomputes every derived order-level field purely from stage
// data. It runs after each mutation; previously stored rollup values are
// never trusted as inputs, with the single documented exception of
// CostPerUnit when nothing has been completed yet.
func (o *ProductionOrder) recalculate() {
	o.CompletedQuantity = o.completedFromStages()
	o.RejectedQuantity = o.rejectedFromStages()

	pending := o.OrderQuantity.Sub(o.CompletedQuantity).Sub(o.RejectedQuantity)
	if pending.IsNegative() {
		pending = decimal.Zero
	}
	o.PendingQuantity = pending

	o.CostSummary = o.computeCostSummary(o.CostSummary.CostPerUnit)
	o.QualitySummary = o.computeQualitySummary()
	o.deriveStatus()
}

// completedFromStages derives the order's completed quantity. Output only
// counts once it has passed the whole workflow, so the final stage is the
// source: its produced quantity less whatever its final quality rejected.
func (o *ProductionOrder) completedFromStages() decimal.Decimal {
	if len(o.Stages) == 0 {
		return decimal.Zero
	}
	final := &o.Stages[0]
	for idx := range o.Stages {
		if o.Stages[idx].StageNumber > final.StageNumber {
			final = &o.Stages[idx]
		}
	}
	if final.Status != StageStatusCompleted {
		return decimal.Zero
	}
	completed := final.Output.ProducedQuantity
	if final.Final != nil {
		completed = completed.Sub(final.Final.RejectedQuantity)
	}
	if completed.IsNegative() {
		return decimal.Zero
	}
	return completed
}

// rejectedFromStages sums what each stage scrapped: the final quality's
// rejected quantity when one was recorded, otherwise the whole produced
// quantity of a rejected stage.
func (o *ProductionOrder) rejectedFromStages() decimal.Decimal {
	total := decimal.Zero
	for idx := range o.Stages {
		stage := &o.Stages[idx]
		switch {
		case stage.Status == StageStatusRejected:
			// The whole output of a rejected stage is scrap.
			scrapped := stage.Output.ProducedQuantity
			if scrapped.IsZero() && stage.Final != nil {
				scrapped = stage.Final.RejectedQuantity
			}
			total = total.Add(scrapped)
		case stage.Status == StageStatusCompleted && stage.Final != nil:
			total = total.Add(stage.Final.RejectedQuantity)
		}
	}
	return total
}

// computeCostSummary sums the stage cost leaves. CostPerUnit keeps its
// previous value instead of dividing by zero while nothing is completed.
func (o *ProductionOrder) computeCostSummary(previousCostPerUnit decimal.Decimal) CostSummary {
	summary := CostSummary{
		MaterialCost: decimal.Zero,
		LaborCost:    decimal.Zero,
		MachineCost:  decimal.Zero,
		OverheadCost: decimal.Zero,
		JobWorkCost:  decimal.Zero,
		CostPerUnit:  previousCostPerUnit,
	}
	for idx := range o.Stages {
		costs := o.Stages[idx].Costs
		summary.MaterialCost = summary.MaterialCost.Add(costs.MaterialCost)
		summary.LaborCost = summary.LaborCost.Add(costs.LaborCost)
		summary.MachineCost = summary.MachineCost.Add(costs.MachineCost)
		summary.OverheadCost = summary.OverheadCost.Add(costs.OverheadCost)
		summary.JobWorkCost = summary.JobWorkCost.Add(costs.JobWorkCost)
	}
	summary.TotalProductionCost = summary.MaterialCost.
		Add(summary.LaborCost).
		Add(summary.MachineCost).
		Add(summary.OverheadCost).
		Add(summary.JobWorkCost)

	if o.CompletedQuantity.IsPositive() {
		summary.CostPerUnit = summary.TotalProductionCost.Div(o.CompletedQuantity)
	}
	return summary
}

// computeQualitySummary sums quality totals over stages that carry a final
// quality record. Rates are zero, never NaN, while nothing was produced.
func (o *ProductionOrder) computeQualitySummary() QualitySummary {
	summary := QualitySummary{
		TotalProduced:  decimal.Zero,
		TotalApproved:  decimal.Zero,
		TotalRejected:  decimal.Zero,
		TotalRework:    decimal.Zero,
		DefectRate:     decimal.Zero,
		FirstPassYield: decimal.Zero,
	}
	for idx := range o.Stages {
		stage := &o.Stages[idx]
		if stage.Final == nil {
			continue
		}
		summary.TotalProduced = summary.TotalProduced.Add(stage.Output.ProducedQuantity)
		summary.TotalApproved = summary.TotalApproved.Add(stage.Final.ApprovedQuantity)
		summary.TotalRejected = summary.TotalRejected.Add(stage.Final.RejectedQuantity)
		summary.TotalRework = summary.TotalRework.Add(stage.Final.ReworkQuantity)
	}
	if summary.TotalProduced.IsPositive() {
		summary.DefectRate = summary.TotalRejected.Div(summary.TotalProduced).Mul(hundred)
		summary.FirstPassYield = summary.TotalProduced.Sub(summary.TotalRework).
			Div(summary.TotalProduced).Mul(hundred)
	}
	return summary
}

// deriveStatus infers the order status from stage state. Cancelled and
// on-hold are operator-set and never overwritten here; draft and approved
// persist until a stage actually moves.
func (o *ProductionOrder) deriveStatus() {
	switch o.Status {
	case OrderStatusCancelled, OrderStatusOnHold, OrderStatusDraft:
		return
	}

	anyLeftPending := false
	for idx := range o.Stages {
		if o.Stages[idx].Status != StageStatusPending {
			anyLeftPending = true
			break
		}
	}
	if !anyLeftPending {
		o.Status = OrderStatusApproved
		return
	}

	if o.allStagesTerminal() {
		// Rejected output never counts towards completion: an order whose
		// quantity was scrapped ends partially completed, not completed.
		if o.PendingQuantity.IsZero() && o.CompletedQuantity.GreaterThanOrEqual(o.OrderQuantity) {
			o.Status = OrderStatusCompleted
		} else {
			o.Status = OrderStatusPartiallyCompleted
		}
		return
	}

	o.Status = OrderStatusInProgress
}
