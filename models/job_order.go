package models

import (
	"math"
	"time"
)

// Job order lifecycle. completed, voided and cancelled are terminal, though the
// generic update endpoint deliberately does not police transitions out of them.
const (
	OrderPending    = "pending"
	OrderInProgress = "in_progress"
	OrderCompleted  = "completed"
	OrderVoided     = "voided"
	OrderCancelled  = "cancelled"
)

const (
	PaymentUnpaid  = "unpaid"
	PaymentPartial = "partial"
	PaymentPaid    = "paid"
)

// OverheadRate is the fixed surcharge applied to material cost in costing
// reports. Policy constant, not configurable.
const OverheadRate = 0.10

// VoidGraceDays is how long an order must sit unclaimed before it can be voided.
const VoidGraceDays = 60

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderInProgress, OrderCompleted, OrderVoided, OrderCancelled:
		return true
	}
	return false
}

type JobOrder struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	OrderNo             string         `gorm:"uniqueIndex;size:30" json:"job_order_no"`
	CustomerID          *uint          `json:"customer_id"`
	CustomerName        string         `gorm:"size:180" json:"customer_name"`
	CustomerPhone       string         `gorm:"size:60" json:"customer_phone"`
	CustomerEmail       string         `gorm:"size:180" json:"customer_email"`
	BranchID            uint           `gorm:"index" json:"branch_id"`
	Branch              Branch         `json:"branch"`
	Description         string         `gorm:"size:500" json:"description"`
	VehicleMake         string         `gorm:"size:60" json:"vehicle_make"`
	VehicleModel        string         `gorm:"size:60" json:"vehicle_model"`
	VehicleYear         int            `json:"vehicle_year"`
	VehiclePlate        string         `gorm:"size:20" json:"vehicle_plate"`
	Items               []JobOrderItem `json:"items"`
	TotalPrice          float64        `json:"total_price"`
	EstimatedCost       float64        `json:"estimated_cost"`
	ActualCost          float64        `json:"actual_cost"`
	Status              string         `gorm:"size:20;index" json:"status"`
	PaymentStatus       string         `gorm:"size:10" json:"payment_status"`
	DownPayment         float64        `json:"down_payment"`
	Balance             float64        `json:"balance"`
	Notes               string         `gorm:"size:500" json:"notes"`
	EstimatedCompletion time.Time      `json:"estimated_completion"`
	CompletedAt         *time.Time     `json:"completed_at"`
	VoidedAt            *time.Time     `json:"voided_at"`
	CreatedByID         uint           `json:"created_by_id"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

type JobOrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	JobOrderID   uint    `gorm:"index" json:"job_order_id"`
	Name         string  `gorm:"size:180" json:"name"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	MaterialCost float64 `json:"material_cost"`
	LaborCost    float64 `json:"labor_cost"`
}

// OrderTotals derives the price and cost invariants from a line-item list:
// totalPrice = Σ(qty × unitPrice), estimatedCost = Σ(qty × (material + labor)).
func OrderTotals(items []JobOrderItem) (totalPrice, estimatedCost float64) {
	for _, it := range items {
		qty := float64(it.Quantity)
		totalPrice += qty * it.UnitPrice
		estimatedCost += qty * (it.MaterialCost + it.LaborCost)
	}
	return totalPrice, estimatedCost
}

// PaymentStatusFor derives the three-way payment state from down payment vs
// total. Overpayment is rejected upstream, so downPayment never exceeds total.
func PaymentStatusFor(downPayment, totalPrice float64) string {
	switch {
	case totalPrice > 0 && downPayment >= totalPrice:
		return PaymentPaid
	case downPayment > 0:
		return PaymentPartial
	default:
		return PaymentUnpaid
	}
}

// ApplyPayment recomputes balance and payment status from the stored total.
// Balance is never persisted independently of this relationship.
func (o *JobOrder) ApplyPayment(downPayment float64) {
	o.DownPayment = downPayment
	o.Balance = o.TotalPrice - downPayment
	o.PaymentStatus = PaymentStatusFor(downPayment, o.TotalPrice)
}

type Costing struct {
	JobOrderNo    string         `json:"job_order_no"`
	Items         []JobOrderItem `json:"items"`
	EstimatedCost float64        `json:"estimated_cost"`
	ActualCost    float64        `json:"actual_cost"`
	MaterialCost  float64        `json:"material_cost"`
	LaborCost     float64        `json:"labor_cost"`
	OverheadCost  float64        `json:"overhead_cost"`
	TotalCost     float64        `json:"total_cost"`
	TotalPrice    float64        `json:"total_price"`
	GrossProfit   float64        `json:"gross_profit"`
	ProfitMargin  float64        `json:"profit_margin"`
	Variance      float64        `json:"variance"`
}

// CostingReport recomputes the full cost breakdown from stored fields on every
// call. Nothing here is cached.
func (o *JobOrder) CostingReport() Costing {
	var materialCost, laborCost float64
	for _, it := range o.Items {
		qty := float64(it.Quantity)
		materialCost += it.MaterialCost * qty
		laborCost += it.LaborCost * qty
	}
	overhead := materialCost * OverheadRate
	totalCost := materialCost + laborCost + overhead

	grossProfit := o.TotalPrice - totalCost
	margin := 0.0
	if o.TotalPrice > 0 {
		margin = grossProfit / o.TotalPrice * 100
	}
	variance := 0.0
	if o.ActualCost > 0 {
		variance = o.ActualCost - o.EstimatedCost
	}

	return Costing{
		JobOrderNo:    o.OrderNo,
		Items:         o.Items,
		EstimatedCost: o.EstimatedCost,
		ActualCost:    o.ActualCost,
		MaterialCost:  round2(materialCost),
		LaborCost:     round2(laborCost),
		OverheadCost:  round2(overhead),
		TotalCost:     round2(totalCost),
		TotalPrice:    o.TotalPrice,
		GrossProfit:   round2(grossProfit),
		ProfitMargin:  round2(margin),
		Variance:      round2(variance),
	}
}

// VarianceStatus classifies actual-vs-estimate by sign.
func VarianceStatus(variance float64) string {
	switch {
	case variance > 0:
		return "over"
	case variance < 0:
		return "under"
	default:
		return "on_target"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
