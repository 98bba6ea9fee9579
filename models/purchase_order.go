package models

import "time"

// Purchase order workflow: pending → approved → received, or rejected.
// received and rejected are terminal.
const (
	POPending  = "pending"
	POApproved = "approved"
	POReceived = "received"
	PORejected = "rejected"
)

type PurchaseOrder struct {
	ID               uint                `gorm:"primaryKey" json:"id"`
	PONo             string              `gorm:"column:po_no;uniqueIndex;size:30" json:"po_no"`
	SupplierID       *uint               `json:"supplier_id"`
	SupplierName     string              `gorm:"size:120" json:"supplier_name"`
	Items            []PurchaseOrderItem `json:"items"`
	TotalAmount      float64             `json:"total_amount"`
	Status           string              `gorm:"size:12;index" json:"status"`
	ExpectedDelivery time.Time           `json:"expected_delivery"`
	CreatedByID      uint                `json:"created_by_id"`
	ApprovedByID     *uint               `json:"approved_by_id"`
	ApprovedAt       *time.Time          `json:"approved_at"`
	ReceivedByID     *uint               `json:"received_by_id"`
	ReceivedAt       *time.Time          `json:"received_at"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

type PurchaseOrderItem struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	PurchaseOrderID uint    `gorm:"index" json:"purchase_order_id"`
	MaterialID      *uint   `json:"material_id"`
	Name            string  `gorm:"size:180" json:"name"`
	Quantity        int     `json:"quantity"`
	Unit            string  `gorm:"size:30" json:"unit"`
	UnitPrice       float64 `json:"unit_price"`
	LineTotal       float64 `json:"line_total"`
}
