package models

import "time"

// LineupSlip is the shop-floor work breakdown for a single job order. Customer
// and order numbers are denormalized so slips stay printable on their own.
type LineupSlip struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	SlipNo       string           `gorm:"uniqueIndex;size:30" json:"slip_no"`
	JobOrderID   uint             `gorm:"index" json:"job_order_id"`
	JobOrderNo   string           `gorm:"size:30" json:"job_order_no"`
	CustomerName string           `gorm:"size:180" json:"customer_name"`
	BranchID     uint             `gorm:"index" json:"branch_id"`
	Items        []LineupSlipItem `json:"items"`
	Priority     string           `gorm:"size:20;default:normal" json:"priority"`
	AssignedTo   string           `gorm:"size:120" json:"assigned_to"`
	Notes        string           `gorm:"size:500" json:"notes"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type LineupSlipItem struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	LineupSlipID uint   `gorm:"index" json:"lineup_slip_id"`
	Description  string `gorm:"size:180" json:"description"`
	Status       string `gorm:"size:20;default:pending" json:"status"`
}
