package models

import "time"

// VoidRecord is written once when a job order is voided after the unclaimed
// grace period.
type VoidRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Type         string    `gorm:"size:20" json:"type"`
	OriginalID   uint      `gorm:"index" json:"original_id"`
	JobOrderNo   string    `gorm:"size:30" json:"job_order_no"`
	CustomerName string    `gorm:"size:180" json:"customer_name"`
	VoidedAt     time.Time `json:"voided_at"`
	Reason       string    `gorm:"size:255" json:"reason"`
}
