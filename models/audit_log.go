package models

import "time"

// AuditLog is append-only. Rows are never updated or deleted.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	UserName  string    `gorm:"size:180" json:"user_name"`
	Action    string    `gorm:"size:20" json:"action"`
	Module    string    `gorm:"size:40;index" json:"module"`
	Details   string    `gorm:"size:255" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	CreatedAt time.Time `json:"timestamp"`
}
