package models

import "time"

type RawMaterial struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:180" json:"name"`
	SKU          string    `gorm:"column:sku;uniqueIndex;size:40" json:"sku"`
	Quantity     int       `json:"quantity"`
	Unit         string    `gorm:"size:30" json:"unit"`
	Category     string    `gorm:"size:60;index" json:"category"`
	Price        float64   `json:"price"`
	ReorderPoint int       `json:"reorder_point"`
	Supplier     string    `gorm:"size:120" json:"supplier"`
	BranchID     uint      `gorm:"index" json:"branch_id"`
	Branch       Branch    `json:"branch"`
	IsArchived   bool      `gorm:"default:false;index" json:"is_archived"`
	LastUpdated  time.Time `json:"last_updated"`
}

// LowStock is the reorder predicate: at or below the reorder point and not
// archived. It is derived, never stored.
func (m *RawMaterial) LowStock() bool {
	return m.Quantity <= m.ReorderPoint && !m.IsArchived
}
