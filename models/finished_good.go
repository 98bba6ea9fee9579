package models

import "time"

type FinishedGood struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:180" json:"name"`
	SKU         string    `gorm:"column:sku;uniqueIndex;size:40" json:"sku"`
	Quantity    int       `json:"quantity"`
	Unit        string    `gorm:"size:30" json:"unit"`
	Category    string    `gorm:"size:60;index" json:"category"`
	Price       float64   `json:"price"`
	Cost        float64   `json:"cost"`
	BranchID    uint      `gorm:"index" json:"branch_id"`
	Branch      Branch    `json:"branch"`
	IsArchived  bool      `gorm:"default:false;index" json:"is_archived"`
	LastUpdated time.Time `json:"last_updated"`
}
