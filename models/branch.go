package models

import "time"

type Branch struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:120" json:"name"`
	Code        string    `gorm:"uniqueIndex;size:10" json:"code"`
	Address     string    `gorm:"size:255" json:"address"`
	IsWarehouse bool      `gorm:"default:false" json:"is_warehouse"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
