package models

import "time"

const (
	DeliveryBranchRestock    = "branch_restock"
	DeliveryCustomerDelivery = "customer_delivery"
)

// Delivery status. delivered and cancelled are terminal; transitions are
// otherwise unrestricted (forward-only is not enforced).
const (
	DeliveryScheduled = "scheduled"
	DeliveryInTransit = "in_transit"
	DeliveryDelivered = "delivered"
	DeliveryCancelled = "cancelled"
)

func ValidDeliveryStatus(s string) bool {
	switch s {
	case DeliveryScheduled, DeliveryInTransit, DeliveryDelivered, DeliveryCancelled:
		return true
	}
	return false
}

type Delivery struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	DeliveryNo       string         `gorm:"uniqueIndex;size:30" json:"delivery_no"`
	Type             string         `gorm:"size:20;index" json:"type"`
	FromBranchID     uint           `json:"from_branch_id"`
	FromBranch       Branch         `gorm:"foreignKey:FromBranchID" json:"from_branch"`
	ToBranchID       *uint          `json:"to_branch_id"`
	CustomerName     string         `gorm:"size:180" json:"customer_name"`
	CustomerAddress  string         `gorm:"size:255" json:"customer_address"`
	CustomerPhone    string         `gorm:"size:60" json:"customer_phone"`
	JobOrderID       *uint          `json:"job_order_id"`
	JobOrderNo       string         `gorm:"size:30" json:"job_order_no"`
	Items            []DeliveryItem `json:"items"`
	Status           string         `gorm:"size:12;index" json:"status"`
	ScheduledDate    time.Time      `json:"scheduled_date"`
	EstimatedArrival string         `gorm:"size:40" json:"estimated_arrival"`
	DeliveredAt      *time.Time     `json:"delivered_at"`
	DriverName       string         `gorm:"size:120" json:"driver_name"`
	DriverContact    string         `gorm:"size:60" json:"driver_contact"`
	VehiclePlate     string         `gorm:"size:20" json:"vehicle_plate"`
	Notes            string         `gorm:"size:500" json:"notes"`
	CreatedByID      uint           `json:"created_by_id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type DeliveryItem struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	DeliveryID uint   `gorm:"index" json:"delivery_id"`
	Name       string `gorm:"size:180" json:"name"`
	Quantity   int    `json:"quantity"`
	Unit       string `gorm:"size:30" json:"unit"`
}
