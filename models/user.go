package models

import "time"

const (
	RoleAdministrator = "administrator"
	RoleSupervisor    = "supervisor"
	RoleSalesManager  = "sales_manager"
	RoleStaff         = "staff"
)

// ValidRole reports whether role is one of the four known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdministrator, RoleSupervisor, RoleSalesManager, RoleStaff:
		return true
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:120" json:"username"`
	PasswordHash string    `gorm:"size:255" json:"-"` // never sent to clients
	Email        string    `gorm:"size:180" json:"email"`
	FullName     string    `gorm:"size:180" json:"full_name"`
	Role         string    `gorm:"size:30;index" json:"role"`
	BranchID     uint      `json:"branch_id"`
	Branch       Branch    `json:"branch"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
