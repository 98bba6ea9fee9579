package utils

import (
	"gorm.io/gorm"

	"github.com/Rian448/SMAve-System/models"
)

// LogAction appends an audit trail entry. Pass the enclosing transaction when
// the mutation runs in one so the entry commits or rolls back with it.
func LogAction(db *gorm.DB, actor *models.User, action, module, details, ip string) error {
	entry := models.AuditLog{
		Action:    action,
		Module:    module,
		Details:   details,
		IPAddress: ip,
	}
	if actor != nil {
		entry.UserID = actor.ID
		entry.UserName = actor.FullName
	}
	return db.Create(&entry).Error
}
