package services

import (
	"go-inventory-admin/internal/models"

	"gorm.io/gorm"
)

// Actor identifies the operator performing an action, for audit records.
type Actor struct {
	ID   uint
	Name string
}

// LogActivity appends one audit trail entry. Pass the transaction handle
// when the append must commit atomically with other writes.
func LogActivity(db *gorm.DB, actor Actor, action, entity, details string) error {
	entry := models.ActivityLog{
		UserID:  actor.ID,
		Action:  action,
		Entity:  entity,
		Details: details,
	}
	return db.Create(&entry).Error
}
