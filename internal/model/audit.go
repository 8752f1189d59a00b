package model

import (
	"github.com/google/uuid"
)

const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
	ActionCopy   = "COPY"
)

// AuditLog tracks who changed what and when for mutating operations
type AuditLog struct {
	Base
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // nil for unattributed system actions
	User       *User      `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	Action     string     `gorm:"type:varchar(20);not null;index" json:"action"`
	Entity     string     `gorm:"type:varchar(50);not null;index" json:"entity"`  // "products", "entrees", ...
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // uuid of the affected row
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // human readable label
}
