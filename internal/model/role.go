package model

// DefaultGuard is the guard every role and permission belongs to unless
// stated otherwise. Role and permission names are unique per guard.
const DefaultGuard = "web"

// Role represents a named bundle of permissions assignable to users
type Role struct {
	Base
	Name        string       `gorm:"type:varchar(50);not null;uniqueIndex:idx_roles_name_guard" json:"name"`
	Guard       string       `gorm:"type:varchar(20);not null;default:'web';uniqueIndex:idx_roles_name_guard" json:"guard"`
	Description string       `gorm:"type:text" json:"description"`
	IsSystem    bool         `gorm:"default:false" json:"is_system"` // Prevent deletion of built-in roles
	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions"`
	Users       []User       `gorm:"many2many:user_roles;" json:"-"`
}

// Permission represents a single grantable capability, e.g. "products.delete"
type Permission struct {
	Base
	Code  string `gorm:"type:varchar(100);not null;uniqueIndex:idx_permissions_code_guard" json:"code"`
	Guard string `gorm:"type:varchar(20);not null;default:'web';uniqueIndex:idx_permissions_code_guard" json:"guard"`
	Name  string `gorm:"type:varchar(255);not null" json:"name"`
	Group string `gorm:"type:varchar(50);not null;index" json:"group"` // "products", "clients", "roles"...
}
