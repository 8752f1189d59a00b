package repository

import (
	"context"

	"commerce/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoleRepository interface {
	Create(ctx context.Context, role *model.Role) error
	Save(ctx context.Context, role *model.Role) error
	Delete(ctx context.Context, role *model.Role) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Role, error)
	FindByIDWithPermissions(ctx context.Context, id uuid.UUID) (*model.Role, error)
	FindByName(ctx context.Context, name string) (*model.Role, error)
	ListAll(ctx context.Context) ([]model.Role, error)
	ListPermissions(ctx context.Context) ([]model.Permission, error)
	ReplacePermissions(ctx context.Context, role *model.Role, perms []model.Permission) error
	FindPermissionsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Permission, error)
	FindOrCreatePermission(ctx context.Context, perm *model.Permission) error
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) Create(ctx context.Context, role *model.Role) error {
	return translate(GetDB(ctx, r.db).Create(role).Error)
}

func (r *roleRepository) Save(ctx context.Context, role *model.Role) error {
	return translate(GetDB(ctx, r.db).Save(role).Error)
}

// Delete clears the role's permission and user associations before removing
// the row so no orphan join entries remain.
func (r *roleRepository) Delete(ctx context.Context, role *model.Role) error {
	db := GetDB(ctx, r.db)
	if err := db.Model(role).Association("Permissions").Clear(); err != nil {
		return translate(err)
	}
	if err := db.Model(role).Association("Users").Clear(); err != nil {
		return translate(err)
	}
	return translate(db.Delete(role).Error)
}

func (r *roleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Role, error) {
	var role model.Role
	if err := GetDB(ctx, r.db).First(&role, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

func (r *roleRepository) FindByIDWithPermissions(ctx context.Context, id uuid.UUID) (*model.Role, error) {
	var role model.Role
	if err := GetDB(ctx, r.db).Preload("Permissions").First(&role, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

func (r *roleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	err := GetDB(ctx, r.db).Where("name = ? AND guard = ?", name, model.DefaultGuard).First(&role).Error
	if err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

func (r *roleRepository) ListAll(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	if err := GetDB(ctx, r.db).Preload("Permissions").Order("name ASC").Find(&roles).Error; err != nil {
		return nil, translate(err)
	}
	return roles, nil
}

func (r *roleRepository) ListPermissions(ctx context.Context) ([]model.Permission, error) {
	var perms []model.Permission
	if err := GetDB(ctx, r.db).Order("\"group\" ASC, code ASC").Find(&perms).Error; err != nil {
		return nil, translate(err)
	}
	return perms, nil
}

func (r *roleRepository) ReplacePermissions(ctx context.Context, role *model.Role, perms []model.Permission) error {
	return translate(GetDB(ctx, r.db).Model(role).Association("Permissions").Replace(perms))
}

func (r *roleRepository) FindPermissionsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Permission, error) {
	var perms []model.Permission
	if err := GetDB(ctx, r.db).Where("id IN ?", ids).Find(&perms).Error; err != nil {
		return nil, translate(err)
	}
	return perms, nil
}

func (r *roleRepository) FindOrCreatePermission(ctx context.Context, perm *model.Permission) error {
	return translate(GetDB(ctx, r.db).
		Where("code = ? AND guard = ?", perm.Code, perm.Guard).
		FirstOrCreate(perm).Error)
}
