package service

import (
	"context"
	"errors"
	"testing"

	"commerce/internal/apperror"
	"commerce/internal/authz"
	"commerce/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRoleService(t *testing.T, db *gorm.DB) RoleService {
	t.Helper()
	return NewRoleService(repository.NewRoleRepository(db), repository.NewTransactionManager(db), nil)
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	roles := newRoleService(t, db)
	ctx := context.Background()

	require.NoError(t, roles.SeedDefaults(ctx))
	require.NoError(t, roles.SeedDefaults(ctx))

	all, err := roles.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	perms, err := roles.ListPermissions(ctx)
	require.NoError(t, err)
	assert.Len(t, perms, len(authz.AllPermissions()))
}

func TestAdminRoleHoldsEveryPermission(t *testing.T) {
	db := setupTestDB(t)
	roles := newRoleService(t, db)
	ctx := context.Background()

	require.NoError(t, roles.SeedDefaults(ctx))

	all, err := roles.List(ctx)
	require.NoError(t, err)
	for _, role := range all {
		if role.Name == "admin" {
			assert.Len(t, role.Permissions, len(authz.AllPermissions()))
			assert.True(t, role.IsSystem)
			return
		}
	}
	t.Fatal("admin role not seeded")
}

func TestSystemRoleCannotBeDeleted(t *testing.T) {
	db := setupTestDB(t)
	roles := newRoleService(t, db)
	ctx := context.Background()

	require.NoError(t, roles.SeedDefaults(ctx))

	all, err := roles.List(ctx)
	require.NoError(t, err)

	err = roles.Delete(ctx, all[0].ID)
	_, ok := apperror.AsValidation(err)
	assert.True(t, ok, "expected validation error, got %v", err)
}

func TestRoleNameMustBeUnique(t *testing.T) {
	db := setupTestDB(t)
	roles := newRoleService(t, db)
	ctx := context.Background()

	_, err := roles.Create(ctx, RoleRequest{Name: "magasinier"})
	require.NoError(t, err)

	_, err = roles.Create(ctx, RoleRequest{Name: "magasinier"})
	ve, ok := apperror.AsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.NotEmpty(t, ve.Fields["name"])
}

func TestRoleCreateWithPermissions(t *testing.T) {
	db := setupTestDB(t)
	roles := newRoleService(t, db)
	ctx := context.Background()

	require.NoError(t, roles.SeedDefaults(ctx))
	perms, err := roles.ListPermissions(ctx)
	require.NoError(t, err)

	role, err := roles.Create(ctx, RoleRequest{
		Name:          "magasinier",
		Description:   "Stock only",
		PermissionIDs: []string{perms[0].ID.String(), perms[1].ID.String()},
	})
	require.NoError(t, err)
	assert.Len(t, role.Permissions, 2)
	assert.False(t, role.IsSystem)
}

func TestRoleDeleteRemovesIt(t *testing.T) {
	db := setupTestDB(t)
	roles := newRoleService(t, db)
	ctx := context.Background()

	role, err := roles.Create(ctx, RoleRequest{Name: "temp"})
	require.NoError(t, err)

	require.NoError(t, roles.Delete(ctx, role.ID))

	_, err = roles.Get(ctx, role.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
