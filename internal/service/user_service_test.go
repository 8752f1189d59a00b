package service

import (
	"context"
	"testing"

	"commerce/internal/apperror"
	"commerce/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserFixture(t *testing.T, db *gorm.DB) (UserService, RoleService) {
	t.Helper()
	roleRepo := repository.NewRoleRepository(db)
	txMgr := repository.NewTransactionManager(db)
	users := NewUserService(repository.NewUserRepository(db), roleRepo, txMgr, nil, []byte("test_secret"))
	roles := NewRoleService(roleRepo, txMgr, nil)
	return users, roles
}

func TestUserCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	users, _ := newUserFixture(t, db)

	_, err := users.Create(context.Background(), CreateUserRequest{
		Name:     "",
		Email:    "not-an-email",
		Password: "short",
	})
	ve, ok := apperror.AsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.NotEmpty(t, ve.Fields["name"])
	assert.NotEmpty(t, ve.Fields["email"])
	assert.NotEmpty(t, ve.Fields["password"])
}

func TestUserEmailMustBeUnique(t *testing.T) {
	db := setupTestDB(t)
	users, _ := newUserFixture(t, db)
	ctx := context.Background()

	_, err := users.Create(ctx, CreateUserRequest{Name: "Alice", Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = users.Create(ctx, CreateUserRequest{Name: "Bob", Email: "Alice@Example.com", Password: "password123"})
	ve, ok := apperror.AsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.NotEmpty(t, ve.Fields["email"])
}

func TestLoginAndRefreshFlow(t *testing.T) {
	db := setupTestDB(t)
	users, _ := newUserFixture(t, db)
	ctx := context.Background()

	_, err := users.Create(ctx, CreateUserRequest{Name: "Alice", Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	user, pair, err := users.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	// rotation: the new pair works, the consumed token does not
	next, err := users.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	_, err = users.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	users, _ := newUserFixture(t, db)
	ctx := context.Background()

	_, err := users.Create(ctx, CreateUserRequest{Name: "Alice", Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	_, _, err = users.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = users.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserRoleAssignment(t *testing.T) {
	db := setupTestDB(t)
	users, roles := newUserFixture(t, db)
	ctx := context.Background()

	require.NoError(t, roles.SeedDefaults(ctx))
	vendeur, err := repository.NewRoleRepository(db).FindByName(ctx, "vendeur")
	require.NoError(t, err)

	user, err := users.Create(ctx, CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
		RoleIDs:  []string{vendeur.ID.String()},
	})
	require.NoError(t, err)
	require.Len(t, user.Roles, 1)
	assert.Equal(t, "vendeur", user.Roles[0].Name)

	// replace with no roles
	empty := []string{}
	updated, err := users.Update(ctx, user.ID, UpdateUserRequest{RoleIDs: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.Roles)
}

func TestSeedAdmin(t *testing.T) {
	db := setupTestDB(t)
	users, roles := newUserFixture(t, db)
	ctx := context.Background()

	require.NoError(t, roles.SeedDefaults(ctx))
	require.NoError(t, users.SeedAdmin(ctx, "admin@example.com", "changeme123"))
	// second run is a no-op
	require.NoError(t, users.SeedAdmin(ctx, "admin@example.com", "changeme123"))

	user, pair, err := users.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "changeme123"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	full, err := users.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, full.Roles, 1)
	assert.Equal(t, "admin", full.Roles[0].Name)
}
