package authz

import (
	"context"
	"testing"
	"time"

	"commerce/internal/model"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupResolverDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Role{}, &model.Permission{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUserWithPermission(t *testing.T, db *gorm.DB, permCode string) *model.User {
	t.Helper()
	perm := model.Permission{Code: permCode, Guard: model.DefaultGuard, Name: permCode, Group: "test"}
	if err := db.Create(&perm).Error; err != nil {
		t.Fatalf("perm: %v", err)
	}
	role := model.Role{Name: "tester", Guard: model.DefaultGuard, Permissions: []model.Permission{perm}}
	if err := db.Create(&role).Error; err != nil {
		t.Fatalf("role: %v", err)
	}
	user := model.User{Name: "Alice", Email: "alice@example.com", Password: "x", Roles: []model.Role{role}}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	return &user
}

func TestDBResolverBuildsSnapshot(t *testing.T) {
	db := setupResolverDB(t)
	user := seedUserWithPermission(t, db, string(PermBrandsRead))

	snapshot, err := NewDBResolver(db).Resolve(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !snapshot.HasPermission(PermBrandsRead) {
		t.Error("resolved snapshot missing granted permission")
	}
	if !snapshot.HasRole("tester") {
		t.Error("resolved snapshot missing role")
	}
	if snapshot.HasPermission(PermBrandsDelete) {
		t.Error("resolved snapshot granted unheld permission")
	}
}

func TestDBResolverUnknownUser(t *testing.T) {
	db := setupResolverDB(t)

	if _, err := NewDBResolver(db).Resolve(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error for unknown user")
	}
}

// A permission grant becomes visible once the cached snapshot is evicted,
// without waiting for the TTL.
func TestCachedResolverInvalidate(t *testing.T) {
	db := setupResolverDB(t)
	user := seedUserWithPermission(t, db, string(PermBrandsRead))
	ctx := context.Background()

	resolver := NewCachedResolver(NewDBResolver(db), time.Hour)

	before, err := resolver.Resolve(ctx, user.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if before.HasPermission(PermBrandsDelete) {
		t.Fatal("permission granted before the grant")
	}

	// grant brands.delete through the user's role
	perm := model.Permission{Code: string(PermBrandsDelete), Guard: model.DefaultGuard, Name: "x", Group: "test"}
	if err := db.Create(&perm).Error; err != nil {
		t.Fatalf("perm: %v", err)
	}
	var role model.Role
	if err := db.First(&role, "name = ?", "tester").Error; err != nil {
		t.Fatalf("role: %v", err)
	}
	if err := db.Model(&role).Association("Permissions").Append(&perm); err != nil {
		t.Fatalf("append: %v", err)
	}

	// still served from cache
	cached, err := resolver.Resolve(ctx, user.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cached.HasPermission(PermBrandsDelete) {
		t.Fatal("cache returned a fresh snapshot before invalidation")
	}

	resolver.Invalidate(user.ID)

	after, err := resolver.Resolve(ctx, user.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !after.HasPermission(PermBrandsDelete) {
		t.Error("grant not visible after invalidation")
	}
}

func TestCachedResolverInvalidateAll(t *testing.T) {
	db := setupResolverDB(t)
	user := seedUserWithPermission(t, db, string(PermBrandsRead))
	ctx := context.Background()

	resolver := NewCachedResolver(NewDBResolver(db), time.Hour)
	if _, err := resolver.Resolve(ctx, user.ID); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	// revoke everything by clearing the role's permissions
	var role model.Role
	if err := db.First(&role, "name = ?", "tester").Error; err != nil {
		t.Fatalf("role: %v", err)
	}
	if err := db.Model(&role).Association("Permissions").Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	resolver.InvalidateAll()

	after, err := resolver.Resolve(ctx, user.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if after.HasPermission(PermBrandsRead) {
		t.Error("revocation not visible after InvalidateAll")
	}
}
