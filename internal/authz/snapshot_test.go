package authz

import (
	"testing"

	"github.com/google/uuid"
)

func TestSnapshotPredicates(t *testing.T) {
	s := NewSnapshot(uuid.New(), []string{"vendeur"}, []Permission{PermBrandsRead, PermClientsRead, PermClientsCreate})

	if !s.HasPermission(PermBrandsRead) {
		t.Error("HasPermission(brands.read) = false, want true")
	}
	if s.HasPermission(PermBrandsDelete) {
		t.Error("HasPermission(brands.delete) = true, want false")
	}
	if s.HasPermission("") {
		t.Error("empty code must never be granted")
	}

	if !s.HasAnyPermission(PermBrandsDelete, PermClientsRead) {
		t.Error("HasAnyPermission with one held code = false, want true")
	}
	if s.HasAnyPermission(PermBrandsDelete, PermUsersDelete) {
		t.Error("HasAnyPermission with no held codes = true, want false")
	}
	if s.HasAnyPermission() {
		t.Error("HasAnyPermission() = true, want false")
	}

	if !s.HasAllPermissions(PermClientsRead, PermClientsCreate) {
		t.Error("HasAllPermissions with all held = false, want true")
	}
	if s.HasAllPermissions(PermClientsRead, PermClientsUpdate) {
		t.Error("HasAllPermissions with one missing = true, want false")
	}
	// a guard that requires nothing grants nothing
	if s.HasAllPermissions() {
		t.Error("HasAllPermissions() = true, want false")
	}

	if !s.HasRole("vendeur") {
		t.Error("HasRole(vendeur) = false, want true")
	}
	if s.HasRole("admin") || s.HasRole("") {
		t.Error("unheld or empty role granted")
	}
}

func TestNilSnapshotDeniesEverything(t *testing.T) {
	var s *Snapshot

	if s.HasPermission(PermBrandsRead) || s.HasRole("admin") || s.HasAnyPermission(PermBrandsRead) {
		t.Error("nil snapshot must deny everything")
	}
	if s.HasAllPermissions(PermBrandsRead) {
		t.Error("nil snapshot must deny HasAllPermissions")
	}
	if s.UserID() != uuid.Nil {
		t.Error("nil snapshot UserID must be uuid.Nil")
	}
	if len(s.Permissions()) != 0 || len(s.Roles()) != 0 {
		t.Error("nil snapshot lists must be empty")
	}
}

func TestSnapshotListsAreSorted(t *testing.T) {
	s := NewSnapshot(uuid.New(), []string{"manager", "admin"}, []Permission{PermVillesRead, PermBrandsRead})

	perms := s.Permissions()
	if len(perms) != 2 || perms[0] != "brands.read" || perms[1] != "villes.read" {
		t.Errorf("Permissions() = %v", perms)
	}
	roles := s.Roles()
	if len(roles) != 2 || roles[0] != "admin" || roles[1] != "manager" {
		t.Errorf("Roles() = %v", roles)
	}
}

func TestDefinitionsHaveUniqueCodes(t *testing.T) {
	seen := make(map[Permission]bool)
	for _, def := range Definitions() {
		if def.Code == "" || def.Group == "" {
			t.Errorf("incomplete definition: %+v", def)
		}
		if seen[def.Code] {
			t.Errorf("duplicate permission code %q", def.Code)
		}
		seen[def.Code] = true
	}
}
