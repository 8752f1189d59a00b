package authz

import (
	"sort"

	"github.com/google/uuid"
)

// Snapshot is an actor's resolved authorization state at one point in time:
// the union of permissions granted through the actor's roles, plus the role
// names themselves. It is immutable once built; assignment changes become
// visible only through a fresh snapshot.
type Snapshot struct {
	userID uuid.UUID
	roles  map[string]struct{}
	perms  map[Permission]struct{}
}

// NewSnapshot builds a snapshot from flat role and permission lists.
func NewSnapshot(userID uuid.UUID, roleNames []string, perms []Permission) *Snapshot {
	s := &Snapshot{
		userID: userID,
		roles:  make(map[string]struct{}, len(roleNames)),
		perms:  make(map[Permission]struct{}, len(perms)),
	}
	for _, r := range roleNames {
		s.roles[r] = struct{}{}
	}
	for _, p := range perms {
		s.perms[p] = struct{}{}
	}
	return s
}

// UserID returns the actor this snapshot was resolved for.
func (s *Snapshot) UserID() uuid.UUID {
	if s == nil {
		return uuid.Nil
	}
	return s.userID
}

// HasPermission reports whether the permission is in the resolved set.
// A nil snapshot or empty code is always false.
func (s *Snapshot) HasPermission(p Permission) bool {
	if s == nil || p == "" {
		return false
	}
	_, ok := s.perms[p]
	return ok
}

// HasAnyPermission reports whether at least one of the codes is held.
func (s *Snapshot) HasAnyPermission(perms ...Permission) bool {
	for _, p := range perms {
		if s.HasPermission(p) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether every code is held. An empty list is
// false: a guard that requires nothing grants nothing.
func (s *Snapshot) HasAllPermissions(perms ...Permission) bool {
	if len(perms) == 0 {
		return false
	}
	for _, p := range perms {
		if !s.HasPermission(p) {
			return false
		}
	}
	return true
}

// HasRole reports whether the role name is among the actor's roles.
func (s *Snapshot) HasRole(name string) bool {
	if s == nil || name == "" {
		return false
	}
	_, ok := s.roles[name]
	return ok
}

// Permissions returns the sorted permission codes, for the page payload the
// client uses to decide which actions to render. Never an authorization
// decision point server-side.
func (s *Snapshot) Permissions() []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, 0, len(s.perms))
	for p := range s.perms {
		out = append(out, string(p))
	}
	sort.Strings(out)
	return out
}

// Roles returns the sorted role names.
func (s *Snapshot) Roles() []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, 0, len(s.roles))
	for r := range s.roles {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
