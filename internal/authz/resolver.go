package authz

import (
	"context"
	"sync"
	"time"

	"commerce/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resolver loads the authorization snapshot for a user.
type Resolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (*Snapshot, error)
}

type dbResolver struct {
	db *gorm.DB
}

// NewDBResolver resolves snapshots from users ⋈ roles ⋈ permissions.
func NewDBResolver(db *gorm.DB) Resolver {
	return &dbResolver{db: db}
}

func (r *dbResolver) Resolve(ctx context.Context, userID uuid.UUID) (*Snapshot, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Roles.Permissions").
		First(&user, "id = ?", userID).Error
	if err != nil {
		return nil, err
	}

	roleNames := make([]string, 0, len(user.Roles))
	seen := make(map[Permission]struct{})
	perms := make([]Permission, 0)
	for _, role := range user.Roles {
		roleNames = append(roleNames, role.Name)
		for _, p := range role.Permissions {
			code := Permission(p.Code)
			if _, dup := seen[code]; dup {
				continue
			}
			seen[code] = struct{}{}
			perms = append(perms, code)
		}
	}

	return NewSnapshot(userID, roleNames, perms), nil
}

type cacheEntry struct {
	snapshot  *Snapshot
	expiresAt time.Time
}

// CachedResolver wraps a Resolver with TTL caching so route guards do not
// hit the database on every request. Role or assignment mutations must call
// Invalidate/InvalidateAll so a newly granted permission takes effect
// without re-authentication.
type CachedResolver struct {
	inner Resolver
	ttl   time.Duration
	mu    sync.RWMutex
	cache map[uuid.UUID]cacheEntry
}

func NewCachedResolver(inner Resolver, ttl time.Duration) *CachedResolver {
	return &CachedResolver{
		inner: inner,
		ttl:   ttl,
		cache: make(map[uuid.UUID]cacheEntry),
	}
}

func (r *CachedResolver) Resolve(ctx context.Context, userID uuid.UUID) (*Snapshot, error) {
	r.mu.RLock()
	entry, ok := r.cache[userID]
	r.mu.RUnlock()

	if ok && time.Now().Before(entry.expiresAt) {
		return entry.snapshot, nil
	}

	snapshot, err := r.inner.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[userID] = cacheEntry{snapshot: snapshot, expiresAt: time.Now().Add(r.ttl)}
	r.mu.Unlock()

	return snapshot, nil
}

// Invalidate drops one user's cached snapshot (user-role assignment changed).
func (r *CachedResolver) Invalidate(userID uuid.UUID) {
	r.mu.Lock()
	delete(r.cache, userID)
	r.mu.Unlock()
}

// InvalidateAll drops every cached snapshot (role-permission set changed).
func (r *CachedResolver) InvalidateAll() {
	r.mu.Lock()
	r.cache = make(map[uuid.UUID]cacheEntry)
	r.mu.Unlock()
}
