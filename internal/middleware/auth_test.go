package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"commerce/internal/authz"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticResolver struct {
	snapshots map[uuid.UUID]*authz.Snapshot
}

func (r *staticResolver) Resolve(_ context.Context, userID uuid.UUID) (*authz.Snapshot, error) {
	if s, ok := r.snapshots[userID]; ok {
		return s, nil
	}
	return nil, errors.New("unknown user")
}

func signToken(t *testing.T, secret []byte, userID uuid.UUID) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(secret)
	require.NoError(t, err)
	return token
}

func newGuardedRouter(t *testing.T, resolver authz.Resolver) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	auth := NewAuth(resolver)

	router := gin.New()
	router.GET("/guarded", auth.RequirePermission(authz.PermBrandsRead), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": SnapshotFrom(c).UserID()})
	})
	router.GET("/admin-only", auth.RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRequirePermissionMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	router := newGuardedRouter(t, &staticResolver{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequirePermissionInvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	router := newGuardedRouter(t, &staticResolver{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequirePermissionForbidden(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	userID := uuid.New()
	resolver := &staticResolver{snapshots: map[uuid.UUID]*authz.Snapshot{
		userID: authz.NewSnapshot(userID, []string{"vendeur"}, []authz.Permission{authz.PermClientsRead}),
	}}
	router := newGuardedRouter(t, resolver)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, []byte("test_secret"), userID))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "brands.read")
}

func TestRequirePermissionGranted(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	userID := uuid.New()
	resolver := &staticResolver{snapshots: map[uuid.UUID]*authz.Snapshot{
		userID: authz.NewSnapshot(userID, []string{"manager"}, []authz.Permission{authz.PermBrandsRead}),
	}}
	router := newGuardedRouter(t, resolver)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, []byte("test_secret"), userID))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequirePermissionViaCookie(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	userID := uuid.New()
	resolver := &staticResolver{snapshots: map[uuid.UUID]*authz.Snapshot{
		userID: authz.NewSnapshot(userID, nil, []authz.Permission{authz.PermBrandsRead}),
	}}
	router := newGuardedRouter(t, resolver)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: signToken(t, []byte("test_secret"), userID)})
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	adminID := uuid.New()
	vendeurID := uuid.New()
	resolver := &staticResolver{snapshots: map[uuid.UUID]*authz.Snapshot{
		adminID:   authz.NewSnapshot(adminID, []string{"admin"}, nil),
		vendeurID: authz.NewSnapshot(vendeurID, []string{"vendeur"}, nil),
	}}
	router := newGuardedRouter(t, resolver)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, []byte("test_secret"), adminID))
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, []byte("test_secret"), vendeurID))
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTokenSignedWithWrongSecretRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	userID := uuid.New()
	resolver := &staticResolver{snapshots: map[uuid.UUID]*authz.Snapshot{
		userID: authz.NewSnapshot(userID, nil, []authz.Permission{authz.PermBrandsRead}),
	}}
	router := newGuardedRouter(t, resolver)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, []byte("other_secret"), userID))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
