package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/uyildiz/vehicle-maintenance/internal/auth"
	"github.com/uyildiz/vehicle-maintenance/internal/models"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func tokenFor(t *testing.T, svc *auth.Service, role models.Role) string {
	t.Helper()
	token, err := svc.GenerateToken(&models.User{
		ID:       primitive.NewObjectID(),
		Username: "u",
		Role:     role,
	})
	require.NoError(t, err)
	return token
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	svc, err := auth.NewService()
	require.NoError(t, err)
	m := NewAuthMiddleware(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/vehicles", nil)
	rr := httptest.NewRecorder()
	m.Authenticate(okHandler()).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticate_SkipsPublicPaths(t *testing.T) {
	svc, err := auth.NewService()
	require.NoError(t, err)
	m := NewAuthMiddleware(svc)

	for _, path := range []string{"/health", "/api/auth/login", "/api/auth/register"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		m.Authenticate(okHandler()).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}
}

func TestAuthenticate_ValidToken(t *testing.T) {
	svc, err := auth.NewService()
	require.NoError(t, err)
	m := NewAuthMiddleware(svc)

	seen := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetUserFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, models.RoleViewer, claims.Role)
		seen = true
	})

	req := httptest.NewRequest(http.MethodGet, "/api/vehicles", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, models.RoleViewer))
	m.Authenticate(inner).ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, seen)
}

func TestRequirePermission(t *testing.T) {
	svc, err := auth.NewService()
	require.NoError(t, err)
	m := NewAuthMiddleware(svc)

	handler := m.Authenticate(m.RequirePermission("manage_vehicles")(okHandler()))

	// Viewer cannot manage vehicles.
	req := httptest.NewRequest(http.MethodPost, "/api/vehicles", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, models.RoleViewer))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// Mechanic can.
	req = httptest.NewRequest(http.MethodPost, "/api/vehicles", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, models.RoleMechanic))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimit(t *testing.T) {
	m := NewRateLimitMiddleware()
	handler := m.RateLimit(2, 60)(okHandler())

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	}
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
}
