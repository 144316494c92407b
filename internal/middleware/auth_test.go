package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flower-backend/internal/auth"
	"flower-backend/internal/models"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateRejectsBadHeaders(t *testing.T) {
	m := NewAuthMiddleware(auth.NewJWTManager("test-secret", time.Hour), nil)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			req := httptest.NewRequest(http.MethodGet, "/api/farmers", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			m.Authenticate(okHandler(&called)).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)
		})
	}
}

// A role guard stacked on an already-authenticated subrouter must reuse the
// resolved user. The nil user repository here would panic if the guard went
// back to the database.
func TestRequireRoleReusesAuthenticatedUser(t *testing.T) {
	m := NewAuthMiddleware(auth.NewJWTManager("test-secret", time.Hour), nil)
	admin := &models.User{ID: 7, Email: "admin@market.test", Role: models.RoleAdmin, IsActive: true}

	called := false
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req = withUser(req, admin)
	rec := httptest.NewRecorder()

	m.RequireAdmin(okHandler(&called)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestRequireRoleForbidsWrongRole(t *testing.T) {
	m := NewAuthMiddleware(auth.NewJWTManager("test-secret", time.Hour), nil)
	staff := &models.User{ID: 3, Email: "staff@market.test", Role: models.RoleStaff, IsActive: true}

	called := false
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req = withUser(req, staff)
	rec := httptest.NewRecorder()

	m.RequireAdmin(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

func TestContextAccessors(t *testing.T) {
	user := &models.User{ID: 42, Email: "u@market.test", Role: models.RoleStaff, IsActive: true}
	req := withUser(httptest.NewRequest(http.MethodGet, "/", nil), user)

	id, ok := GetUserIDFromContext(req.Context())
	require.True(t, ok)
	assert.Equal(t, 42, id)

	role, ok := GetRoleFromContext(req.Context())
	require.True(t, ok)
	assert.Equal(t, models.RoleStaff, role)
}
