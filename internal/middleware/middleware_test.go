package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merylgrace/alumni-coordinator/pkg"
)

func authedRequest(t *testing.T, role string) *http.Request {
	t.Helper()
	tok, err := pkg.CreateToken("admin@school.edu", role)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	return req
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	var gotEmail, gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEmail, _ = r.Context().Value(AdminEmailKey).(string)
		gotRole, _ = r.Context().Value(AdminRoleKey).(string)
	})

	rec := httptest.NewRecorder()
	AuthMiddleware(next).ServeHTTP(rec, authedRequest(t, "admin"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin@school.edu", gotEmail)
	assert.Equal(t, "admin", gotRole)
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	rec := httptest.NewRecorder()
	AuthMiddleware(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestRequireAdmin_ViewerForbidden(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	chain := AuthMiddleware(RequireAdmin(next))

	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, authedRequest(t, "viewer"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)

	rec = httptest.NewRecorder()
	chain.ServeHTTP(rec, authedRequest(t, "admin"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	})
	rec := httptest.NewRecorder()
	CORSMiddleware(next).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
