package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Se9uencer/FitCheck/config"
	"github.com/Se9uencer/FitCheck/utils"
)

func configureAdmin(t *testing.T, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	prevEmail, prevHash, prevSecret := config.AdminEmail, config.AdminPasswordHash, config.JWTSecret
	config.AdminEmail = "admin@fitcheck.app"
	config.AdminPasswordHash = string(hash)
	config.JWTSecret = "test-secret"
	t.Cleanup(func() {
		config.AdminEmail, config.AdminPasswordHash, config.JWTSecret = prevEmail, prevHash, prevSecret
	})
}

func TestAdminLogin_Success(t *testing.T) {
	configureAdmin(t, "hunter22pass")
	h := newTestHandler("http://unused.invalid")

	rec := doJSON(t, h.Routes(), http.MethodPost, "/api/admin/login", LoginRequest{
		Email:    "Admin@Fitcheck.app",
		Password: "hunter22pass",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "token")
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	configureAdmin(t, "hunter22pass")
	h := newTestHandler("http://unused.invalid")

	rec := doJSON(t, h.Routes(), http.MethodPost, "/api/admin/login", LoginRequest{
		Email:    "admin@fitcheck.app",
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminLogin_WrongEmail(t *testing.T) {
	configureAdmin(t, "hunter22pass")
	h := newTestHandler("http://unused.invalid")

	rec := doJSON(t, h.Routes(), http.MethodPost, "/api/admin/login", LoginRequest{
		Email:    "intruder@example.com",
		Password: "hunter22pass",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminLogin_Unconfigured(t *testing.T) {
	prevEmail, prevHash := config.AdminEmail, config.AdminPasswordHash
	config.AdminEmail, config.AdminPasswordHash = "", ""
	t.Cleanup(func() { config.AdminEmail, config.AdminPasswordHash = prevEmail, prevHash })

	h := newTestHandler("http://unused.invalid")
	rec := doJSON(t, h.Routes(), http.MethodPost, "/api/admin/login", LoginRequest{})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	configureAdmin(t, "hunter22pass")
	h := newTestHandler("http://unused.invalid")

	protected := h.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rec := httptest.NewRecorder()
		protected(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		protected(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token for another subject", func(t *testing.T) {
		token, err := utils.GenerateToken("someone-else@example.com")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid admin token", func(t *testing.T) {
		token, err := utils.GenerateToken(config.AdminEmail)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestCORSMiddleware(t *testing.T) {
	prev := config.AllowedOrigins
	config.AllowedOrigins = []string{"http://localhost:3000"}
	t.Cleanup(func() { config.AllowedOrigins = prev })

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := CORSMiddleware(next)

	t.Run("allowed origin echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unknown origin not echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://evil.example.com")
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/extract", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
