package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/realtor-go/config"
)

// The routes exercised here are rejected or answered before any query runs,
// so no database is needed.
func testRouter() http.Handler {
	cfg := &config.AppConfig{
		DB:     &config.PoolConfig{},
		Auth:   &config.AuthConfig{JWTSecret: "test", AccessTokenDuration: time.Minute, RefreshTokenDuration: time.Hour, BcryptCost: 10},
		Server: &config.ServerConfig{Port: "0", Env: "development"},
	}
	return newRouter(cfg, nil, zap.NewNop())
}

func get(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestRouter(t *testing.T) {
	router := testRouter()

	t.Run("swagger document is registered", func(t *testing.T) {
		rec := get(router, http.MethodGet, "/swagger/doc.json")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Realtor API")
		assert.Contains(t, rec.Body.String(), "/home/{id}/realtor")
	})

	t.Run("unknown route is a JSON 404", func(t *testing.T) {
		rec := get(router, http.MethodGet, "/nope")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Cannot GET /nope"}`, rec.Body.String())
	})

	t.Run("mutations need a token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(router, http.MethodPost, "/home").Code)
		assert.Equal(t, http.StatusUnauthorized, get(router, http.MethodDelete, "/home/1").Code)
		assert.Equal(t, http.StatusUnauthorized, get(router, http.MethodGet, "/users/me").Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, get(router, http.MethodGet, "/home/abc").Code)
	})
}
