package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealthHandler(t *testing.T) {
	healthy := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("connection refused") })

	newRouter := func(services map[string]Pinger) *gin.Engine {
		h := NewHealthHandler("1.0.0", services)
		router := gin.New()
		router.GET("/health", h.Health)
		router.GET("/ready", h.Ready)
		router.GET("/live", h.Live)
		return router
	}

	t.Run("no services", func(t *testing.T) {
		router := newRouter(nil)

		w := doJSON(router, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"healthy","version":"1.0.0"}`, w.Body.String())

		w = doJSON(router, http.MethodGet, "/ready", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("all healthy", func(t *testing.T) {
		w := doJSON(newRouter(map[string]Pinger{"database": healthy, "redis": healthy}), http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"healthy","version":"1.0.0","services":{"database":"healthy","redis":"healthy"}}`, w.Body.String())
	})

	t.Run("one unhealthy", func(t *testing.T) {
		router := newRouter(map[string]Pinger{"database": healthy, "redis": down})

		w := doJSON(router, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"unhealthy","services":{"database":"healthy","redis":"unhealthy"}}`, w.Body.String())

		w = doJSON(router, http.MethodGet, "/ready", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		w = doJSON(router, http.MethodGet, "/live", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
