package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newLimitedRouter(t *testing.T, maxRequests int64) (*gin.Engine, *MemoryStore) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	store := NewMemoryStore()
	t.Cleanup(func() { store.Close() })

	router := gin.New()
	router.Use(Middleware(store, "api", maxRequests, time.Minute))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router, store
}

func TestMiddlewareAllowsUnderLimit(t *testing.T) {
	router, _ := newLimitedRouter(t, 3)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("requisição %d dentro do limite deveria passar, obteve %d", i+1, w.Code)
		}
	}
}

func TestMiddlewareBlocksOverLimit(t *testing.T) {
	router, _ := newLimitedRouter(t, 2)

	var last int
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(w, req)
		last = w.Code
	}

	if last != http.StatusTooManyRequests {
		t.Errorf("requisição acima do limite deveria retornar 429, obteve %d", last)
	}
}
