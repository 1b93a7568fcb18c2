package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newOwnerRouter(header string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := gin.New()
	router.Use(OwnerMiddleware(header, logger))
	router.GET("/test", func(c *gin.Context) {
		ownerID, ok := GetOwner(c.Request.Context())
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, ownerID)
	})
	return router
}

func TestOwnerMiddleware(t *testing.T) {
	t.Run("Success_DefaultHeader", func(t *testing.T) {
		router := newOwnerRouter("")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(DefaultOwnerHeader, "user-1")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", w.Body.String())
	})

	t.Run("Success_CustomHeaderTrimmed", func(t *testing.T) {
		router := newOwnerRouter("X-User")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-User", "  user-2 ")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-2", w.Body.String())
	})

	t.Run("Error_MissingHeader", func(t *testing.T) {
		router := newOwnerRouter("")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "unauthorized")
	})

	t.Run("Error_BlankHeader", func(t *testing.T) {
		router := newOwnerRouter("")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(DefaultOwnerHeader, "   ")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetOwner(t *testing.T) {
	_, ok := GetOwner(context.Background())
	assert.False(t, ok)

	_, ok = GetOwner(WithOwner(context.Background(), ""))
	assert.False(t, ok)

	ownerID, ok := GetOwner(WithOwner(context.Background(), "user-1"))
	assert.True(t, ok)
	assert.Equal(t, "user-1", ownerID)
}
