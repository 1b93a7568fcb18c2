package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/secretstash/internal/errors"
	"github.com/allisson/secretstash/internal/httputil"
)

// DefaultOwnerHeader carries the owner ID set by the upstream authentication layer.
const DefaultOwnerHeader = "X-Owner-ID"

// OwnerMiddleware reads the authenticated owner ID from a trusted request header and
// stores it in the request context.
//
// The header must be set by a gateway or proxy that has already authenticated the
// caller and strips any client-supplied value. Requests without it get 401.
//
// Usage:
//
//	router.Use(OwnerMiddleware("X-Owner-ID", logger))
//	router.GET("/v1/secrets", func(c *gin.Context) {
//	    ownerID, _ := GetOwner(c.Request.Context())
//	})
func OwnerMiddleware(header string, logger *slog.Logger) gin.HandlerFunc {
	if header == "" {
		header = DefaultOwnerHeader
	}

	return func(c *gin.Context) {
		ownerID := strings.TrimSpace(c.GetHeader(header))
		if ownerID == "" {
			logger.Debug("owner resolution failed: missing owner header", slog.String("header", header))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		ctx := WithOwner(c.Request.Context(), ownerID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
