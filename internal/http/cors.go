package http

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// createCORSMiddleware returns nil when CORS is disabled or the origin list is empty.
// Browsers never send credentials to the secrets API; the owner header is forwarded
// by the gateway and therefore listed as an allowed request header.
func createCORSMiddleware(enabled bool, allowOriginsStr, ownerHeader string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins := parseOrigins(allowOriginsStr)
	if len(origins) == 0 {
		logger.Warn("CORS enabled but no origins configured, CORS will not be applied")
		return nil
	}

	config := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPut, http.MethodDelete},
		AllowHeaders:  []string{"Content-Type", ownerHeader},
		ExposeHeaders: []string{"X-Request-Id", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}

	logger.Info("CORS enabled", slog.Any("origins", origins))

	return cors.New(config)
}

// parseOrigins splits a comma-separated origin list, dropping blanks.
func parseOrigins(originsStr string) []string {
	fields := strings.FieldsFunc(originsStr, func(r rune) bool { return r == ',' })

	origins := make([]string, 0, len(fields))
	for _, field := range fields {
		if origin := strings.TrimSpace(field); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
