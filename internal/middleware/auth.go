package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	portssvc "github.com/minibank/minibank/internal/core/ports/services"
)

// AuthMiddleware creates a Gin middleware handler that validates identity
// tokens. The token is taken as an explicit bearer credential from the
// Authorization header; the verified subject is placed in the request context
// for downstream authorization checks.
func AuthMiddleware(tokenSvc portssvc.TokenSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		clientID, err := tokenSvc.VerifyToken(c.Request.Context(), parts[1])
		if err != nil {
			// Expired, tampered and malformed tokens all collapse to the same
			// outcome for the caller.
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// Store the client ID in the request context
		ctxWithClient := context.WithValue(c.Request.Context(), clientIDKey, clientID)

		// Add client ID to the logger and store the enriched logger back
		enrichedLogger := logger.With(slog.String("client_id", clientID))
		ctxWithLoggerAndClient := context.WithValue(ctxWithClient, loggerCtxKey, enrichedLogger)

		c.Request = c.Request.WithContext(ctxWithLoggerAndClient)

		c.Next()
	}
}
