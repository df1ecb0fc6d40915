package middleware

import "github.com/gin-gonic/gin"

// clientIDKey is the key used to store the authenticated client's ID in the
// request context. Using a custom type prevents collisions.
const clientIDKey = contextKey("clientID")

// GetClientIDFromContext retrieves the authenticated client ID set by
// AuthMiddleware. It returns the client ID and a boolean indicating if it was
// found.
func GetClientIDFromContext(c *gin.Context) (string, bool) {
	clientIDVal := c.Request.Context().Value(clientIDKey)
	if clientIDVal == nil {
		return "", false
	}

	clientID, ok := clientIDVal.(string)
	if !ok || clientID == "" {
		return "", false
	}

	return clientID, true
}
