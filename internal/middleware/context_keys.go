package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated operator's ID.
const userIDKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated operator ID from the Gin context.
// It returns the ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if v, ok := c.Request.Context().Value(userIDKey).(string); ok && v != "" {
			return v, true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}
