// server/internal/api/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"freight-shipment-api-server/internal/auth"
	"freight-shipment-api-server/internal/models"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is the gin context key holding the logged-in user.
const ContextUserKey = "loggedin_user"

// Authenticate validates the bearer token and puts the logged-in user
// into the request context. Handlers read it once and pass it explicitly
// into the service layer.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := auth.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ContextUserKey, models.MiniUser{
			ID:       claims.UserID,
			Fullname: claims.Fullname,
			IsAdmin:  claims.IsAdmin,
		})

		c.Next()
	}
}

// RequireAdmin rejects requests whose logged-in user is not an admin.
// Must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := LoggedinUser(c)
		if !exists {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "User not found in context"})
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			return
		}
		c.Next()
	}
}

// LoggedinUser reads the user Authenticate stored on the context.
func LoggedinUser(c *gin.Context) (models.MiniUser, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return models.MiniUser{}, false
	}
	user, ok := value.(models.MiniUser)
	return user, ok
}
