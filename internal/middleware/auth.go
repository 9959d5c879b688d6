package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/DhavalSuthar-24/transferhub/pkg/token"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	AuthUserIDKey   = "auth_user_id"
	AuthUserRoleKey = "auth_user_role"
)

// AuthMiddleware requires a bearer access token. When db is set the user
// must also still exist.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format. Expected: Bearer <token>"})
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			return
		}

		if db != nil {
			var count int64
			if err := db.Table("users").Where("id = ? AND deleted_at IS NULL", claims.UserID).Count(&count).Error; err != nil || count == 0 {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found or inactive"})
				return
			}
		}

		c.Set(AuthUserIDKey, claims.UserID)
		c.Set(AuthUserRoleKey, claims.Role)
		c.Next()
	}
}

// GetUserIDFromContext extracts the user ID from the context
func GetUserIDFromContext(c *gin.Context) (uint, error) {
	userID, exists := c.Get(AuthUserIDKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}

	uid, ok := userID.(uint)
	if !ok {
		return 0, fmt.Errorf("user ID has unexpected type: %T", userID)
	}
	return uid, nil
}

func GetUserRoleFromContext(c *gin.Context) string {
	return c.GetString(AuthUserRoleKey)
}
