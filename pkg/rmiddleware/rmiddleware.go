package rmiddleware

import (
	"net/http"
	"strings"

	"github.com/DhavalSuthar-24/transferhub/internal/middleware"
	"github.com/gin-gonic/gin"
)

const (
	RoleManager      = "manager"
	RoleCommissioner = "commissioner"
)

// RoleMiddleware admits users whose token carries one of the roles. It must
// run after middleware.AuthMiddleware.
func RoleMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := middleware.GetUserIDFromContext(c); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
			return
		}

		userRole := middleware.GetUserRoleFromContext(c)
		for _, requiredRole := range requiredRoles {
			if strings.EqualFold(userRole, requiredRole) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     "Forbidden",
			"message":   "You don't have permission to access this resource",
			"required":  requiredRoles,
			"user_role": userRole,
		})
	}
}

// CommissionerMiddleware guards the market administration routes.
func CommissionerMiddleware() gin.HandlerFunc {
	return RoleMiddleware(RoleCommissioner)
}
