package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edeon_enerji/internal/access"
	"edeon_enerji/internal/domain"
)

// RequireRole only lets the given roles through. It must run after Auth.
func RequireRole(allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "Bu işlem için yetkiniz yok"})
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if p.Role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Bu işlem için yetkiniz yok"})
		c.Abort()
	}
}

// RequireAction guards a route with the roles allowed to perform a.
func RequireAction(a access.Action) gin.HandlerFunc {
	return RequireRole(access.RolesFor(a)...)
}
