package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"edeon_enerji/internal/access"
	"edeon_enerji/internal/service"
	"edeon_enerji/pkg/logger"
)

const principalKey = "principal"

// Auth resolves the bearer token to a principal and stores it on the
// context.
func Auth(authn service.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Oturum açmanız gerekiyor"})
			c.Abort()
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Geçersiz yetkilendirme başlığı"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		p, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug(fmt.Sprintf("authentication failed: %v", err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Oturum açmanız gerekiyor"})
			c.Abort()
			return
		}

		c.Set(principalKey, p)
		c.Set("user_id", p.UserID)
		c.Set("role", string(p.Role))

		c.Next()
	}
}

// PrincipalFrom returns the caller set by Auth.
func PrincipalFrom(c *gin.Context) (access.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return access.Principal{}, false
	}
	p, ok := v.(access.Principal)
	return p, ok
}

// SetPrincipal stores p as the caller. Used by tests and internal routes.
func SetPrincipal(c *gin.Context, p access.Principal) {
	c.Set(principalKey, p)
	c.Set("user_id", p.UserID)
	c.Set("role", string(p.Role))
}
