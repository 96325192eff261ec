package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/coffee-outlets/utils"
)

// AuthMiddleware accepts a bearer token signed with JWT_SECRET whose role is
// one of roles.
func AuthMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondDetail(c, http.StatusUnauthorized, "Authorization header missing")
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondDetail(c, http.StatusUnauthorized, "Authorization header must use the Bearer scheme")
			return
		}

		claims, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			utils.RespondDetail(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		if !hasRole(claims.Role, roles) {
			utils.RespondDetail(c, http.StatusForbidden, "Insufficient role")
			return
		}

		c.Set("subject", claims.Subject)
		c.Set("role", claims.Role)
		c.Next()
	}
}

func hasRole(role string, roles []string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
