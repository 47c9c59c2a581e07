package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nomadfest/api/internal/auth"
	"github.com/nomadfest/api/internal/helpers"
)

// JWTAuthMiddleware verifies the bearer token and attaches the claims to
// the request context. Everything past this point trusts the claims
// verbatim.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Missing or malformed authorization header.")
			c.Abort()
			return
		}

		claims, err := auth.ParseToken([]byte(os.Getenv("JWT_SECRET")), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token.")
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Set("user_id", claims.UserID())
		c.Next()
	}
}

// RequireRole gates a route group on a minimum role.
func RequireRole(min auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
			c.Abort()
			return
		}
		if !claims.UserRole().AtLeast(min) {
			helpers.RespondWithError(c, http.StatusForbidden, "Insufficient role.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func GetClaims(c *gin.Context) *auth.Claims {
	claims, exists := c.Get("claims")
	if !exists {
		return nil
	}
	return claims.(*auth.Claims)
}
