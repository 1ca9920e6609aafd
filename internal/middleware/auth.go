package middleware

import (
	"net/http"
	"strings"

	"Postbook/internal/pkg"
	"Postbook/internal/repository/redis"

	"github.com/gin-gonic/gin"
)

const ContextClaimsKey = "claims"

// Auth verifies the Bearer token, checks it is the user's active
// session, extends the session TTL and injects the claims. A bad token
// is a client error on every authenticated operation.
func Auth(sessions *redis.TokenRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"msg": "invalid token"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"msg": "invalid token"})
			return
		}

		claims, err := pkg.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"msg": "invalid token"})
			return
		}

		stored, err := sessions.Get(c.Request.Context(), claims.UserID)
		if err != nil || stored != parts[1] {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"msg": "session expired or replaced"})
			return
		}
		if err := sessions.Extend(c.Request.Context(), claims.UserID); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// Claims returns the identity injected by Auth.
func Claims(c *gin.Context) *pkg.Claims {
	v, _ := c.Get(ContextClaimsKey)
	claims, _ := v.(*pkg.Claims)
	return claims
}
