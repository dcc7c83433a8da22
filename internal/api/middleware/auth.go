package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KushalZanzari/Echo-AI/internal/domain"
)

// ClaimsKey is the gin context key the verified token claims are stored
// under.
const ClaimsKey = "authClaims"

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	VerifyToken(token string) (*domain.TokenClaims, error)
}

// Auth returns a bearer-token authentication middleware.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		claims, err := verifier.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// Claims retrieves the verified claims set by Auth.
func Claims(c *gin.Context) *domain.TokenClaims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*domain.TokenClaims); ok {
			return claims
		}
	}
	return nil
}
