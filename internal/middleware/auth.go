package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DronKashyap/DK-PropertyListings/internal/auth"
)

const principalKey = "principal"

// RequireAuth rejects requests without a valid bearer token and stores the
// verified Principal on the context for downstream handlers.
func RequireAuth(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential, err := auth.FromAuthorizationHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization token is missing or invalid"})
			return
		}
		principal, err := verifier.Verify(credential)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// PrincipalFrom returns the Principal stored by RequireAuth.
func PrincipalFrom(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}
