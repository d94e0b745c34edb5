package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"reminisce/internal/session"
)

// Cookie is the name of the admin session cookie.
const Cookie = "reminisce_session"

// Context keys set by AdminAuth.
const (
	CtxClaims       = "claims"
	CtxBackendToken = "backendToken"
)

// AdminAuth enforces a valid session cookie (or bearer header) and resolves
// the backend x-access-token stored for that session. Requests without a
// resolvable backend token are rejected: the admin must sign in again.
func AdminAuth(signingKey, issuer string, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(Cookie)
		if err != nil || tokenStr == "" {
			authz := c.GetHeader("Authorization")
			if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				tokenStr = strings.TrimSpace(authz[len("bearer "):])
			}
		}
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
			return
		}

		claims, err := Parse(tokenStr, signingKey, issuer)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}

		var backendToken string
		if err := sessions.Get(c.Request.Context(), claims.SessionID, session.SlotAdminToken, &backendToken); err != nil || backendToken == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired, sign in again"})
			return
		}

		c.Set(CtxClaims, claims)
		c.Set(CtxBackendToken, backendToken)
		c.Next()
	}
}
