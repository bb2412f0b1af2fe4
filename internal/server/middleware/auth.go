package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DubbakaVarsha/crowdcountanalysis/internal/shared/auth"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/shared/response"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "token"

// Context keys set by RequireSession.
const (
	CtxUsername = "username"
	CtxRole     = "role"
)

// RequireSession validates the session cookie. Missing, malformed and
// expired tokens all behave the same: redirect to the login page. On
// success the decoded identity is placed on the context.
func RequireSession(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		c.Set(CtxUsername, claims.Username)
		c.Set(CtxRole, claims.Role)

		c.Next()
	}
}

// RequireRole gates a route on the role decoded by RequireSession. A valid
// session with the wrong role gets an explicit denial, not a redirect.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRole) != role {
			response.Forbidden(c, "access denied")
			c.Abort()
			return
		}
		c.Next()
	}
}
