package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/middleware"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/services"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/shared/auth"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/shared/response"
)

// AuthHandler owns login and logout.
type AuthHandler struct {
	userService *services.UserService
	jwtService  *auth.JWTService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(userService *services.UserService, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
	}
}

// LoginRequest is the login page's JSON body.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks credentials and sets the HTTP-only session cookie. The
// token lifetime doubles as the cookie lifetime.
func (ah *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "username and password are required")
		return
	}

	user, err := ah.userService.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserDisabled):
			response.Forbidden(c, "user disabled")
		case errors.Is(err, services.ErrBadCredentials):
			response.Unauthorized(c, "invalid credentials")
		default:
			response.InternalError(c, "login failed")
		}
		return
	}

	token, err := ah.jwtService.IssueToken(user.Username, user.Role)
	if err != nil {
		response.InternalError(c, "issue token failed")
		return
	}

	maxAge := int(ah.jwtService.Expiry().Seconds())
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", false, true)

	response.Success(c, gin.H{
		"username": user.Username,
		"role":     user.Role,
	})
}

// Logout clears the session cookie and marks the user inactive. The
// server keeps no revocation list: a copied token stays valid until its
// natural expiry.
func (ah *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil {
		if claims, err := ah.jwtService.ValidateToken(token); err == nil {
			ah.userService.Logout(claims.Username)
		}
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}
