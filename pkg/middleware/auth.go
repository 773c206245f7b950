package middleware

import (
	"net/http"
	"strings"

	"cliphub/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// AccessTokenCookie is also the cookie name the login handler sets.
const AccessTokenCookie = "accessToken"

// AuthMiddleware authenticates the request from the accessToken cookie or the
// Authorization header and stores the token identity on the context.
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"statusCode": http.StatusUnauthorized, "message": "unauthorized request"})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateAccessToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"statusCode": http.StatusUnauthorized, "message": "invalid access token"})
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth sets the identity when a valid access token is present and
// lets the request through either way. Used by public pages that render
// differently for a logged-in viewer.
func OptionalAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFromRequest(c); token != "" {
			if claims, err := jwtService.ValidateAccessToken(token); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}

func setIdentity(c *gin.Context, claims *jwt.AccessClaims) {
	c.Set("user_id", claims.UserID)
	c.Set("email", claims.Email)
	c.Set("username", claims.Username)
	c.Set("full_name", claims.FullName)
}
