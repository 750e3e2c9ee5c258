package middleware

import (
	"net/http"
	"strings"

	"github.com/PozdnyakovE/foodgram/config"
	"github.com/PozdnyakovE/foodgram/util"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key carrying the authenticated user's ID.
// Handlers read it once and pass the viewer identity explicitly into every
// service call.
const UserIDKey = "userID"

func authenticate(c *gin.Context, jwtSecretKey []byte) (uint, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return 0, false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := util.ValidateJWT(tokenString, jwtSecretKey)
	if err != nil {
		return 0, false
	}
	return claims.UserID, true
}

// AuthenticateJWT rejects requests without a valid bearer token.
func AuthenticateJWT(cfg *config.Config) gin.HandlerFunc {
	secret := []byte(cfg.JWTSecretKey)
	return func(c *gin.Context) {
		userID, ok := authenticate(c, secret)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "authentication credentials were not provided or are invalid"})
			c.Abort()
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// OptionalJWT resolves the caller's identity when a valid token is present
// and leaves the request anonymous otherwise.
func OptionalJWT(cfg *config.Config) gin.HandlerFunc {
	secret := []byte(cfg.JWTSecretKey)
	return func(c *gin.Context) {
		if userID, ok := authenticate(c, secret); ok {
			c.Set(UserIDKey, userID)
		}
		c.Next()
	}
}
