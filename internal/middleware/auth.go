package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/salonbelle/salon-scheduler/internal/config"
	"github.com/salonbelle/salon-scheduler/internal/identity"
)

const ContextCurrentUser = "currentUser"

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		user, err := ParseToken(parts[1], cfg.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		c.Set(ContextCurrentUser, user)
		c.Next()
	}
}

// ParseToken validates an HS256 token and extracts the caller identity.
// Shared with the websocket endpoint, which authenticates via query
// parameter instead of header.
func ParseToken(tokenString, secret string) (identity.CurrentUser, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return identity.CurrentUser{}, jwt.ErrTokenMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return identity.CurrentUser{}, jwt.ErrTokenInvalidClaims
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return identity.CurrentUser{}, jwt.ErrTokenInvalidClaims
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return identity.CurrentUser{
		ID:    uint(sub),
		Email: email,
		Role:  role,
	}, nil
}

// CurrentUser pulls the identity set by AuthMiddleware.
func CurrentUser(c *gin.Context) identity.CurrentUser {
	return c.MustGet(ContextCurrentUser).(identity.CurrentUser)
}
