// Package middleware provides gin middleware for the HTTP edge: JWT wallet
// authentication and request audit logging.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/quantumtix/quantumticket/internal/domain"
	"github.com/quantumtix/quantumticket/internal/response"
)

var (
	ErrMissingAuthHeader = errors.New("missing authorization header")
	ErrInvalidAuthFormat = errors.New("invalid authorization header format")
	ErrInvalidToken      = errors.New("invalid token")
)

// Context keys for caller identity.
const (
	ContextKeyWallet = "wallet_address"
	ContextKeyUserID = "user_id"
)

// JWTConfig holds configuration for the JWT middleware.
type JWTConfig struct {
	// Secret key for validating JWT tokens.
	Secret string
	// SkipPaths lists paths that bypass JWT validation.
	SkipPaths []string
}

// JWTMiddleware validates the bearer token and injects the caller's wallet
// address into the request context. All authenticated ledger operations
// derive their caller identity from this claim, never from the request body.
func JWTMiddleware(config *JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, path := range config.SkipPaths {
			if c.Request.URL.Path == path {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("MISSING_TOKEN", "Authorization header is required"))
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("INVALID_TOKEN", "Invalid authorization header format"))
			return
		}
		tokenString := authHeader[len(bearerPrefix):]

		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("INVALID_TOKEN", "Token is empty"))
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return []byte(config.Secret), nil
		})

		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("TOKEN_EXPIRED", "Access token has expired"))
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("INVALID_TOKEN", "Invalid access token"))
			return
		}

		if !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("INVALID_TOKEN", "Invalid access token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("INVALID_TOKEN", "Invalid token claims"))
			return
		}

		wallet, ok := claims["wallet_address"].(string)
		if !ok || wallet == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("INVALID_TOKEN", "Missing wallet_address in token"))
			return
		}

		userID, _ := claims["user_id"].(string)

		c.Set(ContextKeyWallet, wallet)
		c.Set(ContextKeyUserID, userID)

		c.Next()
	}
}

// GetWallet extracts the caller's wallet address from the gin context.
func GetWallet(c *gin.Context) (domain.Address, bool) {
	wallet, exists := c.Get(ContextKeyWallet)
	if !exists {
		return domain.ZeroAddress, false
	}
	w, ok := wallet.(string)
	if !ok || w == "" {
		return domain.ZeroAddress, false
	}
	return domain.Address(w), true
}

// GetUserID extracts the user ID from the gin context.
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok
}
