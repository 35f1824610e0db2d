package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/corehr/hr-admin-backend/shared/config"
	"github.com/corehr/hr-admin-backend/shared/utils"
)

// TokenTTL is the superadmin access token lifetime.
const TokenTTL = 60 * time.Minute

// SuperAdminRole is the only role this backend issues tokens for.
const SuperAdminRole = "superadmin"

// AuthMiddleware issues and validates superadmin access tokens. Tokens are
// locally signed HS256; a Redis session keyed by the token hash must also
// exist, so revocation works without waiting for expiry.
type AuthMiddleware struct {
	secret []byte
}

// SuperAdminClaims are the claims carried by a superadmin token.
type SuperAdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// NewAuthMiddleware creates the middleware from the JWT_SECRET environment
// variable.
func NewAuthMiddleware() (*AuthMiddleware, error) {
	secret := config.GetEnv("JWT_SECRET", "")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	return &AuthMiddleware{secret: []byte(secret)}, nil
}

// IssueToken signs a fresh superadmin access token.
func (am *AuthMiddleware) IssueToken(email string) (string, error) {
	now := time.Now()
	claims := SuperAdminClaims{
		Role: SuperAdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(am.secret)
}

// ParseToken validates the signature and expiry of a presented token.
func (am *AuthMiddleware) ParseToken(tokenString string) (*SuperAdminClaims, error) {
	claims := &SuperAdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return am.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Role != SuperAdminRole {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// RequireSuperAdmin validates the bearer token and its Redis session.
func (am *AuthMiddleware) RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			c.Abort()
			return
		}

		claims, err := am.ParseToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		session, err := utils.GetAdminSession(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired or revoked"})
			c.Abort()
			return
		}

		c.Set("admin_email", claims.Subject)
		c.Set("session_id", session.SessionID)
		c.Next()
	}
}

// extractToken extracts the token from the Authorization header
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
