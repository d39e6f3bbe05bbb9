package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"combi_rides/internal/models"
)

const principalKey = "principal"

// Principal is the authenticated caller, resolved once from the token.
// Downstream handlers work against this, never against raw claim strings.
type Principal struct {
	UserID uint
	Role   models.Role
}

// GenerateToken issues an HS256 token carrying the user id and role.
func GenerateToken(secret []byte, userID uint, role models.Role) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// resolvePrincipal validates the bearer token and stores the Principal in
// the context. It aborts the request on any failure; callers must return
// immediately when it reports false, before the handler chain advances.
func resolvePrincipal(c *gin.Context, secret []byte) (Principal, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
		return Principal{}, false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return Principal{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		return Principal{}, false
	}
	userID, okID := claims["user_id"].(float64)
	roleStr, okRole := claims["role"].(string)
	if !okID || !okRole {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		return Principal{}, false
	}
	role, okRole := models.ParseRole(roleStr)
	if !okRole {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown role in token"})
		return Principal{}, false
	}

	p := Principal{UserID: uint(userID), Role: role}
	c.Set(principalKey, p)
	return p, true
}

// RequireAuth ensures a valid JWT is present and stores the resolved
// Principal in the context.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := resolvePrincipal(c, secret); !ok {
			return
		}
	}
}

// RequireRole ensures the JWT is valid and the caller holds the given role.
// The role check runs before the handler chain advances.
func RequireRole(secret []byte, required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := resolvePrincipal(c, secret)
		if !ok {
			return
		}
		if p.Role != required {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
	}
}

// CurrentPrincipal returns the Principal stored by RequireAuth.
func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
