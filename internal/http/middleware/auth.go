package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"rentalops/internal/domain"
)

const (
	operatorIDKey   = "operator_id"
	operatorNameKey = "operator_name"
	operatorRoleKey = "operator_role"
)

// RequireAuth validates the bearer token and stores the operator
// identity in context. Handlers pass it on explicitly; nothing reads it
// from ambient state past the handler boundary.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak ditemukan"})
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak valid"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak valid"})
			return
		}

		if id, ok := claims["user_id"].(float64); ok {
			c.Set(operatorIDKey, int64(id))
		}
		if name, ok := claims["name"].(string); ok {
			c.Set(operatorNameKey, name)
		}
		if role, ok := claims["role"].(string); ok {
			c.Set(operatorRoleKey, role)
		}

		c.Next()
	}
}

// GetOperator rebuilds the authenticated operator from context.
func GetOperator(c *gin.Context) domain.Operator {
	return domain.Operator{
		ID:   domain.ID(c.GetInt64(operatorIDKey)),
		Name: c.GetString(operatorNameKey),
		Role: c.GetString(operatorRoleKey),
	}
}

// RequireRoles allows only the named roles past. Assumes RequireAuth
// ran earlier on the chain.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		role := strings.ToLower(strings.TrimSpace(c.GetString(operatorRoleKey)))
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized: role tidak ditemukan pada context",
			})
			return
		}
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "forbidden: role tidak diizinkan",
			})
			return
		}
		c.Next()
	}
}
