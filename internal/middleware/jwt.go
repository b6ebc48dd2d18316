package middleware

import (
	"net/http"
	"strings"

	"github.com/DonSam77/reservasjs/internal/handlers/common"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// JWTAuth requires a valid HS256 Bearer token and stores its subject and
// admin role in the context ("user", "is_admin").
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			common.Abort(c, http.StatusUnauthorized, common.KindUnauthorized, "Missing Bearer token")
			return
		}
		tokenStr := strings.TrimSpace(auth[len("Bearer "):])
		claims := jwt.MapClaims{}
		tok, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !tok.Valid {
			common.Abort(c, http.StatusUnauthorized, common.KindUnauthorized, "Invalid token")
			return
		}
		sub, _ := claims["sub"].(string)
		if sub == "" {
			common.Abort(c, http.StatusForbidden, common.KindForbidden, "Invalid subject")
			return
		}
		isAdmin := false
		if arr, ok := claims["roles"].([]any); ok {
			for _, v := range arr {
				if s, ok := v.(string); ok && s == "admin" {
					isAdmin = true
					break
				}
			}
		}
		c.Set("user", sub)
		c.Set("is_admin", isAdmin)
		c.Next()
	}
}

// RequireAdmin rejects requests whose token lacks the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("is_admin") {
			common.Abort(c, http.StatusForbidden, common.KindForbidden, "Missing required role: admin")
			return
		}
		c.Next()
	}
}
