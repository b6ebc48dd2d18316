package auth

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/DonSam77/reservasjs/internal/handlers/common"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Login issues a short-lived access token for the operator credential.
// Flow:
// 1) Validate payload
// 2) Check username and password
// 3) Build JWT and return token response
func (h *Handler) Login(c *gin.Context) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Username == "" || in.Password == "" {
		common.Abort(c, http.StatusBadRequest, common.KindInvalidRequest, "username and password are required")
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(in.Username), []byte(h.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(in.Password)) == nil
	if !userOK || !passOK {
		common.Abort(c, http.StatusUnauthorized, "invalid_grant", "invalid credentials")
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   Issuer,
		"sub":   h.username,
		"roles": []string{"admin"},
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"exp":   now.Add(h.ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.jwtSecret))
	if err != nil {
		common.Abort(c, http.StatusInternalServerError, common.KindInternal, "could not sign token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": signed,
		"token_type":   "Bearer",
		"expires_in":   int(h.ttl.Seconds()),
	})
}
