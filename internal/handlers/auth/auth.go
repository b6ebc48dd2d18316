package auth

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Package auth provides the login endpoints used when write protection is
// enabled. The only principal is the operator account from configuration.
// The HTTP methods are implemented in separate files (login.go, me.go).

// Issuer is the iss claim of tokens minted by Login.
const Issuer = "reservasjs-api"

// Handler holds the operator credential and the signing secret.
type Handler struct {
	username     string
	passwordHash []byte
	jwtSecret    string
	ttl          time.Duration
}

// New hashes the operator password once and returns the handler.
func New(username, password, jwtSecret string, ttl time.Duration) (*Handler, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Handler{username: username, passwordHash: hash, jwtSecret: jwtSecret, ttl: ttl}, nil
}
