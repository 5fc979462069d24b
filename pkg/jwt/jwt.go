// Package jwt signs and checks the HS256 session tokens handed out at login.
package jwt

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

const (
	TokenTTL = 24 * time.Hour

	issuer        = "go-datamonitor"
	defaultSecret = "change-me-datamonitor-secret"
)

// Session identifies who a token was issued to. TokenVersion must match the
// user's stored version for the token to stay usable.
type Session struct {
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Privileges   []string  `json:"privileges"`
	TokenVersion string    `json:"token_version"`
}

type Claims struct {
	Session
	jwt.RegisteredClaims
}

// JWT_SECRET, read on every call so tests can swap it.
func secret() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte(defaultSecret)
}

// Sign issues a token for s that expires after TokenTTL.
func Sign(s Session) (string, error) {
	now := time.Now()
	claims := Claims{Session: s}
	claims.Issuer = issuer
	claims.Subject = s.UserID.String()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(TokenTTL))
	return jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString(secret())
}

// Parse returns the claims of a token we signed. Any failure, including a
// foreign issuer or a non-HMAC algorithm, is ErrInvalidToken.
func Parse(raw string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (interface{}, error) { return secret(), nil },
		jwt.WithIssuer(issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
