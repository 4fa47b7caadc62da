package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims carries the logged-in username in a session token
type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenMaker signs and validates session tokens for the HTTP facade.
// The login itself is mocked; the token only ties requests to a session.
type TokenMaker struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenMaker creates a token maker with the given signing secret
func NewTokenMaker(secret string, ttl time.Duration) *TokenMaker {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenMaker{secret: []byte(secret), ttl: ttl}
}

// NewToken issues a signed session token for a username
func (t *TokenMaker) NewToken(username string) (string, error) {
	now := time.Now()

	claims := SessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    "shopfront",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// ValidateToken parses a session token and returns its claims
func (t *TokenMaker) ValidateToken(tokenStr string) (*SessionClaims, error) {
	var claims SessionClaims

	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid session token")
	}

	return &claims, nil
}
