// Package identity wraps bearer credential verification. The rest of the
// application only ever sees a Verifier and the Identity it yields; the
// token format is this package's concern alone.
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is a verified caller.
type Identity struct {
	Email string
	Name  string
}

// Verifier validates a bearer credential and resolves it to an identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// TokenManager is an HS256 JWT implementation of Verifier. It also issues
// tokens, which keeps local development and tests self-contained.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

type claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Issue signs a token for the given identity.
func (m *TokenManager) Issue(email, name string) (string, time.Time, error) {
	exp := time.Now().Add(m.ttl)
	c := &claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	s, err := t.SignedString(m.secret)
	return s, exp, err
}

func (m *TokenManager) Verify(_ context.Context, token string) (Identity, error) {
	c := &claims{}
	tkn, err := jwt.ParseWithClaims(token, c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return Identity{}, ErrInvalidToken
	}
	if c.Email == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{Email: c.Email, Name: c.Name}, nil
}

var _ Verifier = (*TokenManager)(nil)
