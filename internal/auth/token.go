package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tickbox/tickbox/internal/model"
)

var (
	// ErrEmptySecret indicates the signing secret is blank.
	ErrEmptySecret = errors.New("token signing secret is empty")
	// ErrTokenInvalid indicates a token failed parsing or verification.
	ErrTokenInvalid = errors.New("invalid token")
)

// sessionClaims is the signed payload of a session token.
type sessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// TokenManager issues and verifies HS256 session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager. A zero ttl issues tokens without an exp claim.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrEmptySecret
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a token embedding the identity.
func (m *TokenManager) Issue(id model.Identity) (string, error) {
	if m == nil || len(m.secret) == 0 {
		return "", ErrEmptySecret
	}

	now := m.now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
		UserID: id.UserID,
		Email:  id.Email,
	}
	if m.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and registered claims and returns the embedded identity.
func (m *TokenManager) Verify(token string) (model.Identity, error) {
	if m == nil || len(m.secret) == 0 {
		return model.Identity{}, ErrEmptySecret
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return model.Identity{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	if claims.UserID == "" {
		return model.Identity{}, fmt.Errorf("%w: missing userId", ErrTokenInvalid)
	}

	return model.Identity{UserID: claims.UserID, Email: claims.Email}, nil
}
