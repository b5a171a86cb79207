// Package auth issues and verifies admin session tokens and holds the
// helpers that move an authenticated identity through a request.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/clinic/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "clinic"

// Identity is the administrator a verified token resolves to.
type Identity struct {
	AdminID  string `json:"id"`
	Username string `json:"username"`
}

// Claims combines the registered claims with the admin username. The admin
// id travels in the standard subject claim.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// TokenService signs and verifies HS256 session tokens. It holds no mutable
// state after construction and is safe for concurrent use.
type TokenService struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// Option tweaks a TokenService.
type Option func(*TokenService)

// WithClock replaces time.Now, for tests that need to move through expiry.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) { s.now = now }
}

func NewTokenService(secretKey []byte, validity time.Duration, opts ...Option) *TokenService {
	s := &TokenService{secret: secretKey, validity: validity, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validity is the fixed lifetime given to every issued token.
func (s *TokenService) Validity() time.Duration { return s.validity }

// Issue signs a token for id and returns it with its expiry time.
func (s *TokenService) Issue(id Identity) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.validity)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   id.AdminID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Username: id.Username,
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Verify checks the signature and expiry of tokenString. It returns
// common.ErrTokenExpired for a well-signed but expired token and
// common.ErrInvalidToken for everything else.
func (s *TokenService) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, common.ErrTokenExpired
		}
		return Identity{}, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return Identity{}, common.ErrInvalidToken
	}

	return Identity{AdminID: claims.Subject, Username: claims.Username}, nil
}
