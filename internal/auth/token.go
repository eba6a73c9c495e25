// Package auth issues and validates the bearer tokens that identify API
// callers. Tokens are signed JWTs; the rest of the system treats the
// service as opaque issue/validate operations.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/alucardavid/samplemed-blog/internal/domain"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// ErrInvalidToken is returned when a token fails parsing, signature
// verification, expiry, or type checks.
var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the authenticated caller extracted from a valid token.
type Identity struct {
	UserID   int64
	Username string
}

// Claims is the JWT payload carried by both token kinds.
type Claims struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies access/refresh token pairs.
type TokenService struct {
	secret          []byte
	accessLifetime  time.Duration
	refreshLifetime time.Duration
	now             func() time.Time
}

// NewTokenService creates a TokenService with the given signing secret
// and lifetimes.
func NewTokenService(secret string, accessLifetime, refreshLifetime time.Duration) *TokenService {
	return &TokenService{
		secret:          []byte(secret),
		accessLifetime:  accessLifetime,
		refreshLifetime: refreshLifetime,
		now:             time.Now,
	}
}

// Issue creates an access+refresh pair bound to the user.
func (s *TokenService) Issue(user *domain.User) (*domain.TokenPair, error) {
	access, err := s.sign(user, tokenTypeAccess, s.accessLifetime)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.sign(user, tokenTypeRefresh, s.refreshLifetime)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &domain.TokenPair{Access: access, Refresh: refresh}, nil
}

// ValidateAccess parses an access token and returns the caller identity.
func (s *TokenService) ValidateAccess(token string) (*Identity, error) {
	claims, err := s.parse(token, tokenTypeAccess)
	if err != nil {
		return nil, err
	}
	return &Identity{UserID: claims.UserID, Username: claims.Username}, nil
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *TokenService) Refresh(refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	return s.Issue(&domain.User{ID: claims.UserID, Username: claims.Username})
}

func (s *TokenService) sign(user *domain.User, tokenType string, lifetime time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:    user.ID,
		Username:  user.Username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *TokenService) parse(token, wantType string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
