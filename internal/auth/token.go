package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/content-service/internal/domain"
)

// ErrInvalidToken is wrapped by every verification failure.
var ErrInvalidToken = errors.New("invalid token")

// TokenService issues and verifies the admin access and refresh tokens.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// TokenOption customizes a TokenService.
type TokenOption func(*TokenService)

// WithClock replaces the wall clock used for issuing and verifying tokens.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

// NewTokenService builds a service. The two secrets must be set and distinct.
func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, opts ...TokenOption) (*TokenService, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("token secrets must not be empty")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("access and refresh secrets must differ")
	}
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}

	s := &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Claims describes the JWT payload.
type Claims struct {
	AdminID string `json:"adminId"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// RefreshTTL returns the lifetime of refresh tokens, used for the cookie Max-Age.
func (s *TokenService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

// IssueAccessToken signs a short-lived access token for the principal.
func (s *TokenService) IssueAccessToken(principalID string) (domain.IssuedToken, error) {
	return s.issue(principalID, s.accessSecret, s.accessTTL)
}

// IssueRefreshToken signs a long-lived refresh token for the principal.
func (s *TokenService) IssueRefreshToken(principalID string) (domain.IssuedToken, error) {
	return s.issue(principalID, s.refreshSecret, s.refreshTTL)
}

// VerifyAccess validates an access token.
func (s *TokenService) VerifyAccess(token string) (*Claims, error) {
	return s.Verify(token, s.accessSecret)
}

// VerifyRefresh validates a refresh token.
func (s *TokenService) VerifyRefresh(token string) (*Claims, error) {
	return s.Verify(token, s.refreshSecret)
}

func (s *TokenService) issue(principalID string, secret []byte, ttl time.Duration) (domain.IssuedToken, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(ttl)
	claims := &Claims{
		AdminID: principalID,
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return domain.IssuedToken{}, err
	}
	return domain.IssuedToken{Value: tokenString, ExpiresAt: expiresAt}, nil
}

// Verify validates signature, algorithm and expiry against the given secret.
func (s *TokenService) Verify(tokenStr string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", ErrInvalidToken)
	}
	return claims, nil
}
