package service

import (
	"strings"

	"github.com/spec-kit/content-service/internal/auth"
	"github.com/spec-kit/content-service/internal/domain"
	apperrors "github.com/spec-kit/content-service/pkg/util/errorutil"
)

// Session is the result of a successful login.
type Session struct {
	Access  domain.IssuedToken
	Refresh domain.IssuedToken
}

// AuthService authenticates the single administrator.
type AuthService struct {
	tokens        *auth.TokenService
	adminID       string
	adminPassword string
}

// NewAuthService builds the service. adminPassword may be plain text or a
// bcrypt hash.
func NewAuthService(tokens *auth.TokenService, adminID, adminPassword string) *AuthService {
	return &AuthService{tokens: tokens, adminID: adminID, adminPassword: adminPassword}
}

// Login checks the admin password and issues an access and refresh token.
func (s *AuthService) Login(password string) (*Session, error) {
	if strings.TrimSpace(password) == "" {
		return nil, apperrors.NewValidationError("password is required", map[string]any{"password": "is required"})
	}
	if !auth.MatchAdminPassword(s.adminPassword, password) {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	access, err := s.tokens.IssueAccessToken(s.adminID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	refresh, err := s.tokens.IssueRefreshToken(s.adminID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &Session{Access: access, Refresh: refresh}, nil
}

// Refresh exchanges a refresh token for a new access token. The refresh token
// itself is not rotated.
func (s *AuthService) Refresh(refreshToken string) (domain.IssuedToken, error) {
	if refreshToken == "" {
		return domain.IssuedToken{}, apperrors.NewUnauthorized("refresh token missing")
	}
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return domain.IssuedToken{}, apperrors.NewForbidden("invalid or expired refresh token")
	}
	access, err := s.tokens.IssueAccessToken(claims.AdminID)
	if err != nil {
		return domain.IssuedToken{}, apperrors.NewInternalError(err)
	}
	return access, nil
}

// RefreshTTL is the lifetime of issued refresh tokens.
func (s *AuthService) RefreshTTL() int {
	return int(s.tokens.RefreshTTL().Seconds())
}
