package service_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/content-service/internal/auth"
	"github.com/spec-kit/content-service/internal/service"
)

func newAuthService(t *testing.T, password string) (*service.AuthService, *auth.TokenService) {
	t.Helper()
	tokens, err := auth.NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	return service.NewAuthService(tokens, "admin", password), tokens
}

func TestAuthService_Login(t *testing.T) {
	svc, tokens := newAuthService(t, "letmein")

	_, err := svc.Login("")
	requireBadRequest(t, err, "VALIDATION_FAILED")

	_, err = svc.Login("wrong")
	requireDomainError(t, err, http.StatusUnauthorized, "UNAUTHORIZED")

	session, err := svc.Login("letmein")
	require.NoError(t, err)
	claims, err := tokens.VerifyAccess(session.Access.Value)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.AdminID)
	assert.True(t, claims.IsAdmin)

	_, err = tokens.VerifyAccess(session.Refresh.Value)
	assert.Error(t, err)
	assert.Equal(t, 7*24*60*60, svc.RefreshTTL())
}

func TestAuthService_LoginWithBcryptSecret(t *testing.T) {
	hash, err := auth.HashPassword("letmein", 4)
	require.NoError(t, err)
	svc, _ := newAuthService(t, hash)

	_, err = svc.Login("letmein")
	assert.NoError(t, err)
	_, err = svc.Login(hash)
	requireDomainError(t, err, http.StatusUnauthorized, "UNAUTHORIZED")
}

func TestAuthService_Refresh(t *testing.T) {
	svc, tokens := newAuthService(t, "letmein")

	_, err := svc.Refresh("")
	requireDomainError(t, err, http.StatusUnauthorized, "UNAUTHORIZED")

	_, err = svc.Refresh("garbage")
	requireDomainError(t, err, http.StatusForbidden, "FORBIDDEN")

	refresh, err := tokens.IssueRefreshToken("admin")
	require.NoError(t, err)
	access, err := svc.Refresh(refresh.Value)
	require.NoError(t, err)

	claims, err := tokens.VerifyAccess(access.Value)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.AdminID)
}
