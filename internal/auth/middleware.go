package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/content-service/internal/domain"
	apperrors "github.com/spec-kit/content-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// AccessVerifier validates access tokens.
type AccessVerifier interface {
	VerifyAccess(token string) (*Claims, error)
}

// AuthMiddleware validates bearer tokens on protected routes.
type AuthMiddleware struct {
	tokens AccessVerifier
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens AccessVerifier) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle rejects requests without a bearer token (401) or with a token that
// fails verification or lacks admin rights (403).
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return apperrors.NewUnauthorized("missing bearer token")
	}

	claims, err := m.tokens.VerifyAccess(strings.TrimSpace(parts[1]))
	if err != nil {
		return apperrors.NewForbidden("invalid or expired token")
	}
	if !claims.IsAdmin {
		return apperrors.NewForbidden("admin rights required")
	}

	c.Locals(principalKey, &domain.Principal{AdminID: claims.AdminID, IsAdmin: claims.IsAdmin})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*domain.Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.Principal)
	return principal, ok
}
