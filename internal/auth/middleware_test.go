package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/content-service/pkg/util/errorutil"
)

func newGateApp(svc *TokenService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code})
		},
	})
	gate := NewAuthMiddleware(svc)
	app.Get("/protected", gate.Handle, RequireAdmin(), func(c *fiber.Ctx) error {
		p, _ := PrincipalFromContext(c)
		return c.SendString(p.AdminID)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestTokens(t, clock)
	app := newGateApp(svc)

	valid, err := svc.IssueAccessToken("admin")
	require.NoError(t, err)

	nonAdmin := func() string {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{AdminID: "guest", IsAdmin: false,
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour))}})
		s, err := tok.SignedString([]byte(testAccessSecret))
		require.NoError(t, err)
		return s
	}()

	refresh, err := svc.IssueRefreshToken("admin")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "no bearer token", header: "Bearer ", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer garbage", want: http.StatusForbidden},
		{name: "refresh token as access", header: "Bearer " + refresh.Value, want: http.StatusForbidden},
		{name: "not admin", header: "Bearer " + nonAdmin, want: http.StatusForbidden},
		{name: "valid", header: "Bearer " + valid.Value, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestTokens(t, clock)
	app := newGateApp(svc)

	issued, err := svc.IssueAccessToken("admin")
	require.NoError(t, err)
	clock.Advance(time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issued.Value)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
