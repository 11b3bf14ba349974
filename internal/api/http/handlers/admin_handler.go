package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/content-service/internal/api/dto"
	"github.com/spec-kit/content-service/internal/auth"
	"github.com/spec-kit/content-service/internal/service"
	apperrors "github.com/spec-kit/content-service/pkg/util/errorutil"
)

// RefreshCookie is the cookie carrying the refresh token.
const RefreshCookie = "refreshToken"

// AdminHandler exposes admin authentication endpoints.
type AdminHandler struct {
	authService *service.AuthService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := dto.Bind(c, &req); err != nil {
		return err
	}

	session, err := h.authService.Login(req.Password)
	if err != nil {
		return err
	}

	c.Cookie(h.refreshCookie(session.Refresh.Value, h.authService.RefreshTTL()))
	return c.JSON(dto.TokenResponse{Token: session.Access.Value})
}

// Refresh handles POST /api/admin/refresh.
func (h *AdminHandler) Refresh(c *fiber.Ctx) error {
	access, err := h.authService.Refresh(c.Cookies(RefreshCookie))
	if err != nil {
		return err
	}
	return c.JSON(dto.TokenResponse{Token: access.Value})
}

// Logout handles POST /api/admin/logout.
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	cookie := h.refreshCookie("", 0)
	cookie.Expires = time.Unix(0, 0)
	c.Cookie(cookie)
	return c.SendStatus(http.StatusNoContent)
}

// Protected handles GET /api/admin/protected.
func (h *AdminHandler) Protected(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing principal")
	}
	return c.JSON(dto.ProtectedResponse{Message: "Přístup povolen", AdminID: principal.AdminID})
}

func (h *AdminHandler) refreshCookie(value string, maxAge int) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     RefreshCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	}
}
