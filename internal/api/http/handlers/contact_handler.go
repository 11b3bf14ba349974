package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/content-service/internal/api/dto"
	"github.com/spec-kit/content-service/internal/service"
)

// ContactHandler accepts contact form submissions.
type ContactHandler struct {
	contacts *service.ContactService
}

func NewContactHandler(contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// Submit handles POST /api/test.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req service.ContactInput
	if err := dto.Bind(c, &req); err != nil {
		return err
	}
	if _, err := h.contacts.Submit(c.UserContext(), req); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.ContactResponse{
		Message: service.ContactAccepted,
		Status:  http.StatusCreated,
	})
}
