package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/content-service/internal/api/dto"
	"github.com/spec-kit/content-service/internal/service"
)

// AboutHandler exposes the about section.
type AboutHandler struct {
	about *service.AboutService
}

func NewAboutHandler(about *service.AboutService) *AboutHandler {
	return &AboutHandler{about: about}
}

// Get handles GET /api/about.
func (h *AboutHandler) Get(c *fiber.Ctx) error {
	about, err := h.about.Get(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(about)
}

// Save handles POST /api/about: 201 when the section is created, 200 when
// an existing one is updated.
func (h *AboutHandler) Save(c *fiber.Ctx) error {
	var req dto.AboutRequest
	file, err := bindWithImage(c, &req)
	if err != nil {
		return err
	}
	about, created, err := h.about.CreateOrUpdate(c.UserContext(), req.Input(file))
	if err != nil {
		return err
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(about)
}

// Delete handles DELETE /api/about.
func (h *AboutHandler) Delete(c *fiber.Ctx) error {
	if err := h.about.Delete(c.UserContext()); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
