package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/content-service/internal/api/dto"
	"github.com/spec-kit/content-service/internal/service"
)

// CareerHandler exposes job listing endpoints.
type CareerHandler struct {
	careers *service.CareerService
}

func NewCareerHandler(careers *service.CareerService) *CareerHandler {
	return &CareerHandler{careers: careers}
}

// List handles GET /api/careers.
func (h *CareerHandler) List(c *fiber.Ctx) error {
	items, err := h.careers.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// Get handles GET /api/careers/:id.
func (h *CareerHandler) Get(c *fiber.Ctx) error {
	career, err := h.careers.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(career)
}

// Create handles POST /api/careers.
func (h *CareerHandler) Create(c *fiber.Ctx) error {
	var req dto.CareerRequest
	if err := dto.Bind(c, &req); err != nil {
		return err
	}
	career, err := h.careers.Create(c.UserContext(), req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(career)
}

// Update handles PUT /api/careers/:id.
func (h *CareerHandler) Update(c *fiber.Ctx) error {
	var req dto.CareerRequest
	if err := dto.Bind(c, &req); err != nil {
		return err
	}
	career, err := h.careers.Update(c.UserContext(), c.Params("id"), req.Input())
	if err != nil {
		return err
	}
	return c.JSON(career)
}

// Delete handles DELETE /api/careers/:id.
func (h *CareerHandler) Delete(c *fiber.Ctx) error {
	if err := h.careers.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
