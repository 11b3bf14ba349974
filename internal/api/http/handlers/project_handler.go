package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/content-service/internal/api/dto"
	"github.com/spec-kit/content-service/internal/service"
)

// ProjectHandler exposes /api/projects endpoints.
type ProjectHandler struct {
	svc *service.ProjectService
}

func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

func (h *ProjectHandler) List(c *fiber.Ctx) error {
	items, err := h.svc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	item, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(item)
}

func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var req dto.ProjectRequest
	file, err := bindWithImage(c, &req)
	if err != nil {
		return err
	}
	item, err := h.svc.Create(c.UserContext(), req.Input(file))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(item)
}

func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	var req dto.ProjectRequest
	file, err := bindWithImage(c, &req)
	if err != nil {
		return err
	}
	item, err := h.svc.Update(c.UserContext(), c.Params("id"), req.Input(file))
	if err != nil {
		return err
	}
	return c.JSON(item)
}

func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
