package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/content-service/internal/api/dto"
	"github.com/spec-kit/content-service/internal/service"
)

// OfferingHandler exposes /api/services endpoints. Offerings are the
// services the business advertises.
type OfferingHandler struct {
	svc *service.OfferingService
}

func NewOfferingHandler(svc *service.OfferingService) *OfferingHandler {
	return &OfferingHandler{svc: svc}
}

func (h *OfferingHandler) List(c *fiber.Ctx) error {
	items, err := h.svc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (h *OfferingHandler) Get(c *fiber.Ctx) error {
	item, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(item)
}

func (h *OfferingHandler) Create(c *fiber.Ctx) error {
	var req dto.OfferingRequest
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

func (h *OfferingHandler) Update(c *fiber.Ctx) error {
	var req dto.OfferingRequest
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

func (h *OfferingHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
