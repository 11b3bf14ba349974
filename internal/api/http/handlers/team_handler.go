package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/content-service/internal/api/dto"
	"github.com/spec-kit/content-service/internal/service"
)

// TeamHandler exposes team member endpoints.
type TeamHandler struct {
	team *service.TeamService
}

func NewTeamHandler(team *service.TeamService) *TeamHandler {
	return &TeamHandler{team: team}
}

// List handles GET /api/team.
func (h *TeamHandler) List(c *fiber.Ctx) error {
	members, err := h.team.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(members)
}

// Get handles GET /api/team/:id.
func (h *TeamHandler) Get(c *fiber.Ctx) error {
	member, err := h.team.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(member)
}

// Create handles POST /api/team.
func (h *TeamHandler) Create(c *fiber.Ctx) error {
	var req dto.TeamMemberRequest
	file, err := bindWithImage(c, &req)
	if err != nil {
		return err
	}
	member, err := h.team.Create(c.UserContext(), req.Input(file))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(member)
}

// Update handles PUT /api/team/:id.
func (h *TeamHandler) Update(c *fiber.Ctx) error {
	var req dto.TeamMemberRequest
	file, err := bindWithImage(c, &req)
	if err != nil {
		return err
	}
	member, err := h.team.Update(c.UserContext(), c.Params("id"), req.Input(file))
	if err != nil {
		return err
	}
	return c.JSON(member)
}

// Delete handles DELETE /api/team/:id.
func (h *TeamHandler) Delete(c *fiber.Ctx) error {
	if err := h.team.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
