package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/content-service/internal/api/dto"
	"github.com/spec-kit/content-service/internal/service"
)

// BlogHandler exposes blog endpoints.
type BlogHandler struct {
	blog *service.BlogService
}

func NewBlogHandler(blog *service.BlogService) *BlogHandler {
	return &BlogHandler{blog: blog}
}

// List handles GET /api/blog?page=N. Missing or malformed pages read as 1.
func (h *BlogHandler) List(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil {
		page = 1
	}
	result, err := h.blog.Page(c.UserContext(), page)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// Get handles GET /api/blog/:id.
func (h *BlogHandler) Get(c *fiber.Ctx) error {
	post, err := h.blog.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(post)
}

// Create handles POST /api/blog.
func (h *BlogHandler) Create(c *fiber.Ctx) error {
	var req dto.BlogPostRequest
	file, err := bindWithImage(c, &req)
	if err != nil {
		return err
	}
	post, err := h.blog.Create(c.UserContext(), req.Input(file))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(post)
}

// Update handles PUT /api/blog/:id.
func (h *BlogHandler) Update(c *fiber.Ctx) error {
	var req dto.BlogPostRequest
	file, err := bindWithImage(c, &req)
	if err != nil {
		return err
	}
	post, err := h.blog.Update(c.UserContext(), c.Params("id"), req.Input(file))
	if err != nil {
		return err
	}
	return c.JSON(post)
}

// Delete handles DELETE /api/blog/:id.
func (h *BlogHandler) Delete(c *fiber.Ctx) error {
	if err := h.blog.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
