package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/content-service/internal/api/dto"
	"github.com/spec-kit/content-service/internal/media"
)

func bindWithImage(c *fiber.Ctx, req any) (*media.File, error) {
	if err := dto.Bind(c, req); err != nil {
		return nil, err
	}
	return dto.ImageFile(c)
}
