package dto

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/content-service/internal/media"
	apperrors "github.com/spec-kit/content-service/pkg/util/errorutil"
)

// ImageField is the multipart field carrying an uploaded image.
const ImageField = "image"

// ImageFile reads the uploaded image, if any. Non-multipart requests and
// requests without the field yield nil.
func ImageFile(c *fiber.Ctx) (*media.File, error) {
	if !strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, apperrors.NewBadRequest("INVALID_MULTIPART", "could not read multipart form")
	}
	files := form.File[ImageField]
	if len(files) == 0 {
		return nil, nil
	}
	fh := files[0]

	f, err := fh.Open()
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &media.File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// Bind parses a JSON, urlencoded or multipart body into out.
func Bind(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		if errors.Is(err, fiber.ErrUnprocessableEntity) {
			return apperrors.NewDomainError("UNSUPPORTED_CONTENT_TYPE", "unsupported content type", http.StatusUnsupportedMediaType, nil)
		}
		return apperrors.NewBadRequest("BAD_REQUEST", "invalid payload")
	}
	return nil
}
