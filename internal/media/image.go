package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	apperrors "github.com/spec-kit/content-service/pkg/util/errorutil"
)

// maxPixels bounds width*height so a small file declaring huge dimensions is
// rejected before it is decoded.
const maxPixels = 40_000_000

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// prepare validates the file against the constraints and scales it down to
// MaxWidth when wider. Scaled webp images are re-encoded as png since
// x/image only decodes webp.
func prepare(file *File, c Constraints) (Upload, error) {
	if len(file.Data) == 0 {
		return Upload{}, apperrors.NewBadRequest("EMPTY_FILE", "uploaded image is empty")
	}
	if c.MaxBytes > 0 && int64(len(file.Data)) > c.MaxBytes {
		return Upload{}, apperrors.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("image exceeds %d bytes", c.MaxBytes), http.StatusBadRequest,
			map[string]any{"maxBytes": c.MaxBytes, "size": len(file.Data)})
	}

	contentType := http.DetectContentType(file.Data)
	if !c.allows(contentType) {
		return Upload{}, apperrors.NewDomainError("UNSUPPORTED_MEDIA_TYPE",
			"only jpg, jpeg, png and webp images are allowed", http.StatusBadRequest,
			map[string]any{"contentType": contentType})
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(file.Data))
	if err != nil {
		return Upload{}, apperrors.NewBadRequest("INVALID_IMAGE", "image could not be decoded")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return Upload{}, apperrors.NewDomainError("IMAGE_DIMENSIONS_TOO_LARGE",
			fmt.Sprintf("image exceeds %d pixels", maxPixels), http.StatusBadRequest,
			map[string]any{"width": cfg.Width, "height": cfg.Height, "maxPixels": maxPixels})
	}

	upload := Upload{Data: file.Data, ContentType: contentType, Extension: extensions[contentType]}
	if c.MaxWidth <= 0 || cfg.Width <= c.MaxWidth {
		return upload, nil
	}

	src, _, err := image.Decode(bytes.NewReader(file.Data))
	if err != nil {
		return Upload{}, apperrors.NewBadRequest("INVALID_IMAGE", "image could not be decoded")
	}
	return scale(src, contentType, c.MaxWidth)
}

func scale(src image.Image, contentType string, maxWidth int) (Upload, error) {
	bounds := src.Bounds()
	targetHeight := bounds.Dy() * maxWidth / bounds.Dx()
	if targetHeight < 1 {
		targetHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, targetHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	switch contentType {
	case "image/jpeg":
		if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
			return Upload{}, fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		if err := png.Encode(&buf, dst); err != nil {
			return Upload{}, fmt.Errorf("encode png: %w", err)
		}
		contentType = "image/png"
	}
	return Upload{Data: buf.Bytes(), ContentType: contentType, Extension: extensions[contentType]}, nil
}
