package handler

import (
	"bytes"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/primstrade/platform/internal/api/metrics"
	"github.com/primstrade/platform/internal/api/response"
	"github.com/primstrade/platform/internal/core/domain"
	"github.com/primstrade/platform/internal/core/ports"
)

const maxImageSize = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadHandler accepts chart images for trade signals.
type UploadHandler struct {
	storage ports.ImageStorage
}

// NewUploadHandler builds an UploadHandler. A nil storage makes every upload
// fail with a 500 "not configured" response.
func NewUploadHandler(storage ports.ImageStorage) *UploadHandler {
	return &UploadHandler{storage: storage}
}

// Image uploads one image from the multipart field "image".
//
// @Summary      Upload a signal image
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  true  "JPEG, PNG, GIF or WebP, up to 5 MiB"
// @Success      200    {object}  envelopeDoc
// @Failure      400    {object}  errorEnvelope
// @Failure      401    {object}  errorEnvelope
// @Router       /api/v1/upload/image [post]
func (h *UploadHandler) Image(c echo.Context) error {
	if _, err := principalFrom(c); err != nil {
		return err
	}

	fh, err := c.FormFile("image")
	if err != nil {
		metrics.ImageUploadsTotal.WithLabelValues("rejected").Inc()
		return domain.NewValidationError("image", "No image file provided")
	}
	if fh.Size > maxImageSize {
		metrics.ImageUploadsTotal.WithLabelValues("rejected").Inc()
		return domain.NewValidationError("image", "image must be at most 5 MB")
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageSize+1))
	if err != nil {
		return err
	}
	if len(data) > maxImageSize {
		metrics.ImageUploadsTotal.WithLabelValues("rejected").Inc()
		return domain.NewValidationError("image", "image must be at most 5 MB")
	}
	if !allowedImageTypes[http.DetectContentType(data)] {
		metrics.ImageUploadsTotal.WithLabelValues("rejected").Inc()
		return domain.NewValidationError("image", "Allowed types: JPEG, PNG, GIF, WebP")
	}

	if h.storage == nil {
		metrics.ImageUploadsTotal.WithLabelValues("failed").Inc()
		return echo.NewHTTPError(http.StatusInternalServerError, "Image upload not configured")
	}

	url, err := h.storage.UploadImage(c.Request().Context(), bytes.NewReader(data), fh.Filename)
	if err != nil {
		metrics.ImageUploadsTotal.WithLabelValues("failed").Inc()
		return err
	}
	metrics.ImageUploadsTotal.WithLabelValues("success").Inc()

	return response.OK(c, http.StatusOK, "Image uploaded", uploadResponse{URL: url})
}
