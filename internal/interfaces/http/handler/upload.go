package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nasiya/backend/internal/application/upload"
	"go.uber.org/zap"
)

// UploadHandler handles image upload HTTP requests
type UploadHandler struct {
	BaseHandler
	uploadService *upload.UploadService
	logger        *zap.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *upload.UploadService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		logger:        logger,
	}
}

// Upload godoc
// @Summary      Upload an image
// @Description  Accepts a multipart file in the "image" field and stores
// @Description  it under the seller's namespace in object storage.
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        image formData file true "Image file (JPEG, PNG or WebP)"
// @Success      201 {object} dto.Response{data=upload.UploadResult}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      415 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.BadRequest(c, "Missing image file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	result, err := h.uploadService.UploadImage(c.Request.Context(), sellerID, data, contentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Fetch godoc
// @Summary      Stream a stored image back
// @Tags         uploads
// @Produce      image/jpeg
// @Param        path path string true "Storage path"
// @Success      200
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /uploads/{path} [get]
func (h *UploadHandler) Fetch(c *gin.Context) {
	storageKey := c.Param("path")

	body, contentType, err := h.uploadService.FetchImage(c.Request.Context(), storageKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer body.Close()

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, body); err != nil {
		h.logger.Warn("Failed to stream stored image",
			zap.String("path", storageKey),
			zap.Error(err))
	}
}
