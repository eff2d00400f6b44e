package handlers

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"photo-template-backend/internal/models"
	"photo-template-backend/internal/services"
)

type ProcessHandler struct {
	composites     *services.CompositeService
	maxUploadBytes int64
}

func NewProcessHandler(composites *services.CompositeService, maxUploadBytes int64) *ProcessHandler {
	return &ProcessHandler{
		composites:     composites,
		maxUploadBytes: maxUploadBytes,
	}
}

// ProcessImage godoc
// @Summary     Composite a stored order
// @Description Places the order's stored photo centered on its template and saves the result as processed/<orderId>.png. Repeating the call overwrites the file with identical content.
// @Tags        process
// @Accept      json
// @Produce     json
// @Param       request body models.ProcessImageRequest true "Order to composite"
// @Success     200 {object} models.ProcessImageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /process-image [post]
func (h *ProcessHandler) ProcessImage(c *gin.Context) {
	var req models.ProcessImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: orderId is required", models.ErrMalformedInput))
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		respondError(c, fmt.Errorf("%w: invalid order id", models.ErrMalformedInput))
		return
	}

	processed, err := h.composites.ProcessOrder(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProcessImageResponse{
		OrderID:            processed.OrderID.String(),
		ProcessedImagePath: processed.Path,
		URL:                processed.URL,
	})
}

// ProcessInline godoc
// @Summary     Composite an uploaded photo
// @Description Places the uploaded photo centered on the named template and returns the PNG base64-encoded. Nothing is written to disk.
// @Tags        process
// @Accept      multipart/form-data
// @Produce     json
// @Param       template      formData string true "Template file name"
// @Param       uploadedPhoto formData file   true "Photo to place on the template"
// @Success     200 {object} models.InlineImageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     413 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /process-image/inline [post]
func (h *ProcessHandler) ProcessInline(c *gin.Context) {
	if err := parseMultipart(c, h.maxUploadBytes); err != nil {
		respondError(c, err)
		return
	}
	defer cleanupForm(c)

	photo, closePhoto, err := formUpload(c, "uploadedPhoto")
	if err != nil {
		respondError(c, err)
		return
	}
	defer closePhoto()

	template := strings.TrimSpace(c.PostForm("template"))
	if template == "" && photo != nil {
		respondError(c, fmt.Errorf("%w: template is required", models.ErrMalformedInput))
		return
	}

	res, err := h.composites.ProcessInline(c.Request.Context(), template, photo)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.InlineImageResponse{
		Image:       base64.StdEncoding.EncodeToString(res.Data),
		ContentType: res.ContentType,
		Width:       res.Width,
		Height:      res.Height,
	})
}
