package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"photo-template-backend/internal/models"
	"photo-template-backend/internal/services"
)

type TemplatesHandler struct {
	composites *services.CompositeService
}

func NewTemplatesHandler(composites *services.CompositeService) *TemplatesHandler {
	return &TemplatesHandler{composites: composites}
}

// ListTemplates godoc
// @Summary     List templates
// @Description Returns the names of the template images available for orders. Each is served under /templates/<name>.
// @Tags        templates
// @Produce     json
// @Success     200 {object} models.TemplatesResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /templates [get]
func (h *TemplatesHandler) ListTemplates(c *gin.Context) {
	names, err := h.composites.Templates()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.TemplatesResponse{Templates: names})
}
