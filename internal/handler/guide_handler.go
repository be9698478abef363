package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"content-hub/internal/guide"
	"content-hub/internal/service"
)

// GuideHandler serves published guides.
type GuideHandler struct {
	content service.ContentServiceInterface
}

// NewGuideHandler creates a new GuideHandler.
func NewGuideHandler(content service.ContentServiceInterface) *GuideHandler {
	return &GuideHandler{content: content}
}

// List handles GET /api/v1/guides.
func (h *GuideHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"guides": h.content.Guides()})
}

// Get handles GET /api/v1/guides/:slug.
func (h *GuideHandler) Get(c *gin.Context) {
	item, err := h.content.Guide(c.Param("slug"))
	if err != nil {
		respondError(c, err, MsgGuideNotFound)
		return
	}

	doc, err := guide.Build(item)
	if err != nil {
		respondError(c, err, MsgGuideNotFound)
		return
	}
	c.JSON(http.StatusOK, doc)
}
