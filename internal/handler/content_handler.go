package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"content-hub/internal/domain"
	"content-hub/internal/service"
)

// ContentHandler handles content collection requests.
type ContentHandler struct {
	content service.ContentServiceInterface
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(content service.ContentServiceInterface) *ContentHandler {
	return &ContentHandler{content: content}
}

// List handles GET /api/v1/content. The status and q parameters, when
// given, become the active filter and query.
func (h *ContentHandler) List(c *gin.Context) {
	status, hasStatus := c.GetQuery("status")
	query, hasQuery := c.GetQuery("q")
	if !hasStatus && !hasQuery {
		c.JSON(http.StatusOK, h.content.View())
		return
	}
	if !hasStatus {
		status = string(domain.FilterAll)
	}

	view, err := h.content.Browse(domain.Filter(status), query)
	if err != nil {
		respondError(c, err, MsgLoadFailed)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Create handles POST /api/v1/content. Failed submissions echo the input
// back so the client can keep the form filled in.
func (h *ContentHandler) Create(c *gin.Context) {
	var input domain.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: MsgInvalidBody})
		return
	}

	item, err := h.content.Submit(c.Request.Context(), input)
	if err != nil {
		status, body := statusFor(err, MsgSubmitFailed)
		body.Input = input
		if status >= http.StatusInternalServerError {
			_ = c.Error(err)
		}
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update handles PUT /api/v1/content/:id.
func (h *ContentHandler) Update(c *gin.Context) {
	var item domain.ContentItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: MsgInvalidBody + ": " + err.Error()})
		return
	}
	item.ID = c.Param("id")

	updated, err := h.content.UpdateItem(c.Request.Context(), item)
	if err != nil {
		respondError(c, err, MsgUpdateFailed)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Refresh handles POST /api/v1/content/refresh.
func (h *ContentHandler) Refresh(c *gin.Context) {
	if err := h.content.Load(c.Request.Context(), service.TriggerManual); err != nil {
		respondError(c, err, MsgLoadFailed)
		return
	}
	c.JSON(http.StatusOK, h.content.View())
}

// Counts handles GET /api/v1/content/counts.
func (h *ContentHandler) Counts(c *gin.Context) {
	c.JSON(http.StatusOK, h.content.Counts())
}

// Categories handles GET /api/v1/categories.
func (h *ContentHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.content.Categories()})
}
