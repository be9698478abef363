package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"content-hub/internal/domain"
	"content-hub/internal/service"
)

// PreferencesHandler handles display preference requests.
type PreferencesHandler struct {
	prefs service.PreferencesServiceInterface
}

// NewPreferencesHandler creates a new PreferencesHandler.
func NewPreferencesHandler(prefs service.PreferencesServiceInterface) *PreferencesHandler {
	return &PreferencesHandler{prefs: prefs}
}

// Get handles GET /api/v1/preferences.
func (h *PreferencesHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.prefs.Get())
}

// Patch handles PATCH /api/v1/preferences.
func (h *PreferencesHandler) Patch(c *gin.Context) {
	var patch domain.PreferencesPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: MsgInvalidBody})
		return
	}

	prefs, err := h.prefs.Update(patch)
	if err != nil {
		respondError(c, err, MsgInternal)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// ToggleTheme handles POST /api/v1/preferences/theme/toggle.
func (h *PreferencesHandler) ToggleTheme(c *gin.Context) {
	c.JSON(http.StatusOK, h.prefs.ToggleTheme())
}
