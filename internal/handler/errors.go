package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"content-hub/internal/domain"
	"content-hub/internal/middleware"
	"content-hub/internal/repository"
	"content-hub/internal/validator"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
	Input  any                 `json:"input,omitempty"`
}

// statusFor maps a service error to its HTTP status and message. fallback
// is the message used for data source failures.
func statusFor(err error, fallback string) (int, ErrorResponse) {
	if fields := validator.FieldsOf(err); fields != nil {
		return http.StatusUnprocessableEntity, ErrorResponse{Error: MsgValidationFailed, Fields: fields}
	}
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrorResponse{Error: MsgItemNotFound}
	case errors.Is(err, domain.ErrGuideNotFound):
		return http.StatusNotFound, ErrorResponse{Error: MsgGuideNotFound}
	case errors.Is(err, domain.ErrDuplicateSlug):
		return http.StatusConflict, ErrorResponse{Error: MsgSlugTaken}
	case errors.Is(err, domain.ErrInvalidFilter),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrSlugWithoutPublished),
		errors.Is(err, domain.ErrPublishedWithoutSlug),
		errors.Is(err, domain.ErrInvalidTheme),
		errors.Is(err, domain.ErrInvalidReadingMode),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrInvalidImport):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error()}
	case errors.Is(err, repository.ErrImportUnsupported):
		return http.StatusNotImplemented, ErrorResponse{Error: err.Error()}
	case repository.IsSourceError(err):
		return http.StatusBadGateway, ErrorResponse{Error: fallback}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: MsgInternal}
}

// respondError writes the error response for err and logs server-side failures.
func respondError(c *gin.Context, err error, fallback string) ErrorResponse {
	status, body := statusFor(err, fallback)
	if status >= http.StatusInternalServerError {
		middleware.GetLogger(c).Error(fallback, slog.String("error", err.Error()))
		_ = c.Error(err)
	}
	c.JSON(status, body)
	return body
}
