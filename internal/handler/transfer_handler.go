package handler

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"content-hub/internal/domain"
	"content-hub/internal/middleware"
	"content-hub/internal/service"
)

// MaxImportSize bounds the body of an import request.
const MaxImportSize = 10 << 20 // 10MB

// TransferHandler handles bulk import and export of the collection.
type TransferHandler struct {
	transfer service.TransferServiceInterface
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transfer service.TransferServiceInterface) *TransferHandler {
	return &TransferHandler{transfer: transfer}
}

// ExportRequest holds the query parameters of an export.
type ExportRequest struct {
	Format string `form:"format" binding:"omitempty,oneof=ndjson yaml"`
}

// ginStreamWriter wraps gin.ResponseWriter for streaming.
type ginStreamWriter struct {
	writer gin.ResponseWriter
}

func (w *ginStreamWriter) Write(data []byte) (int, error) {
	return w.writer.Write(data)
}

func (w *ginStreamWriter) Flush() {
	w.writer.Flush()
}

// Export handles GET /api/v1/content/export?format=ndjson|yaml
func (h *TransferHandler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: domain.ErrInvalidFormat.Error()})
		return
	}

	// Default format is ndjson
	format := domain.FormatNDJSON
	if req.Format != "" {
		format = domain.TransferFormat(req.Format)
	}

	contentType := "application/x-ndjson"
	if format == domain.FormatYAML {
		contentType = "application/yaml"
	}
	c.Header("Content-Type", contentType)
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Content-Disposition", `attachment; filename="content.`+string(format)+`"`)

	log := middleware.GetLogger(c)
	count, err := h.transfer.Export(c.Request.Context(), format, &ginStreamWriter{writer: c.Writer})
	if err != nil {
		if !c.Writer.Written() {
			c.Header("Content-Disposition", "")
			c.Header("Content-Type", "")
			respondError(c, err, MsgExportFailed)
			return
		}
		// Can't change the status once streaming has started
		log.Error("Streaming export failed", slog.String("error", err.Error()))
		return
	}
	log.Debug("Export streamed", slog.String("format", string(format)), slog.Int("count", count))
}

// Import handles POST /api/v1/content/import. The document is either the
// raw body or a multipart "file" field. The format comes from the format
// query parameter, the file extension or the content type, in that order.
func (h *TransferHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxImportSize)

	var (
		body     io.Reader = c.Request.Body
		filename string
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		file, header, err := c.Request.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: MsgImportTooLarge})
				return
			}
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: MsgFileRequired})
			return
		}
		defer file.Close()
		body, filename = file, header.Filename
	}

	format, err := importFormat(c.Query("format"), filename, c.ContentType())
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.transfer.Import(c.Request.Context(), format, body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: MsgImportTooLarge})
		case errors.Is(err, domain.ErrInvalidImport):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			respondError(c, err, MsgImportFailed)
		}
		return
	}

	middleware.GetLogger(c).Info("Import completed",
		slog.String("format", string(format)),
		slog.Int("inserted", result.Inserted),
		slog.Int("failed", result.FailureCount))
	c.JSON(http.StatusOK, result)
}

func importFormat(query, filename, contentType string) (domain.TransferFormat, error) {
	if query != "" {
		return domain.ParseTransferFormat(query)
	}
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		return domain.ParseTransferFormat(ext)
	}
	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch mediaType {
	case "application/x-ndjson", "application/jsonl", "application/ndjson":
		return domain.FormatNDJSON, nil
	case "application/yaml", "application/x-yaml", "text/yaml":
		return domain.FormatYAML, nil
	}
	return "", domain.ErrInvalidFormat
}
