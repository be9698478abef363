package handler

import "time"

// TimeFormat is the standard time format for API responses (RFC3339)
const TimeFormat = time.RFC3339

// User-visible error messages.
const (
	MsgInvalidBody      = "invalid request body"
	MsgValidationFailed = "validation failed"
	MsgSubmitFailed     = "Failed to submit content request"
	MsgLoadFailed       = "Failed to load content"
	MsgUpdateFailed     = "Failed to update content item"
	MsgItemNotFound     = "content item not found"
	MsgGuideNotFound    = "guide not found"
	MsgSlugTaken        = "slug already in use"
	MsgExportFailed     = "Failed to export content"
	MsgImportFailed     = "Failed to import content"
	MsgImportTooLarge   = "import document is too large"
	MsgFileRequired     = "file is required"
	MsgInternal         = "internal server error"
)
