package domain

import "errors"

var (
	ErrItemNotFound         = errors.New("content item not found")
	ErrGuideNotFound        = errors.New("guide not found")
	ErrInvalidFilter        = errors.New("invalid filter")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrSlugWithoutPublished = errors.New("slug is only allowed on published items")
	ErrPublishedWithoutSlug = errors.New("published items require a slug")
	ErrDuplicateSlug        = errors.New("slug already in use")
	ErrInvalidTheme         = errors.New("invalid theme")
	ErrInvalidReadingMode   = errors.New("invalid reading mode")
)

// FieldError is a field-scoped validation failure.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}
