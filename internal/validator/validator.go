package validator

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"content-hub/internal/domain"
)

const (
	TitleMaxLength       = 100
	DescriptionMinLength = 10
	DescriptionMaxLength = 500
	UsernameMaxLength    = 50
)

var (
	validThemes       = []interface{}{domain.ThemeLight, domain.ThemeDark}
	validReadingModes = []interface{}{domain.ReadingModeCompact, domain.ReadingModeDetailed}
)

// ValidationError carries field-level validation failures.
type ValidationError struct {
	Fields []domain.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator provides validation methods for user input.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCreateInput validates a content request submission.
// Lengths are counted in characters, not bytes, and input is not trimmed.
func (v *Validator) ValidateCreateInput(in *domain.CreateInput) error {
	err := validation.ValidateStruct(in,
		validation.Field(&in.Title,
			validation.Required.Error("title_required"),
			validation.RuneLength(0, TitleMaxLength).Error("title_too_long"),
		),
		validation.Field(&in.Description,
			validation.Required.Error("description_required"),
			validation.RuneLength(DescriptionMinLength, 0).Error("description_too_short"),
			validation.RuneLength(0, DescriptionMaxLength).Error("description_too_long"),
		),
		validation.Field(&in.Category,
			validation.Required.Error("category_required"),
		),
	)
	return wrap(err)
}

// ValidatePreferencesPatch validates a partial preferences update.
func (v *Validator) ValidatePreferencesPatch(p *domain.PreferencesPatch) error {
	err := validation.ValidateStruct(p,
		validation.Field(&p.Username,
			validation.NilOrNotEmpty.Error("username_required"),
			validation.RuneLength(0, UsernameMaxLength).Error("username_too_long"),
		),
		validation.Field(&p.Theme,
			validation.NilOrNotEmpty.Error("invalid_theme"),
			validation.In(validThemes...).Error("invalid_theme"),
		),
		validation.Field(&p.ReadingMode,
			validation.NilOrNotEmpty.Error("invalid_reading_mode"),
			validation.In(validReadingModes...).Error("invalid_reading_mode"),
		),
	)
	return wrap(err)
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Fields: ConvertValidationErrors(err)}
}

// ConvertValidationErrors converts ozzo validation errors to domain FieldErrors,
// sorted by field name.
func ConvertValidationErrors(err error) []domain.FieldError {
	var fields []domain.FieldError

	var ve validation.Errors
	if errors.As(err, &ve) {
		for field, fieldErr := range ve {
			fields = append(fields, domain.FieldError{
				Field:  field,
				Reason: fieldErr.Error(),
			})
		}
	} else if err != nil {
		fields = append(fields, domain.FieldError{
			Field:  "unknown",
			Reason: err.Error(),
		})
	}

	sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return fields
}

// FieldsOf extracts field errors from err, or nil if err is not a validation error.
func FieldsOf(err error) []domain.FieldError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
