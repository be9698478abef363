package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-hub/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestValidateCreateInput(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name       string
		input      domain.CreateInput
		wantErr    bool
		wantFields []string
	}{
		{
			name: "valid request",
			input: domain.CreateInput{
				Title:       "Intro to Caching",
				Description: "A short primer on cache eviction strategies.",
				Category:    "Performance",
			},
		},
		{
			name: "boundary lengths",
			input: domain.CreateInput{
				Title:       strings.Repeat("t", TitleMaxLength),
				Description: strings.Repeat("d", DescriptionMinLength),
				Category:    "X",
			},
		},
		{
			name: "maximum description",
			input: domain.CreateInput{
				Title:       "T",
				Description: strings.Repeat("d", DescriptionMaxLength),
				Category:    "Other",
			},
		},
		{
			name: "multibyte title counted in characters",
			input: domain.CreateInput{
				Title:       strings.Repeat("é", TitleMaxLength),
				Description: "ten chars!",
				Category:    "CSS",
			},
		},
		{
			name:       "empty title and short description",
			input:      domain.CreateInput{Title: "", Description: "short", Category: "X"},
			wantErr:    true,
			wantFields: []string{"description", "title"},
		},
		{
			name: "title too long",
			input: domain.CreateInput{
				Title:       strings.Repeat("t", TitleMaxLength+1),
				Description: "A long enough description",
				Category:    "React",
			},
			wantErr:    true,
			wantFields: []string{"title"},
		},
		{
			name: "description too long",
			input: domain.CreateInput{
				Title:       "Title",
				Description: strings.Repeat("d", DescriptionMaxLength+1),
				Category:    "React",
			},
			wantErr:    true,
			wantFields: []string{"description"},
		},
		{
			name:       "missing category",
			input:      domain.CreateInput{Title: "Title", Description: "A long enough description"},
			wantErr:    true,
			wantFields: []string{"category"},
		},
		{
			name:       "everything missing",
			input:      domain.CreateInput{},
			wantErr:    true,
			wantFields: []string{"category", "description", "title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCreateInput(&tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)

			fields := FieldsOf(err)
			var got []string
			for _, f := range fields {
				got = append(got, f.Field)
				assert.NotEmpty(t, f.Reason)
			}
			assert.Equal(t, tt.wantFields, got)
		})
	}
}

func TestValidateCreateInput_Reasons(t *testing.T) {
	v := NewValidator()
	input := domain.CreateInput{Title: "", Description: "short", Category: "X"}

	err := v.ValidateCreateInput(&input)
	require.Error(t, err)

	reasons := map[string]string{}
	for _, f := range FieldsOf(err) {
		reasons[f.Field] = f.Reason
	}
	assert.Equal(t, "title_required", reasons["title"])
	assert.Equal(t, "description_too_short", reasons["description"])
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidatePreferencesPatch(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		patch   domain.PreferencesPatch
		wantErr string
	}{
		{name: "empty patch", patch: domain.PreferencesPatch{}},
		{name: "valid full patch", patch: domain.PreferencesPatch{
			Username:       ptr("maya"),
			Theme:          ptr(domain.ThemeDark),
			ReadingMode:    ptr(domain.ReadingModeCompact),
			ShowAnimations: ptr(false),
			AutoRefresh:    ptr(false),
		}},
		{name: "empty username", patch: domain.PreferencesPatch{Username: ptr("")}, wantErr: "username"},
		{name: "long username", patch: domain.PreferencesPatch{Username: ptr(strings.Repeat("u", UsernameMaxLength+1))}, wantErr: "username"},
		{name: "unknown theme", patch: domain.PreferencesPatch{Theme: ptr(domain.Theme("sepia"))}, wantErr: "theme"},
		{name: "empty theme", patch: domain.PreferencesPatch{Theme: ptr(domain.Theme(""))}, wantErr: "theme"},
		{name: "unknown reading mode", patch: domain.PreferencesPatch{ReadingMode: ptr(domain.ReadingMode("full"))}, wantErr: "readingMode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePreferencesPatch(&tt.patch)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConvertValidationErrors_NonValidationError(t *testing.T) {
	fields := ConvertValidationErrors(assert.AnError)
	require.Len(t, fields, 1)
	assert.Equal(t, "unknown", fields[0].Field)
	assert.Equal(t, assert.AnError.Error(), fields[0].Reason)

	assert.Nil(t, ConvertValidationErrors(nil))
	assert.Nil(t, FieldsOf(assert.AnError))
}
