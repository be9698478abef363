package printer

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-hub/internal/domain"
	"content-hub/internal/store"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	prevNoColor, prevOut, prevErr := color.NoColor, out, errOut
	t.Cleanup(func() {
		color.NoColor = prevNoColor
		out, errOut = prevOut, prevErr
	})

	color.NoColor = true
	var stdout, stderr bytes.Buffer
	SetOutput(&stdout, &stderr)
	return &stdout, &stderr
}

func TestError(t *testing.T) {
	t.Run("returns error with title", func(t *testing.T) {
		_, stderr := capture(t)
		err := Error("Test Error", "This is a test error", []string{})
		require.Error(t, err)
		require.Equal(t, "Test Error", err.Error())
		assert.Contains(t, stderr.String(), "This is a test error")
	})

	t.Run("numbers multiple suggestions", func(t *testing.T) {
		_, stderr := capture(t)
		err := Error("Test Error", "Explanation", []string{
			"First option",
			"Second option",
		})
		require.Equal(t, "Test Error", err.Error())
		assert.Contains(t, stderr.String(), "Either:")
		assert.Contains(t, stderr.String(), "  2. Second option")
	})
}

func TestFieldErrors(t *testing.T) {
	_, stderr := capture(t)
	err := FieldErrors("Invalid request", []domain.FieldError{
		{Field: "title", Reason: "cannot be blank"},
	})
	require.Equal(t, "Invalid request", err.Error())
	assert.Contains(t, stderr.String(), "title: cannot be blank")
}

func TestSuccessAndWarningPrefixes(t *testing.T) {
	stdout, _ := capture(t)
	Success("saved\n")
	Success("✓ already prefixed\n")
	Warning("careful\n")

	assert.Equal(t, "✓ saved\n✓ already prefixed\n⚠️  careful\n", stdout.String())
}

func TestItems(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		stdout, _ := capture(t)
		Items(nil)
		assert.Equal(t, "No content found\n", stdout.String())
	})

	t.Run("table", func(t *testing.T) {
		stdout, _ := capture(t)
		item := domain.NewRequestedItem("0123456789abcdef", domain.CreateInput{
			Title:       "Postgres indexing",
			Description: "B-tree versus GIN",
			Category:    "Databases",
		}, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

		Items([]domain.ContentItem{item})

		got := stdout.String()
		assert.Contains(t, got, "STATUS")
		assert.Contains(t, got, "01234567 ")
		assert.NotContains(t, got, "89abcdef")
		assert.Contains(t, got, "requested")
		assert.Contains(t, got, "2024-03-01")
	})
}

func TestCounts(t *testing.T) {
	stdout, _ := capture(t)
	Counts(store.Counts{All: 4, Requested: 1, InProgress: 1, Published: 2})

	assert.Equal(t,
		"all          4\nrequested    1\nin-progress  1\npublished    2\n",
		stdout.String())
}

func TestGuides(t *testing.T) {
	stdout, _ := capture(t)
	Guides(domain.Fixtures(time.Now()))

	got := stdout.String()
	assert.NotContains(t, got, "No guides")
	for _, item := range domain.Fixtures(time.Now()) {
		if item.IsGuide() {
			assert.Contains(t, got, item.Slug())
		}
	}
}
