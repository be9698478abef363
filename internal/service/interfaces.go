package service

import (
	"context"
	"io"

	"content-hub/internal/domain"
	"content-hub/internal/store"
)

// Refresh triggers, used as the trigger label of refresh metrics.
const (
	TriggerStartup = "startup"
	TriggerManual  = "manual"
	TriggerAuto    = "auto"
	TriggerEvent   = "event"
	TriggerImport  = "import"
)

// ContentView is the derived, display-ready projection of the content store.
type ContentView struct {
	Items   []domain.ContentItem `json:"items"`
	Counts  store.Counts         `json:"counts"`
	Filter  domain.Filter        `json:"filter"`
	Query   string               `json:"query"`
	Loading bool                 `json:"isLoading"`
	Error   string               `json:"error,omitempty"`
}

// ContentServiceInterface defines the content operations used by handlers.
// Used for dependency injection and mocking in tests.
type ContentServiceInterface interface {
	// Load fetches the full collection from the source and replaces the store contents.
	Load(ctx context.Context, trigger string) error
	// Submit validates input, creates the item at the source and prepends it to the store.
	Submit(ctx context.Context, input domain.CreateInput) (domain.ContentItem, error)
	// UpdateItem persists an editorial update and replaces the item in the store.
	UpdateItem(ctx context.Context, item domain.ContentItem) (domain.ContentItem, error)
	// Browse sets the active filter and query and returns the resulting view.
	Browse(filter domain.Filter, query string) (ContentView, error)
	// View returns the view for the active filter and query.
	View() ContentView
	// Counts returns per-status counts over the whole collection.
	Counts() store.Counts
	// Guides returns the published guides.
	Guides() []domain.ContentItem
	// Guide returns the published guide with the given slug.
	Guide(slug string) (domain.ContentItem, error)
	// Categories returns the distinct categories, known ones first.
	Categories() []string
	// Snapshot returns the current store state.
	Snapshot() store.State
}

// PreferencesServiceInterface defines the preference operations used by handlers.
type PreferencesServiceInterface interface {
	Get() domain.Preferences
	Update(patch domain.PreferencesPatch) (domain.Preferences, error)
	ToggleTheme() domain.Preferences
}

// TransferServiceInterface defines bulk import and export.
type TransferServiceInterface interface {
	Export(ctx context.Context, format domain.TransferFormat, w io.Writer) (int, error)
	Import(ctx context.Context, format domain.TransferFormat, r io.Reader) (domain.ImportResult, error)
}
