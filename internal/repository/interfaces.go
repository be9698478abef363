package repository

import (
	"context"
	"errors"
	"fmt"

	"content-hub/internal/domain"
)

// Operation names used in errors, logs and metrics.
const (
	OpFetchAll = "fetch_all"
	OpCreate   = "create"
	OpUpdate   = "update"
	OpImport   = "import"
)

var (
	// ErrUpdateUnsupported is returned when a source cannot persist item updates.
	ErrUpdateUnsupported = errors.New("source does not support updates")
	// ErrImportUnsupported is returned when a source cannot be seeded.
	ErrImportUnsupported = errors.New("source does not support imports")
)

// Source is the remote data source behind the content store.
// FetchAll returns the full collection, newest first. Create assigns the
// identifier and timestamps of the new item.
type Source interface {
	Name() string
	FetchAll(ctx context.Context) ([]domain.ContentItem, error)
	Create(ctx context.Context, input domain.CreateInput) (domain.ContentItem, error)
}

// Updater is implemented by sources that accept editorial updates to
// existing items. Unknown IDs yield domain.ErrItemNotFound.
type Updater interface {
	Update(ctx context.Context, item domain.ContentItem) (domain.ContentItem, error)
}

// Importer is implemented by sources that can be seeded with complete items.
// Items whose ID already exists, or whose slug belongs to another item, are
// skipped; the number inserted is returned.
type Importer interface {
	Import(ctx context.Context, items []domain.ContentItem) (int, error)
}

// SourceError wraps a failed data source operation.
type SourceError struct {
	Source string
	Op     string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Source, e.Op, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// IsSourceError reports whether err came from a data source operation.
func IsSourceError(err error) bool {
	var se *SourceError
	return errors.As(err, &se)
}
