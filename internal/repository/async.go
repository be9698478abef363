package repository

import (
	"context"
	"errors"
	"log/slog"

	"content-hub/internal/async"
	"content-hub/internal/domain"
	"content-hub/internal/logger"
	"content-hub/internal/metrics"
)

// FetchAllAsync starts a FetchAll call on src.
func FetchAllAsync(ctx context.Context, src Source) *async.Future[[]domain.ContentItem] {
	return async.Go(ctx, func(ctx context.Context) ([]domain.ContentItem, error) {
		return observe(src, OpFetchAll, func() ([]domain.ContentItem, error) {
			return src.FetchAll(ctx)
		})
	})
}

// CreateAsync starts a Create call on src.
func CreateAsync(ctx context.Context, src Source, input domain.CreateInput) *async.Future[domain.ContentItem] {
	return async.Go(ctx, func(ctx context.Context) (domain.ContentItem, error) {
		return observe(src, OpCreate, func() (domain.ContentItem, error) {
			return src.Create(ctx, input)
		})
	})
}

// UpdateAsync starts an Update call on src. Sources that are not an Updater
// fail with ErrUpdateUnsupported.
func UpdateAsync(ctx context.Context, src Source, item domain.ContentItem) *async.Future[domain.ContentItem] {
	u, ok := src.(Updater)
	if !ok {
		return async.Resolved(domain.ContentItem{}, error(&SourceError{Source: src.Name(), Op: OpUpdate, Err: ErrUpdateUnsupported}))
	}
	return async.Go(ctx, func(ctx context.Context) (domain.ContentItem, error) {
		return observe(src, OpUpdate, func() (domain.ContentItem, error) {
			return u.Update(ctx, item)
		})
	})
}

// Seed imports items into src when it is an Importer.
func Seed(ctx context.Context, src Source, items []domain.ContentItem) (int, error) {
	imp, ok := src.(Importer)
	if !ok {
		return 0, nil
	}
	return observe(src, OpImport, func() (int, error) {
		return imp.Import(ctx, items)
	})
}

func observe[T any](src Source, op string, call func() (T, error)) (T, error) {
	timer := metrics.NewTimer()
	v, err := call()
	metrics.ObserveSourceOperation(src.Name(), op, err, timer.Seconds())
	if err == nil {
		return v, nil
	}

	// Not-found is a caller error, not a source failure.
	if !errors.Is(err, domain.ErrItemNotFound) && !errors.Is(err, context.Canceled) {
		logger.WithSource(src.Name()).Error("Data source operation failed",
			slog.String("operation", op),
			slog.String("error", err.Error()))
	}
	var zero T
	return zero, &SourceError{Source: src.Name(), Op: op, Err: err}
}
