package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-hub/internal/domain"
	"content-hub/internal/metrics"
	"content-hub/internal/repository"
)

// readOnlySource implements Source without Updater or Importer.
type readOnlySource struct{}

func (readOnlySource) Name() string { return "read-only" }

func (readOnlySource) FetchAll(context.Context) ([]domain.ContentItem, error) {
	return []domain.ContentItem{}, nil
}

func (readOnlySource) Create(context.Context, domain.CreateInput) (domain.ContentItem, error) {
	return domain.ContentItem{}, errors.New("read only")
}

func TestFetchAllAsync(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves with items", func(t *testing.T) {
		repo := newTestMock()
		before := testutil.ToFloat64(metrics.SourceOperationsTotal.WithLabelValues("mock", repository.OpFetchAll, metrics.ResultSuccess))

		items, err := repository.FetchAllAsync(ctx, repo).Await(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 4)

		after := testutil.ToFloat64(metrics.SourceOperationsTotal.WithLabelValues("mock", repository.OpFetchAll, metrics.ResultSuccess))
		assert.Equal(t, before+1, after)
	})

	t.Run("wraps failures in SourceError", func(t *testing.T) {
		repo := newTestMock()
		boom := errors.New("network down")
		repo.FailFetch(boom)
		before := testutil.ToFloat64(metrics.SourceOperationsTotal.WithLabelValues("mock", repository.OpFetchAll, metrics.ResultError))

		_, err := repository.FetchAllAsync(ctx, repo).Await(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.True(t, repository.IsSourceError(err))

		var se *repository.SourceError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, "mock", se.Source)
		assert.Equal(t, repository.OpFetchAll, se.Op)
		assert.Equal(t, "mock fetch_all: network down", se.Error())

		after := testutil.ToFloat64(metrics.SourceOperationsTotal.WithLabelValues("mock", repository.OpFetchAll, metrics.ResultError))
		assert.Equal(t, before+1, after)
	})
}

func TestCreateAsync(t *testing.T) {
	ctx := context.Background()
	repo := newTestMock()

	future := repository.CreateAsync(ctx, repo, sampleInput())
	item, err := future.Await(ctx)
	require.NoError(t, err)
	assert.True(t, future.Ready())
	assert.Equal(t, "Testing with Vitest", item.Title)
	assert.Equal(t, domain.StatusRequested, item.Status())
}

func TestUpdateAsync(t *testing.T) {
	ctx := context.Background()

	t.Run("unsupported source", func(t *testing.T) {
		_, err := repository.UpdateAsync(ctx, readOnlySource{}, domain.ContentItem{ID: "1"}).Await(ctx)
		assert.ErrorIs(t, err, repository.ErrUpdateUnsupported)
	})

	t.Run("not found keeps its identity", func(t *testing.T) {
		_, err := repository.UpdateAsync(ctx, newTestMock(), domain.ContentItem{ID: "nope", Stage: domain.Requested{}}).Await(ctx)
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})
}

func TestSeed(t *testing.T) {
	ctx := context.Background()

	t.Run("non importer is a no-op", func(t *testing.T) {
		n, err := repository.Seed(ctx, readOnlySource{}, []domain.ContentItem{{ID: "x"}})
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("importer", func(t *testing.T) {
		repo := newTestMock(repository.WithItems([]domain.ContentItem{}))
		n, err := repository.Seed(ctx, repo, domain.Fixtures(fixedNow))
		require.NoError(t, err)
		assert.Equal(t, 4, n)
	})
}
