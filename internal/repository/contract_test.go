package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-hub/internal/domain"
	"content-hub/internal/repository"
)

// persistentSource is implemented by every storage-backed source.
type persistentSource interface {
	repository.Source
	repository.Updater
	repository.Importer
}

// runSourceContract exercises the behaviour shared by all persistent
// sources. newSource must return an empty source.
func runSourceContract(t *testing.T, newSource func(t *testing.T) persistentSource) {
	t.Helper()
	ctx := context.Background()
	// Whole milliseconds survive every backend's timestamp encoding.
	now := time.Now().UTC().Truncate(time.Millisecond)

	t.Run("empty source returns empty slice", func(t *testing.T) {
		src := newSource(t)

		items, err := src.FetchAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("import then fetch newest first", func(t *testing.T) {
		src := newSource(t)

		inserted, err := src.Import(ctx, domain.Fixtures(now))
		require.NoError(t, err)
		assert.Equal(t, 4, inserted)

		items, err := src.FetchAll(ctx)
		require.NoError(t, err)
		require.Len(t, items, 4)
		assert.Equal(t, "1", items[0].ID)
		assert.Equal(t, "4", items[3].ID)
		assert.Equal(t, domain.Published{Slug: "react-server-components", Author: "Sarah Chen"}, items[0].Stage)
		assert.Equal(t, domain.InProgress{Author: "Alex Rivera"}, items[1].Stage)
		assert.Equal(t, []string{"React", "Performance", "SSR"}, items[0].Tags)
		assert.True(t, items[1].UpdatedAt.After(items[1].CreatedAt))

		again, err := src.Import(ctx, domain.Fixtures(now))
		require.NoError(t, err)
		assert.Zero(t, again)
	})

	t.Run("import skips an item whose slug is taken", func(t *testing.T) {
		src := newSource(t)
		_, err := src.Import(ctx, domain.Fixtures(now))
		require.NoError(t, err)

		clash := domain.NewRequestedItem("clash", sampleInput(), now)
		clash.Stage = domain.Published{Slug: "react-server-components"}
		inserted, err := src.Import(ctx, []domain.ContentItem{clash})
		require.NoError(t, err)
		assert.Zero(t, inserted)

		items, err := src.FetchAll(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 4)
	})

	t.Run("create assigns id and prepends", func(t *testing.T) {
		src := newSource(t)
		_, err := src.Import(ctx, domain.Fixtures(now))
		require.NoError(t, err)

		created, err := src.Create(ctx, sampleInput())
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, domain.StatusRequested, created.Status())
		assert.Equal(t, created.CreatedAt, created.UpdatedAt)

		items, err := src.FetchAll(ctx)
		require.NoError(t, err)
		require.Len(t, items, 5)
		assert.Equal(t, created.ID, items[0].ID)
		assert.Equal(t, "Testing with Vitest", items[0].Title)
		assert.Empty(t, items[0].Slug())
	})

	t.Run("update publishes and keeps creation time", func(t *testing.T) {
		src := newSource(t)
		created, err := src.Create(ctx, sampleInput())
		require.NoError(t, err)

		edit := created.Clone()
		edit.Stage = domain.Published{Slug: "testing-with-vitest", Author: "Kim"}
		edit.Tags = []string{"Testing"}

		updated, err := src.Update(ctx, edit)
		require.NoError(t, err)
		assert.Equal(t, "testing-with-vitest", updated.Slug())
		assert.Equal(t, created.CreatedAt.UnixMilli(), updated.CreatedAt.UnixMilli())
		assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

		items, err := src.FetchAll(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, domain.Published{Slug: "testing-with-vitest", Author: "Kim"}, items[0].Stage)
		assert.Equal(t, []string{"Testing"}, items[0].Tags)
	})

	t.Run("update unknown id", func(t *testing.T) {
		src := newSource(t)

		_, err := src.Update(ctx, domain.ContentItem{ID: "missing", Title: "t", Stage: domain.Requested{}})
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})

	t.Run("update with a taken slug", func(t *testing.T) {
		src := newSource(t)
		_, err := src.Import(ctx, domain.Fixtures(now))
		require.NoError(t, err)

		items, err := src.FetchAll(ctx)
		require.NoError(t, err)
		requested := items[2]
		requested.Stage = domain.Published{Slug: "react-server-components"}

		_, err = src.Update(ctx, requested)
		assert.ErrorIs(t, err, domain.ErrDuplicateSlug)
	})
}
