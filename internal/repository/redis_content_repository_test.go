package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-hub/internal/domain"
	"content-hub/internal/repository"
)

func newRedisRepo(t *testing.T) (*repository.RedisContentRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return repository.NewRedisContentRepository(rdb, "test"), mr
}

func TestRedisContentRepository(t *testing.T) {
	runSourceContract(t, func(t *testing.T) persistentSource {
		repo, _ := newRedisRepo(t)
		return repo
	})
}

func TestRedisContentRepository_Keys(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRedisRepo(t)

	item, err := repo.Create(ctx, sampleInput())
	require.NoError(t, err)

	assert.True(t, mr.Exists(repository.ItemKey("test", item.ID)))
	members, err := mr.ZMembers(repository.ItemIndexKey("test"))
	require.NoError(t, err)
	assert.Equal(t, []string{item.ID}, members)

	item.Stage = domain.Published{Slug: "testing-with-vitest"}
	_, err = repo.Update(ctx, item)
	require.NoError(t, err)
	assert.Equal(t, item.ID, mr.HGet(repository.SlugIndexKey("test"), "testing-with-vitest"))

	item.Stage = domain.Requested{}
	_, err = repo.Update(ctx, item)
	require.NoError(t, err)
	assert.Empty(t, mr.HGet(repository.SlugIndexKey("test"), "testing-with-vitest"))
}

func TestRedisContentRepository_Changes(t *testing.T) {
	repo, _ := newRedisRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := repo.Changes(ctx)
	require.NoError(t, err)

	created, err := repo.Create(context.Background(), sampleInput())
	require.NoError(t, err)

	select {
	case id := <-changes:
		assert.Equal(t, created.ID, id)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change notification")
	}

	cancel()
	select {
	case _, open := <-changes:
		assert.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("expected the channel to close")
	}
}

func TestRedisKeyFormats(t *testing.T) {
	assert.Equal(t, "hub:item:42", repository.ItemKey("hub", "42"))
	assert.Equal(t, "hub:items", repository.ItemIndexKey("hub"))
	assert.Equal(t, "hub:slugs", repository.SlugIndexKey("hub"))
	assert.Equal(t, "hub:changes", repository.ChangesChannel("hub"))
}
