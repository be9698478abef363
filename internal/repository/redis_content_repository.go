package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"content-hub/internal/domain"
)

// Notifier is implemented by sources that announce changes made by any
// writer. The channel yields the ID of each created or updated item and is
// closed when ctx is done.
type Notifier interface {
	Changes(ctx context.Context) (<-chan string, error)
}

// ItemKey is the key holding the JSON encoding of one item.
func ItemKey(namespace, id string) string {
	return fmt.Sprintf("%s:item:%s", namespace, id)
}

// ItemIndexKey is the sorted set of item IDs scored by creation time.
func ItemIndexKey(namespace string) string {
	return fmt.Sprintf("%s:items", namespace)
}

// SlugIndexKey is the hash mapping guide slugs to item IDs.
func SlugIndexKey(namespace string) string {
	return fmt.Sprintf("%s:slugs", namespace)
}

// ChangesChannel is the pub/sub channel announcing item changes.
func ChangesChannel(namespace string) string {
	return fmt.Sprintf("%s:changes", namespace)
}

// RedisContentRepository implements Source on Redis.
type RedisContentRepository struct {
	rdb       *redis.Client
	namespace string
	now       func() time.Time
}

// NewRedisContentRepository creates a new RedisContentRepository whose keys
// are prefixed with namespace.
func NewRedisContentRepository(rdb *redis.Client, namespace string) *RedisContentRepository {
	return &RedisContentRepository{rdb: rdb, namespace: namespace, now: time.Now}
}

// Name implements Source.
func (r *RedisContentRepository) Name() string {
	return "redis"
}

// FetchAll implements Source.
func (r *RedisContentRepository) FetchAll(ctx context.Context) ([]domain.ContentItem, error) {
	ids, err := r.rdb.ZRevRange(ctx, ItemIndexKey(r.namespace), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read item index: %w", err)
	}
	items := make([]domain.ContentItem, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = ItemKey(r.namespace, id)
	}
	values, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Index entry without a body; skip it rather than fail the whole read.
			continue
		}
		var item domain.ContentItem
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, fmt.Errorf("decode item %q: %w", ids[i], err)
		}
		items = append(items, item)
	}
	sortNewestFirst(items)
	return items, nil
}

// Create implements Source.
func (r *RedisContentRepository) Create(ctx context.Context, input domain.CreateInput) (domain.ContentItem, error) {
	item := domain.NewRequestedItem(uuid.New().String(), input, r.now().UTC())
	if err := r.write(ctx, item, ""); err != nil {
		return domain.ContentItem{}, err
	}
	return item, nil
}

// Update implements Updater.
func (r *RedisContentRepository) Update(ctx context.Context, item domain.ContentItem) (domain.ContentItem, error) {
	raw, err := r.rdb.Get(ctx, ItemKey(r.namespace, item.ID)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.ContentItem{}, fmt.Errorf("item %q: %w", item.ID, domain.ErrItemNotFound)
	}
	if err != nil {
		return domain.ContentItem{}, fmt.Errorf("read item: %w", err)
	}
	var existing domain.ContentItem
	if err := json.Unmarshal([]byte(raw), &existing); err != nil {
		return domain.ContentItem{}, fmt.Errorf("decode item %q: %w", item.ID, err)
	}

	if slug := item.Slug(); slug != "" {
		owner, err := r.rdb.HGet(ctx, SlugIndexKey(r.namespace), slug).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return domain.ContentItem{}, fmt.Errorf("read slug index: %w", err)
		}
		if err == nil && owner != item.ID {
			return domain.ContentItem{}, fmt.Errorf("slug %q: %w", slug, domain.ErrDuplicateSlug)
		}
	}

	updated := item.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = latest(r.now().UTC(), existing.CreatedAt)
	if err := r.write(ctx, updated, existing.Slug()); err != nil {
		return domain.ContentItem{}, err
	}
	return updated, nil
}

// Import implements Importer.
func (r *RedisContentRepository) Import(ctx context.Context, items []domain.ContentItem) (int, error) {
	inserted := 0
	for _, item := range items {
		if slug := item.Slug(); slug != "" {
			owner, err := r.rdb.HGet(ctx, SlugIndexKey(r.namespace), slug).Result()
			if err != nil && !errors.Is(err, redis.Nil) {
				return inserted, fmt.Errorf("read slug index: %w", err)
			}
			if err == nil && owner != item.ID {
				continue
			}
		}

		body, err := json.Marshal(item)
		if err != nil {
			return inserted, fmt.Errorf("encode item %q: %w", item.ID, err)
		}
		ok, err := r.rdb.SetNX(ctx, ItemKey(r.namespace, item.ID), body, 0).Result()
		if err != nil {
			return inserted, fmt.Errorf("write item %q: %w", item.ID, err)
		}
		if !ok {
			continue
		}

		_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.ZAdd(ctx, ItemIndexKey(r.namespace), redis.Z{
				Score:  float64(item.CreatedAt.UnixMilli()),
				Member: item.ID,
			})
			if slug := item.Slug(); slug != "" {
				pipe.HSet(ctx, SlugIndexKey(r.namespace), slug, item.ID)
			}
			return nil
		})
		if err != nil {
			return inserted, fmt.Errorf("index item %q: %w", item.ID, err)
		}
		inserted++
	}
	return inserted, nil
}

// Changes implements Notifier.
func (r *RedisContentRepository) Changes(ctx context.Context) (<-chan string, error) {
	sub := r.rdb.Subscribe(ctx, ChangesChannel(r.namespace))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe to changes: %w", err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- msg.Payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// write stores item, maintains both indexes and announces the change.
// previousSlug is released from the slug index when it differs from the
// item's current slug.
func (r *RedisContentRepository) write(ctx context.Context, item domain.ContentItem, previousSlug string) error {
	body, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode item %q: %w", item.ID, err)
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, ItemKey(r.namespace, item.ID), body, 0)
		pipe.ZAdd(ctx, ItemIndexKey(r.namespace), redis.Z{
			Score:  float64(item.CreatedAt.UnixMilli()),
			Member: item.ID,
		})
		if previousSlug != "" && previousSlug != item.Slug() {
			pipe.HDel(ctx, SlugIndexKey(r.namespace), previousSlug)
		}
		if slug := item.Slug(); slug != "" {
			pipe.HSet(ctx, SlugIndexKey(r.namespace), slug, item.ID)
		}
		pipe.Publish(ctx, ChangesChannel(r.namespace), item.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("write item %q: %w", item.ID, err)
	}
	return nil
}
