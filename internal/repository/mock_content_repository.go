package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"content-hub/internal/domain"
)

// MockContentRepository is an in-memory Source that simulates network
// latency. It is safe for concurrent use.
type MockContentRepository struct {
	mu          sync.RWMutex
	items       []domain.ContentItem
	fetchDelay  time.Duration
	createDelay time.Duration
	fetchErr    error
	createErr   error
	now         func() time.Time
	newID       func() string
}

// MockOption configures a MockContentRepository.
type MockOption func(*MockContentRepository)

// WithDelays sets the artificial latency of FetchAll and Create.
func WithDelays(fetch, create time.Duration) MockOption {
	return func(m *MockContentRepository) {
		m.fetchDelay = fetch
		m.createDelay = create
	}
}

// WithItems replaces the initial fixtures.
func WithItems(items []domain.ContentItem) MockOption {
	return func(m *MockContentRepository) {
		m.items = cloneItems(items)
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) MockOption {
	return func(m *MockContentRepository) {
		m.now = now
	}
}

// WithIDGenerator sets the identifier generator used by Create.
func WithIDGenerator(newID func() string) MockOption {
	return func(m *MockContentRepository) {
		m.newID = newID
	}
}

// NewMockContentRepository creates a mock source seeded with the reference fixtures.
func NewMockContentRepository(opts ...MockOption) *MockContentRepository {
	m := &MockContentRepository{
		fetchDelay:  800 * time.Millisecond,
		createDelay: time.Second,
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.items == nil {
		m.items = domain.Fixtures(m.now())
	}
	return m
}

// Name implements Source.
func (m *MockContentRepository) Name() string {
	return "mock"
}

// FailFetch makes subsequent FetchAll calls return err; nil restores success.
func (m *MockContentRepository) FailFetch(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchErr = err
}

// FailCreate makes subsequent Create calls return err; nil restores success.
func (m *MockContentRepository) FailCreate(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createErr = err
}

// FetchAll implements Source.
func (m *MockContentRepository) FetchAll(ctx context.Context) ([]domain.ContentItem, error) {
	if err := sleep(ctx, m.fetchDelay); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return cloneItems(m.items), nil
}

// Create implements Source.
func (m *MockContentRepository) Create(ctx context.Context, input domain.CreateInput) (domain.ContentItem, error) {
	if err := sleep(ctx, m.createDelay); err != nil {
		return domain.ContentItem{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return domain.ContentItem{}, m.createErr
	}

	item := domain.NewRequestedItem(m.newID(), input, m.now())
	m.items = append([]domain.ContentItem{item}, m.items...)
	return item.Clone(), nil
}

// Update implements Updater.
func (m *MockContentRepository) Update(ctx context.Context, item domain.ContentItem) (domain.ContentItem, error) {
	if err := ctx.Err(); err != nil {
		return domain.ContentItem{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := -1
	for i, existing := range m.items {
		if existing.ID == item.ID {
			idx = i
		} else if slug := item.Slug(); slug != "" && existing.Slug() == slug {
			return domain.ContentItem{}, fmt.Errorf("slug %q: %w", slug, domain.ErrDuplicateSlug)
		}
	}
	if idx < 0 {
		return domain.ContentItem{}, fmt.Errorf("item %q: %w", item.ID, domain.ErrItemNotFound)
	}

	updated := item.Clone()
	updated.CreatedAt = m.items[idx].CreatedAt
	updated.UpdatedAt = latest(m.now(), updated.CreatedAt)
	m.items[idx] = updated
	return updated.Clone(), nil
}

// Import implements Importer.
func (m *MockContentRepository) Import(ctx context.Context, items []domain.ContentItem) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	known := make(map[string]bool, len(m.items))
	slugs := make(map[string]bool, len(m.items))
	for _, item := range m.items {
		known[item.ID] = true
		if slug := item.Slug(); slug != "" {
			slugs[slug] = true
		}
	}
	inserted := 0
	for _, item := range items {
		slug := item.Slug()
		if known[item.ID] || (slug != "" && slugs[slug]) {
			continue
		}
		known[item.ID] = true
		if slug != "" {
			slugs[slug] = true
		}
		m.items = append(m.items, item.Clone())
		inserted++
	}
	sortNewestFirst(m.items)
	return inserted, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
