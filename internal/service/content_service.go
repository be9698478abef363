package service

import (
	"context"
	"log/slog"

	"content-hub/internal/domain"
	"content-hub/internal/logger"
	"content-hub/internal/metrics"
	"content-hub/internal/repository"
	"content-hub/internal/store"
	"content-hub/internal/validator"
)

// ContentService coordinates the content store with its data source.
type ContentService struct {
	source    repository.Source
	store     *store.Container[store.State]
	validator *validator.Validator
}

// NewContentService creates a ContentService over an existing store container.
func NewContentService(source repository.Source, st *store.Container[store.State], v *validator.Validator) *ContentService {
	return &ContentService{
		source:    source,
		store:     st,
		validator: v,
	}
}

// Source returns the data source name.
func (s *ContentService) Source() string {
	return s.source.Name()
}

// Load fetches the collection and replaces the store contents. On failure the
// previous items are kept and the error is recorded in the store.
func (s *ContentService) Load(ctx context.Context, trigger string) error {
	s.store.Dispatch(func(st store.State) store.State {
		return store.SetLoading(st, true)
	})

	items, err := repository.FetchAllAsync(ctx, s.source).Await(ctx)
	metrics.ObserveRefresh(trigger, err)

	s.store.Dispatch(func(st store.State) store.State {
		if err != nil {
			st = store.SetError(st, "Failed to load content")
		} else {
			st = store.SetError(store.ReplaceAll(st, items), "")
		}
		return store.SetLoading(st, false)
	})

	if err != nil {
		logger.WithSource(s.source.Name()).Warn("Content refresh failed",
			slog.String("trigger", trigger),
			slog.String("error", err.Error()))
		return err
	}
	logger.WithSource(s.source.Name()).Debug("Content refreshed",
		slog.String("trigger", trigger),
		slog.Int("items", len(items)))
	return nil
}

// Submit validates input and creates a new request. The store only changes
// once the source has confirmed the creation.
func (s *ContentService) Submit(ctx context.Context, input domain.CreateInput) (domain.ContentItem, error) {
	if err := s.validator.ValidateCreateInput(&input); err != nil {
		metrics.ObserveSubmission(metrics.ResultInvalid)
		return domain.ContentItem{}, err
	}

	item, err := repository.CreateAsync(ctx, s.source, input).Await(ctx)
	if err != nil {
		metrics.ObserveSubmission(metrics.ResultError)
		return domain.ContentItem{}, err
	}
	metrics.ObserveSubmission(metrics.ResultSuccess)

	s.store.Dispatch(func(st store.State) store.State {
		return store.Insert(st, item)
	})

	logger.WithItemID(item.ID).Info("Content request submitted",
		slog.String("category", item.Category),
		slog.String("source", s.source.Name()))
	return item, nil
}

// UpdateItem applies an editorial update. The source persists it first; the
// store copy is then replaced in place. An unknown ID returns
// domain.ErrItemNotFound and changes nothing.
func (s *ContentService) UpdateItem(ctx context.Context, item domain.ContentItem) (domain.ContentItem, error) {
	input := domain.CreateInput{Title: item.Title, Description: item.Description, Category: item.Category}
	if err := s.validator.ValidateCreateInput(&input); err != nil {
		return domain.ContentItem{}, err
	}
	if item.Stage == nil {
		item.Stage = domain.Requested{}
	}

	updated, err := repository.UpdateAsync(ctx, s.source, item).Await(ctx)
	if err != nil {
		return domain.ContentItem{}, err
	}

	if _, err := s.store.DispatchErr(func(st store.State) (store.State, error) {
		return store.Update(st, updated)
	}); err != nil {
		// Persisted but not loaded yet; the next refresh picks it up.
		logger.WithItemID(updated.ID).Debug("Updated item not in store")
	}

	logger.WithItemID(updated.ID).Info("Content item updated",
		slog.String("status", string(updated.Status())))
	return updated, nil
}

// Browse sets the filter and query in one step and returns the resulting view.
func (s *ContentService) Browse(filter domain.Filter, query string) (ContentView, error) {
	next, err := s.store.DispatchErr(func(st store.State) (store.State, error) {
		st, err := store.SetFilter(st, filter)
		if err != nil {
			return st, err
		}
		return store.SetQuery(st, query), nil
	})
	if err != nil {
		return ContentView{}, err
	}
	return viewOf(next), nil
}

// SetFilter replaces the active filter.
func (s *ContentService) SetFilter(filter domain.Filter) error {
	_, err := s.store.DispatchErr(func(st store.State) (store.State, error) {
		return store.SetFilter(st, filter)
	})
	return err
}

// SetQuery replaces the active search query.
func (s *ContentService) SetQuery(query string) {
	s.store.Dispatch(func(st store.State) store.State {
		return store.SetQuery(st, query)
	})
}

// View returns the view for the active filter and query.
func (s *ContentService) View() ContentView {
	return viewOf(s.store.Snapshot())
}

// Counts returns per-status counts over the whole collection.
func (s *ContentService) Counts() store.Counts {
	return store.CountItems(s.store.Snapshot().Items)
}

// Guides returns the published guides, newest first.
func (s *ContentService) Guides() []domain.ContentItem {
	return store.PublishedGuides(s.store.Snapshot().Items)
}

// Guide returns the published guide with the given slug.
func (s *ContentService) Guide(slug string) (domain.ContentItem, error) {
	return store.GuideBySlug(s.store.Snapshot().Items, slug)
}

// Categories returns the suggested categories followed by any other category
// used in the collection, in order of first appearance.
func (s *ContentService) Categories() []string {
	seen := make(map[string]bool, len(domain.Categories))
	out := make([]string, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		seen[c] = true
		out = append(out, c)
	}
	for _, item := range s.store.Snapshot().Items {
		if item.Category != "" && !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	return out
}

// Snapshot returns the current store state.
func (s *ContentService) Snapshot() store.State {
	return s.store.Snapshot()
}

func viewOf(st store.State) ContentView {
	return ContentView{
		Items:   st.View(),
		Counts:  store.CountItems(st.Items),
		Filter:  st.Filter,
		Query:   st.Query,
		Loading: st.Loading,
		Error:   st.Err,
	}
}

// PublishCounts keeps the store item gauges current until ctx is done.
func (s *ContentService) PublishCounts(ctx context.Context) {
	changes, unsubscribe := s.store.Subscribe(1)
	defer unsubscribe()

	publish := func() {
		c := store.CountItems(s.store.Snapshot().Items)
		metrics.SetStoreItems(c.Requested, c.InProgress, c.Published)
	}
	publish()
	for {
		select {
		case <-ctx.Done():
			return
		case <-changes:
			// Snapshots may be dropped while the buffer is full, so read the latest.
			publish()
		}
	}
}
