// Package store holds the in-memory content and preference state.
//
// State values are immutable snapshots: every reducer returns a new value and
// never writes through the slices of its input. Callers must treat the Items
// of a snapshot as read-only.
package store

import (
	"fmt"
	"strings"

	"content-hub/internal/domain"
)

// State is a snapshot of the content collection and the active view criteria.
type State struct {
	Items   []domain.ContentItem `json:"items"`
	Filter  domain.Filter        `json:"filter"`
	Query   string               `json:"query"`
	Loading bool                 `json:"isLoading"`
	Err     string               `json:"error,omitempty"`
}

// NewState returns the empty initial state.
func NewState() State {
	return State{
		Items:  []domain.ContentItem{},
		Filter: domain.FilterAll,
	}
}

// ReplaceAll replaces the collection wholesale. The items are trusted as is.
func ReplaceAll(s State, items []domain.ContentItem) State {
	next := make([]domain.ContentItem, len(items))
	for i, item := range items {
		next[i] = item.Clone()
	}
	s.Items = next
	return s
}

// Insert places item at the front of the collection.
func Insert(s State, item domain.ContentItem) State {
	next := make([]domain.ContentItem, 0, len(s.Items)+1)
	next = append(next, item.Clone())
	next = append(next, s.Items...)
	s.Items = next
	return s
}

// Update replaces the item with the same ID in place. An unmatched ID leaves
// the state untouched and returns domain.ErrItemNotFound.
func Update(s State, item domain.ContentItem) (State, error) {
	idx := indexOf(s.Items, item.ID)
	if idx < 0 {
		return s, fmt.Errorf("update %q: %w", item.ID, domain.ErrItemNotFound)
	}
	next := make([]domain.ContentItem, len(s.Items))
	copy(next, s.Items)
	next[idx] = item.Clone()
	s.Items = next
	return s, nil
}

// SetFilter replaces the active filter.
func SetFilter(s State, filter domain.Filter) (State, error) {
	if !domain.IsValidFilter(string(filter)) {
		return s, fmt.Errorf("%w: %q", domain.ErrInvalidFilter, filter)
	}
	s.Filter = filter
	return s, nil
}

// SetQuery replaces the active search query verbatim.
func SetQuery(s State, query string) State {
	s.Query = query
	return s
}

// SetLoading sets the loading flag.
func SetLoading(s State, loading bool) State {
	s.Loading = loading
	return s
}

// SetError sets the user-visible error; "" clears it.
func SetError(s State, msg string) State {
	s.Err = msg
	return s
}

// View derives the visible items from the snapshot's filter and query.
func (s State) View() []domain.ContentItem {
	return Derive(s.Items, s.Filter, s.Query)
}

// Find returns the item with the given ID.
func (s State) Find(id string) (domain.ContentItem, bool) {
	idx := indexOf(s.Items, id)
	if idx < 0 {
		return domain.ContentItem{}, false
	}
	return s.Items[idx], true
}

// Derive returns the items matching filter and query, in source order.
// The query matches case-insensitively against title, description and category.
func Derive(items []domain.ContentItem, filter domain.Filter, query string) []domain.ContentItem {
	q := strings.ToLower(query)
	out := make([]domain.ContentItem, 0, len(items))
	for _, item := range items {
		if !filter.Matches(item.Status()) {
			continue
		}
		if q != "" && !matchesQuery(item, q) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesQuery(item domain.ContentItem, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(item.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(item.Description), lowerQuery) ||
		strings.Contains(strings.ToLower(item.Category), lowerQuery)
}

// Counts holds the number of items per filter.
type Counts struct {
	All        int `json:"all"`
	Requested  int `json:"requested"`
	InProgress int `json:"in-progress"`
	Published  int `json:"published"`
}

// For returns the count shown next to filter.
func (c Counts) For(filter domain.Filter) int {
	switch filter {
	case domain.FilterAll:
		return c.All
	case domain.Filter(domain.StatusRequested):
		return c.Requested
	case domain.Filter(domain.StatusInProgress):
		return c.InProgress
	case domain.Filter(domain.StatusPublished):
		return c.Published
	}
	return 0
}

// CountItems counts items per status, ignoring filter and query.
func CountItems(items []domain.ContentItem) Counts {
	c := Counts{All: len(items)}
	for _, item := range items {
		switch item.Status() {
		case domain.StatusRequested:
			c.Requested++
		case domain.StatusInProgress:
			c.InProgress++
		case domain.StatusPublished:
			c.Published++
		}
	}
	return c
}

// PublishedGuides returns the items readable as standalone guides.
func PublishedGuides(items []domain.ContentItem) []domain.ContentItem {
	out := make([]domain.ContentItem, 0)
	for _, item := range items {
		if item.Status() == domain.StatusPublished && item.IsGuide() {
			out = append(out, item)
		}
	}
	return out
}

// GuideBySlug finds the published guide with the given slug.
func GuideBySlug(items []domain.ContentItem, slug string) (domain.ContentItem, error) {
	if slug != "" {
		for _, item := range items {
			if item.Status() == domain.StatusPublished && item.Slug() == slug {
				return item, nil
			}
		}
	}
	return domain.ContentItem{}, fmt.Errorf("guide %q: %w", slug, domain.ErrGuideNotFound)
}

func indexOf(items []domain.ContentItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
