package repository

import (
	"fmt"
	"sort"
	"time"

	"content-hub/internal/domain"
)

func cloneItems(items []domain.ContentItem) []domain.ContentItem {
	out := make([]domain.ContentItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

// sortNewestFirst orders items by creation time, newest first, keeping the
// relative order of items created at the same instant.
func sortNewestFirst(items []domain.ContentItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func latest(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// nullable returns nil for the empty string.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// itemRow is the column layout shared by the SQL sources.
type itemRow struct {
	ID          string
	Title       string
	Description string
	Category    string
	Status      string
	Slug        *string
	Author      *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Tags        []string
}

func rowFromItem(item domain.ContentItem) itemRow {
	return itemRow{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Category:    item.Category,
		Status:      string(item.Status()),
		Slug:        nullable(item.Slug()),
		Author:      nullable(item.Author()),
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
		Tags:        item.Tags,
	}
}

func (r itemRow) item() (domain.ContentItem, error) {
	stage, err := domain.NewStage(domain.Status(r.Status), deref(r.Slug), deref(r.Author))
	if err != nil {
		return domain.ContentItem{}, fmt.Errorf("item %q: %w", r.ID, err)
	}
	var tags []string
	if len(r.Tags) > 0 {
		tags = append(tags, r.Tags...)
	}
	return domain.ContentItem{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Stage:       stage,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Tags:        tags,
	}, nil
}
