package store

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-hub/internal/domain"
)

var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func fixtureState() State {
	return ReplaceAll(NewState(), domain.Fixtures(fixedNow))
}

func ids(items []domain.ContentItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestNewState(t *testing.T) {
	s := NewState()
	assert.Empty(t, s.Items)
	assert.NotNil(t, s.Items)
	assert.Equal(t, domain.FilterAll, s.Filter)
	assert.Empty(t, s.Query)
	assert.False(t, s.Loading)
	assert.Empty(t, s.Err)
}

func TestReplaceAll(t *testing.T) {
	s := fixtureState()
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(s.Items))

	replacement := []domain.ContentItem{{ID: "x", Stage: domain.Requested{}}}
	next := ReplaceAll(s, replacement)
	assert.Equal(t, []string{"x"}, ids(next.Items))
	assert.Len(t, s.Items, 4, "input snapshot must not change")

	replacement[0].ID = "mutated"
	assert.Equal(t, "x", next.Items[0].ID, "state must not alias caller slice")
}

func TestInsert(t *testing.T) {
	s := fixtureState()
	before := append([]domain.ContentItem(nil), s.Items...)
	item := domain.NewRequestedItem("new", domain.CreateInput{Title: "T", Description: "Description", Category: "C"}, fixedNow)

	next := Insert(s, item)

	require.Len(t, next.Items, len(s.Items)+1)
	assert.Equal(t, item, next.Items[0])
	assert.Equal(t, s.Items, next.Items[1:])
	assert.Equal(t, before, s.Items, "input snapshot must not change")
}

func TestInsert_EmptyCollection(t *testing.T) {
	item := domain.ContentItem{ID: "only", Stage: domain.Requested{}}
	next := Insert(NewState(), item)
	assert.Equal(t, []string{"only"}, ids(next.Items))
}

func TestInsert_NoDeduplication(t *testing.T) {
	item := domain.ContentItem{ID: "dup", Stage: domain.Requested{}}
	next := Insert(Insert(NewState(), item), item)
	assert.Equal(t, []string{"dup", "dup"}, ids(next.Items))
}

func TestUpdate(t *testing.T) {
	t.Run("matching id replaces in place", func(t *testing.T) {
		s := fixtureState()
		before := append([]domain.ContentItem(nil), s.Items...)

		replacement := s.Items[2]
		replacement.Stage = domain.InProgress{Author: "Jo"}
		replacement.UpdatedAt = fixedNow

		next, err := Update(s, replacement)
		require.NoError(t, err)

		assert.Equal(t, ids(s.Items), ids(next.Items))
		assert.Equal(t, replacement, next.Items[2])
		for i := range next.Items {
			if i != 2 {
				assert.Equal(t, s.Items[i], next.Items[i])
			}
		}
		assert.Equal(t, before, s.Items, "input snapshot must not change")
	})

	t.Run("unmatched id leaves state unchanged", func(t *testing.T) {
		s := fixtureState()

		next, err := Update(s, domain.ContentItem{ID: "missing", Title: "nope"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrItemNotFound))
		assert.Equal(t, s, next)
	})
}

func TestSetFilter(t *testing.T) {
	s := NewState()
	for _, f := range domain.ValidFilters {
		next, err := SetFilter(s, f)
		require.NoError(t, err)
		assert.Equal(t, f, next.Filter)
	}

	next, err := SetFilter(s, "draft")
	require.ErrorIs(t, err, domain.ErrInvalidFilter)
	assert.Equal(t, domain.FilterAll, next.Filter)
}

func TestSetQueryLoadingError(t *testing.T) {
	s := SetQuery(NewState(), "  React ")
	assert.Equal(t, "  React ", s.Query, "query is stored verbatim")

	s = SetLoading(s, true)
	assert.True(t, s.Loading)

	s = SetError(s, "boom")
	assert.Equal(t, "boom", s.Err)
	s = SetError(s, "")
	assert.Empty(t, s.Err)
}

func TestDerive_FilterProperty(t *testing.T) {
	items := domain.Fixtures(fixedNow)

	for _, f := range domain.ValidFilters {
		t.Run(string(f), func(t *testing.T) {
			view := Derive(items, f, "")
			if f == domain.FilterAll {
				assert.Len(t, view, len(items))
				return
			}
			for _, item := range view {
				assert.Equal(t, domain.Status(f), item.Status())
			}
			assert.Equal(t, CountItems(items).For(f), len(view))
		})
	}
}

func TestDerive_QueryProperty(t *testing.T) {
	items := domain.Fixtures(fixedNow)

	for _, q := range []string{"react", "REACT", "typescript", "accessibility", "seo", "zzz", "next.js", ""} {
		t.Run(fmt.Sprintf("q=%q", q), func(t *testing.T) {
			view := Derive(items, domain.FilterAll, q)
			inView := map[string]bool{}
			for _, item := range view {
				inView[item.ID] = true
			}
			lq := strings.ToLower(q)
			for _, item := range items {
				match := strings.Contains(strings.ToLower(item.Title), lq) ||
					strings.Contains(strings.ToLower(item.Description), lq) ||
					strings.Contains(strings.ToLower(item.Category), lq)
				assert.Equal(t, match, inView[item.ID], "item %s", item.ID)
			}
		})
	}
}

func TestDerive_StableOrder(t *testing.T) {
	items := domain.Fixtures(fixedNow)
	view := Derive(items, domain.FilterAll, "react")
	assert.Equal(t, []string{"1", "4"}, ids(view))
}

func TestDerive_PublishedReactScenario(t *testing.T) {
	items := domain.Fixtures(fixedNow)
	// Leave exactly one published item mentioning React.
	items[3].Title = "Building Accessible Components"
	items[3].Description = "Inclusive components with ARIA attributes and keyboard navigation."
	items[3].Category = "Accessibility"

	s, err := SetFilter(ReplaceAll(NewState(), items), domain.Filter(domain.StatusPublished))
	require.NoError(t, err)
	s = SetQuery(s, "react")

	view := s.View()
	require.Len(t, view, 1)
	assert.Equal(t, "1", view[0].ID)
	assert.Contains(t, view[0].Title, "React")
}

func TestDerive_CategoryMatch(t *testing.T) {
	items := []domain.ContentItem{
		{ID: "a", Title: "x", Description: "y", Category: "DevOps", Stage: domain.Requested{}},
		{ID: "b", Title: "x", Description: "y", Category: "Design", Stage: domain.Requested{}},
	}
	assert.Equal(t, []string{"a"}, ids(Derive(items, domain.FilterAll, "devops")))
}

func TestCountItems(t *testing.T) {
	c := CountItems(domain.Fixtures(fixedNow))
	assert.Equal(t, Counts{All: 4, Requested: 1, InProgress: 1, Published: 2}, c)
	assert.Equal(t, c.All, c.Requested+c.InProgress+c.Published)
	assert.Equal(t, 0, c.For("bogus"))
}

func TestPublishedGuides(t *testing.T) {
	guides := PublishedGuides(domain.Fixtures(fixedNow))
	assert.Equal(t, []string{"1", "4"}, ids(guides))

	assert.Empty(t, PublishedGuides(nil))
}

func TestGuideBySlug(t *testing.T) {
	items := domain.Fixtures(fixedNow)

	guide, err := GuideBySlug(items, "accessible-react-components")
	require.NoError(t, err)
	assert.Equal(t, "4", guide.ID)

	_, err = GuideBySlug(items, "missing")
	assert.ErrorIs(t, err, domain.ErrGuideNotFound)

	_, err = GuideBySlug(items, "")
	assert.ErrorIs(t, err, domain.ErrGuideNotFound)
}

func TestFind(t *testing.T) {
	s := fixtureState()
	item, ok := s.Find("2")
	require.True(t, ok)
	assert.Equal(t, domain.StatusInProgress, item.Status())

	_, ok = s.Find("nope")
	assert.False(t, ok)
}
