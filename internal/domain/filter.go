package domain

// Filter selects which statuses the content view shows.
type Filter string

// FilterAll matches every status.
const FilterAll Filter = "all"

// ValidFilters contains all valid filters.
var ValidFilters = []Filter{FilterAll, Filter(StatusRequested), Filter(StatusInProgress), Filter(StatusPublished)}

// IsValidFilter checks if a filter is valid.
func IsValidFilter(filter string) bool {
	for _, f := range ValidFilters {
		if string(f) == filter {
			return true
		}
	}
	return false
}

// Matches reports whether an item with the given status passes the filter.
func (f Filter) Matches(status Status) bool {
	return f == FilterAll || Status(f) == status
}
