package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status is the editorial status of a content item.
type Status string

const (
	StatusRequested  Status = "requested"
	StatusInProgress Status = "in-progress"
	StatusPublished  Status = "published"
)

// ValidStatuses contains all valid content statuses, in lifecycle order.
var ValidStatuses = []Status{StatusRequested, StatusInProgress, StatusPublished}

// IsValidStatus checks if a status is valid.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if string(s) == status {
			return true
		}
	}
	return false
}

// Stage carries the status-specific fields of a content item.
// Only the types declared in this package implement it.
type Stage interface {
	Status() Status
	stage()
}

// Requested is the stage of a freshly submitted item.
type Requested struct{}

// InProgress is the stage of an item someone is writing.
type InProgress struct {
	Author string
}

// Published is the stage of an item addressable as a standalone guide.
type Published struct {
	Slug   string
	Author string
}

func (Requested) Status() Status  { return StatusRequested }
func (InProgress) Status() Status { return StatusInProgress }
func (Published) Status() Status  { return StatusPublished }

func (Requested) stage()  {}
func (InProgress) stage() {}
func (Published) stage()  {}

// ContentItem is a community content request or published guide.
type ContentItem struct {
	ID          string
	Title       string
	Description string
	Category    string
	Stage       Stage
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Tags        []string
}

// Status returns the item's status. A nil stage reads as requested.
func (c ContentItem) Status() Status {
	if c.Stage == nil {
		return StatusRequested
	}
	return c.Stage.Status()
}

// Slug returns the guide slug, or "" when the item is not published.
func (c ContentItem) Slug() string {
	if p, ok := c.Stage.(Published); ok {
		return p.Slug
	}
	return ""
}

// Author returns the assigned author, if any.
func (c ContentItem) Author() string {
	switch s := c.Stage.(type) {
	case InProgress:
		return s.Author
	case Published:
		return s.Author
	}
	return ""
}

// IsGuide reports whether the item can be read as a standalone guide.
func (c ContentItem) IsGuide() bool {
	return c.Slug() != ""
}

// Clone returns a copy that shares no mutable state with c.
func (c ContentItem) Clone() ContentItem {
	if c.Tags != nil {
		c.Tags = append([]string(nil), c.Tags...)
	}
	return c
}

// contentItemJSON is the flat wire shape of a ContentItem.
type contentItemJSON struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Category    string    `json:"category" yaml:"category"`
	Status      Status    `json:"status" yaml:"status"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
	Slug        string    `json:"slug,omitempty" yaml:"slug,omitempty"`
	Author      string    `json:"author,omitempty" yaml:"author,omitempty"`
	Tags        []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// MarshalJSON encodes the item in its flat wire shape.
func (c ContentItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.flatten())
}

// UnmarshalJSON decodes the flat wire shape, rejecting slugs on unpublished items.
func (c *ContentItem) UnmarshalJSON(data []byte) error {
	var raw contentItemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	item, err := raw.item()
	if err != nil {
		return err
	}
	*c = item
	return nil
}

// MarshalYAML encodes the item in its flat shape for seed files.
func (c ContentItem) MarshalYAML() (interface{}, error) {
	return c.flatten(), nil
}

// UnmarshalYAML decodes the flat seed file shape.
func (c *ContentItem) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw contentItemJSON
	if err := unmarshal(&raw); err != nil {
		return err
	}
	item, err := raw.item()
	if err != nil {
		return err
	}
	*c = item
	return nil
}

func (c ContentItem) flatten() contentItemJSON {
	return contentItemJSON{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Status:      c.Status(),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		Slug:        c.Slug(),
		Author:      c.Author(),
		Tags:        c.Tags,
	}
}

func (raw contentItemJSON) item() (ContentItem, error) {
	stage, err := NewStage(raw.Status, raw.Slug, raw.Author)
	if err != nil {
		return ContentItem{}, fmt.Errorf("item %q: %w", raw.ID, err)
	}
	return ContentItem{
		ID:          raw.ID,
		Title:       raw.Title,
		Description: raw.Description,
		Category:    raw.Category,
		Stage:       stage,
		CreatedAt:   raw.CreatedAt,
		UpdatedAt:   raw.UpdatedAt,
		Tags:        raw.Tags,
	}, nil
}

// NewStage builds the stage for a flat status/slug/author triple.
// A slug is only accepted on published items and is required there.
func NewStage(status Status, slug, author string) (Stage, error) {
	switch status {
	case StatusRequested:
		if slug != "" {
			return nil, ErrSlugWithoutPublished
		}
		if author != "" {
			return nil, fmt.Errorf("%w: requested items have no author", ErrInvalidStatus)
		}
		return Requested{}, nil
	case StatusInProgress:
		if slug != "" {
			return nil, ErrSlugWithoutPublished
		}
		return InProgress{Author: author}, nil
	case StatusPublished:
		if slug == "" {
			return nil, ErrPublishedWithoutSlug
		}
		return Published{Slug: slug, Author: author}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
}

// CreateInput is a user-authored content request.
type CreateInput struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
}

// NewRequestedItem synthesizes a new item from a validated submission.
func NewRequestedItem(id string, input CreateInput, now time.Time) ContentItem {
	return ContentItem{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Stage:       Requested{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Categories are the category suggestions offered on the submission form.
// Category stays free text; anything non-empty is accepted.
var Categories = []string{
	"React",
	"Next.js",
	"TypeScript",
	"JavaScript",
	"Node.js",
	"CSS",
	"Accessibility",
	"Performance",
	"Testing",
	"DevOps",
	"Design",
	"Other",
}
