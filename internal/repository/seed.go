package repository

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"content-hub/internal/domain"
)

// SeedFile is the YAML document accepted by LoadSeedFile.
type SeedFile struct {
	Items []domain.ContentItem `yaml:"items"`
}

// LoadSeedFile reads content items from a YAML seed file. Every item must
// carry a unique ID and published slugs must be unique. Status-specific
// fields are checked while decoding.
func LoadSeedFile(path string) ([]domain.ContentItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes a YAML seed document.
func ParseSeed(data []byte) ([]domain.ContentItem, error) {
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	seen := make(map[string]bool, len(seed.Items))
	slugs := make(map[string]bool, len(seed.Items))
	for i, item := range seed.Items {
		if item.ID == "" {
			return nil, fmt.Errorf("seed item %d: missing id", i)
		}
		if seen[item.ID] {
			return nil, fmt.Errorf("seed item %d: duplicate id %q", i, item.ID)
		}
		if !item.UpdatedAt.IsZero() && item.UpdatedAt.Before(item.CreatedAt) {
			return nil, fmt.Errorf("seed item %d: updatedAt before createdAt", i)
		}
		if slug := item.Slug(); slug != "" {
			if slugs[slug] {
				return nil, fmt.Errorf("seed item %d: slug %q: %w", i, slug, domain.ErrDuplicateSlug)
			}
			slugs[slug] = true
		}
		seen[item.ID] = true
		if item.UpdatedAt.IsZero() {
			seed.Items[i].UpdatedAt = item.CreatedAt
		}
	}
	sortNewestFirst(seed.Items)
	return seed.Items, nil
}
