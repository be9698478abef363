package store

import (
	"fmt"

	"content-hub/internal/domain"
)

// SetUsername replaces the display name.
func SetUsername(p domain.Preferences, username string) domain.Preferences {
	p.Username = username
	return p
}

// ToggleTheme flips between the light and dark themes.
func ToggleTheme(p domain.Preferences) domain.Preferences {
	if p.Theme == domain.ThemeLight {
		p.Theme = domain.ThemeDark
	} else {
		p.Theme = domain.ThemeLight
	}
	return p
}

// SetReadingMode replaces the reading mode.
func SetReadingMode(p domain.Preferences, mode domain.ReadingMode) (domain.Preferences, error) {
	switch mode {
	case domain.ReadingModeCompact, domain.ReadingModeDetailed:
		p.ReadingMode = mode
		return p, nil
	}
	return p, fmt.Errorf("%w: %q", domain.ErrInvalidReadingMode, mode)
}

// UpdatePreferences merges the non-nil fields of patch into p.
func UpdatePreferences(p domain.Preferences, patch domain.PreferencesPatch) domain.Preferences {
	if patch.Username != nil {
		p.Username = *patch.Username
	}
	if patch.Theme != nil {
		p.Theme = *patch.Theme
	}
	if patch.ReadingMode != nil {
		p.ReadingMode = *patch.ReadingMode
	}
	if patch.ShowAnimations != nil {
		p.ShowAnimations = *patch.ShowAnimations
	}
	if patch.AutoRefresh != nil {
		p.AutoRefresh = *patch.AutoRefresh
	}
	return p
}
