package service

import (
	"log/slog"

	"content-hub/internal/domain"
	"content-hub/internal/logger"
	"content-hub/internal/store"
	"content-hub/internal/validator"
)

// PreferencesService manages display preferences. It is independent of the
// content store.
type PreferencesService struct {
	store     *store.Container[domain.Preferences]
	validator *validator.Validator
}

// NewPreferencesService creates a PreferencesService over an existing container.
func NewPreferencesService(st *store.Container[domain.Preferences], v *validator.Validator) *PreferencesService {
	return &PreferencesService{store: st, validator: v}
}

// Get returns the current preferences.
func (s *PreferencesService) Get() domain.Preferences {
	return s.store.Snapshot()
}

// Update validates patch and merges its non-nil fields.
func (s *PreferencesService) Update(patch domain.PreferencesPatch) (domain.Preferences, error) {
	if err := s.validator.ValidatePreferencesPatch(&patch); err != nil {
		return s.store.Snapshot(), err
	}
	next := s.store.Dispatch(func(p domain.Preferences) domain.Preferences {
		return store.UpdatePreferences(p, patch)
	})
	logger.Debug("Preferences updated",
		slog.String("theme", string(next.Theme)),
		slog.String("reading_mode", string(next.ReadingMode)))
	return next, nil
}

// SetUsername replaces the display name.
func (s *PreferencesService) SetUsername(username string) (domain.Preferences, error) {
	return s.Update(domain.PreferencesPatch{Username: &username})
}

// SetReadingMode replaces the reading mode.
func (s *PreferencesService) SetReadingMode(mode domain.ReadingMode) (domain.Preferences, error) {
	return s.store.DispatchErr(func(p domain.Preferences) (domain.Preferences, error) {
		return store.SetReadingMode(p, mode)
	})
}

// ToggleTheme flips between the light and dark themes.
func (s *PreferencesService) ToggleTheme() domain.Preferences {
	return s.store.Dispatch(store.ToggleTheme)
}

// AutoRefresh reports whether background refreshes are enabled.
func (s *PreferencesService) AutoRefresh() bool {
	return s.store.Snapshot().AutoRefresh
}
