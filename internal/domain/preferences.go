package domain

// Theme is the display theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ReadingMode controls how much of each item is shown.
type ReadingMode string

const (
	ReadingModeCompact  ReadingMode = "compact"
	ReadingModeDetailed ReadingMode = "detailed"
)

// DefaultUsername is shown until the user picks a name.
const DefaultUsername = "Anonymous User"

// Preferences holds per-user display preferences.
type Preferences struct {
	Username       string      `json:"username"`
	Theme          Theme       `json:"theme"`
	ReadingMode    ReadingMode `json:"readingMode"`
	ShowAnimations bool        `json:"showAnimations"`
	AutoRefresh    bool        `json:"autoRefresh"`
}

// DefaultPreferences returns the preferences of a new user.
func DefaultPreferences() Preferences {
	return Preferences{
		Username:       DefaultUsername,
		Theme:          ThemeLight,
		ReadingMode:    ReadingModeDetailed,
		ShowAnimations: true,
		AutoRefresh:    true,
	}
}

// PreferencesPatch is a partial preferences update; nil fields are left alone.
type PreferencesPatch struct {
	Username       *string      `json:"username,omitempty"`
	Theme          *Theme       `json:"theme,omitempty"`
	ReadingMode    *ReadingMode `json:"readingMode,omitempty"`
	ShowAnimations *bool        `json:"showAnimations,omitempty"`
	AutoRefresh    *bool        `json:"autoRefresh,omitempty"`
}
