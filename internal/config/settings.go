package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/magnetdrop/internal/host"
)

// Settings keys for Fyne preferences
const (
	KeyFullLinkMode      = "full_link_mode"
	KeySearchType        = "search_type"
	KeyLanguage          = "app_language"
	KeyFenceStaleBatches = "fence_stale_batches"
	KeyMaxParallel       = "max_parallel_conversions"
)

// Default values
const (
	DefaultFullLinkMode      = false
	DefaultSearchType        = host.DefaultSearchType
	DefaultLanguage          = "system"
	DefaultFenceStaleBatches = true
	DefaultMaxParallel       = host.DefaultMaxParallel
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetFullLinkMode returns whether magnet links include trackers and web seeds
func (s *Settings) GetFullLinkMode() bool {
	return s.app.Preferences().BoolWithFallback(KeyFullLinkMode, DefaultFullLinkMode)
}

// SetFullLinkMode sets whether magnet links include trackers and web seeds
func (s *Settings) SetFullLinkMode(full bool) {
	s.app.Preferences().SetBool(KeyFullLinkMode, full)
}

// GetSearchType returns the field the search box matches against
func (s *Settings) GetSearchType() host.SearchType {
	value := s.app.Preferences().String(KeySearchType)
	searchType, err := host.ParseSearchType(value)
	if err != nil || value == "" {
		s.SetSearchType(DefaultSearchType)
		return DefaultSearchType
	}
	return searchType
}

// SetSearchType sets the field the search box matches against
func (s *Settings) SetSearchType(searchType host.SearchType) {
	if _, err := host.ParseSearchType(string(searchType)); err != nil {
		searchType = DefaultSearchType
	}
	s.app.Preferences().SetString(KeySearchType, string(searchType))
}

// GetSearchTypeOptions returns available search types
func (s *Settings) GetSearchTypeOptions() []host.SearchType {
	return host.SearchTypes()
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetFenceStaleBatches returns whether results of superseded drops are dropped
func (s *Settings) GetFenceStaleBatches() bool {
	return s.app.Preferences().BoolWithFallback(KeyFenceStaleBatches, DefaultFenceStaleBatches)
}

// SetFenceStaleBatches sets whether results of superseded drops are dropped
func (s *Settings) SetFenceStaleBatches(enabled bool) {
	s.app.Preferences().SetBool(KeyFenceStaleBatches, enabled)
}

// GetMaxParallelConversions returns how many torrent files are parsed at once
func (s *Settings) GetMaxParallelConversions() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelConversions(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelConversions sets how many torrent files are parsed at once
func (s *Settings) SetMaxParallelConversions(count int) {
	if count < host.MinMaxParallel {
		count = host.MinMaxParallel
	}
	s.app.Preferences().SetInt(KeyMaxParallel, host.ClampParallel(count))
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
		"zh":     "中文",
	}
}
