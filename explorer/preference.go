package explorer

import (
	"github.com/mnee-network/explorer/core/types"
)

func (s *Session) loadTheme() {
	if s.store == nil {
		return
	}
	theme, err := s.store.LoadTheme()
	if err != nil {
		s.log.Warn().Err(err).Msg("cannot load theme preference, using default")
		return
	}
	s.theme = theme
}

// Theme returns the current theme.
func (s *Session) Theme() types.Theme {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.theme
}

// SetTheme changes the theme and persists it.
func (s *Session) SetTheme(theme types.Theme) error {
	defer countCommand("set_theme")

	if _, err := types.ParseTheme(string(theme)); err != nil {
		return err
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.setTheme(theme)
}

// ToggleTheme switches between light and dark and returns the new theme.
func (s *Session) ToggleTheme() (types.Theme, error) {
	defer countCommand("toggle_theme")

	s.lock.Lock()
	defer s.lock.Unlock()

	theme := s.theme.Toggle()
	return theme, s.setTheme(theme)
}

// ResetTheme goes back to the default theme without saving it, for use once
// the stored preferences were cleared.
func (s *Session) ResetTheme() types.Theme {
	defer countCommand("reset_theme")

	s.lock.Lock()
	defer s.lock.Unlock()

	s.theme = types.DefaultTheme
	return s.theme
}

// setTheme keeps the in-memory theme even when the store fails.
func (s *Session) setTheme(theme types.Theme) error {
	s.theme = theme
	if s.store == nil {
		return nil
	}
	if err := s.store.SaveTheme(theme); err != nil {
		s.log.Error().Err(err).Str("theme", string(theme)).Msg("cannot save theme preference")
		return err
	}
	return nil
}

// AutoRefresh reports whether the dashboard refreshes on its own.
func (s *Session) AutoRefresh() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.autoRefresh
}

// ToggleAutoRefresh flips auto refresh and returns the new value.
func (s *Session) ToggleAutoRefresh() bool {
	defer countCommand("toggle_auto_refresh")

	s.lock.Lock()
	defer s.lock.Unlock()

	s.autoRefresh = !s.autoRefresh
	return s.autoRefresh
}
