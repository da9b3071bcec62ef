package ui

import "sync"

// Theme is the class applied to the document root.
type Theme string

const (
	LightTheme Theme = "light-theme"
	DarkTheme  Theme = "dark-theme"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == DarkTheme {
		return LightTheme
	}
	return DarkTheme
}

// ToggleLabel is the caption of the control that switches away from t.
func (t Theme) ToggleLabel() string {
	if t == DarkTheme {
		return "Light Mode"
	}
	return "Dark Mode"
}

// ThemeApplier receives every theme change.
type ThemeApplier interface {
	ApplyTheme(Theme)
}

// DocumentRoot holds the root class of one rendered document. It lives in memory only.
type DocumentRoot struct {
	mu    sync.RWMutex
	class Theme
}

func (d *DocumentRoot) ApplyTheme(t Theme) {
	d.mu.Lock()
	d.class = t
	d.mu.Unlock()
}

// Class returns the applied theme class, or the empty string before any theme was applied.
func (d *DocumentRoot) Class() Theme {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.class
}
