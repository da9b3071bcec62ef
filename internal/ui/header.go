package ui

import "sync"

// Dropdown identifies which header dropdown is open. At most one is.
type Dropdown int

const (
	DropdownNone Dropdown = iota
	DropdownCategory
	DropdownCountry
)

// HeaderState is a snapshot of the header.
type HeaderState struct {
	MenuOpen bool
	Open     Dropdown
	Theme    Theme
}

func (s HeaderState) CategoryOpen() bool { return s.Open == DropdownCategory }
func (s HeaderState) CountryOpen() bool  { return s.Open == DropdownCountry }

// Header owns the navigation bar state: hamburger menu, the two dropdowns, and the theme.
type Header struct {
	mu      sync.Mutex
	state   HeaderState
	applier ThemeApplier
	cancel  func()
}

// NewHeader applies the light theme and subscribes to outside clicks when clicks is non-nil.
func NewHeader(applier ThemeApplier, clicks OutsideClicker) *Header {
	h := &Header{
		state:   HeaderState{Theme: LightTheme},
		applier: applier,
	}
	if h.applier != nil {
		h.applier.ApplyTheme(h.state.Theme)
	}
	if clicks != nil {
		h.cancel = clicks.OnOutsideClick(h.CloseDropdowns)
	}
	return h
}

// State returns a snapshot.
func (h *Header) State() HeaderState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *Header) ToggleMenu() HeaderState {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.MenuOpen = !h.state.MenuOpen
	return h.state
}

func (h *Header) CloseMenu() HeaderState {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.MenuOpen = false
	return h.state
}

// ToggleCategory opens the category dropdown, closing the country one, or closes it if open.
func (h *Header) ToggleCategory() HeaderState {
	return h.toggle(DropdownCategory)
}

// ToggleCountry opens the country dropdown, closing the category one, or closes it if open.
func (h *Header) ToggleCountry() HeaderState {
	return h.toggle(DropdownCountry)
}

func (h *Header) toggle(d Dropdown) HeaderState {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state.Open == d {
		h.state.Open = DropdownNone
	} else {
		h.state.Open = d
	}
	return h.state
}

func (h *Header) CloseDropdowns() {
	h.mu.Lock()
	h.state.Open = DropdownNone
	h.mu.Unlock()
}

// ToggleTheme flips the theme and applies it to the document root.
func (h *Header) ToggleTheme() Theme {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Theme = h.state.Theme.Toggle()
	if h.applier != nil {
		h.applier.ApplyTheme(h.state.Theme)
	}
	return h.state.Theme
}

// SelectCategory closes the dropdown and the menu and returns the route to navigate to.
func (h *Header) SelectCategory(name string) string {
	h.closeAll()
	return CategoryPath(name)
}

// SelectCountry closes the dropdown and the menu and returns the route to navigate to.
func (h *Header) SelectCountry(iso string) string {
	h.closeAll()
	return CountryPath(iso)
}

// SelectAllNews closes the menu and returns the all-news route.
func (h *Header) SelectAllNews() string {
	h.CloseMenu()
	return AllNewsPath
}

func (h *Header) closeAll() {
	h.mu.Lock()
	h.state.Open = DropdownNone
	h.state.MenuOpen = false
	h.mu.Unlock()
}

// Close drops the outside-click subscription.
func (h *Header) Close() {
	if h.cancel != nil {
		h.cancel()
	}
}
