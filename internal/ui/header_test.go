package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderStartsLightAndClosed(t *testing.T) {
	root := &DocumentRoot{}
	h := NewHeader(root, nil)

	s := h.State()
	assert.False(t, s.MenuOpen)
	assert.Equal(t, DropdownNone, s.Open)
	assert.Equal(t, LightTheme, s.Theme)
	assert.Equal(t, LightTheme, root.Class())
}

func TestHeaderDropdownsAreMutuallyExclusive(t *testing.T) {
	h := NewHeader(nil, nil)

	s := h.ToggleCategory()
	assert.True(t, s.CategoryOpen())
	assert.False(t, s.CountryOpen())

	s = h.ToggleCountry()
	assert.True(t, s.CountryOpen())
	assert.False(t, s.CategoryOpen())

	s = h.ToggleCountry()
	assert.Equal(t, DropdownNone, s.Open)
}

func TestHeaderToggleThemeAppliesToRoot(t *testing.T) {
	root := &DocumentRoot{}
	h := NewHeader(root, nil)

	assert.Equal(t, DarkTheme, h.ToggleTheme())
	assert.Equal(t, DarkTheme, root.Class())
	assert.Equal(t, "Light Mode", h.State().Theme.ToggleLabel())

	assert.Equal(t, LightTheme, h.ToggleTheme())
	assert.Equal(t, LightTheme, root.Class())
	assert.Equal(t, "Dark Mode", h.State().Theme.ToggleLabel())
}

func TestHeaderSelectionClosesEverything(t *testing.T) {
	h := NewHeader(nil, nil)
	h.ToggleMenu()
	h.ToggleCategory()

	assert.Equal(t, "/top-headlines/sports", h.SelectCategory("sports"))
	s := h.State()
	assert.False(t, s.MenuOpen)
	assert.Equal(t, DropdownNone, s.Open)

	h.ToggleMenu()
	h.ToggleCountry()
	assert.Equal(t, "/country/in", h.SelectCountry("in"))
	s = h.State()
	assert.False(t, s.MenuOpen)
	assert.Equal(t, DropdownNone, s.Open)
}

func TestHeaderAllNewsClosesMenu(t *testing.T) {
	h := NewHeader(nil, nil)
	h.ToggleMenu()

	assert.Equal(t, "/", h.SelectAllNews())
	assert.False(t, h.State().MenuOpen)
}

func TestOutsideClickClosesDropdowns(t *testing.T) {
	bus := NewClickBus()
	h := NewHeader(nil, bus)
	h.ToggleMenu()
	h.ToggleCountry()

	bus.Pointer(true)
	require.True(t, h.State().CountryOpen(), "click inside the dropdown must not close it")

	bus.Pointer(false)
	s := h.State()
	assert.Equal(t, DropdownNone, s.Open)
	assert.True(t, s.MenuOpen, "outside click leaves the menu alone")
}

func TestHeaderCloseUnsubscribes(t *testing.T) {
	bus := NewClickBus()
	h := NewHeader(nil, bus)
	require.Equal(t, 1, bus.Subscribers())

	h.Close()
	h.Close()
	assert.Equal(t, 0, bus.Subscribers())

	h.ToggleCategory()
	bus.Pointer(false)
	assert.True(t, h.State().CategoryOpen())
}
