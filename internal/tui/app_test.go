package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/filemanifest/internal/config"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func TestNewModel(t *testing.T) {
	m := NewModel(Options{})
	assert.Equal(t, stateMenu, m.state)
	assert.Equal(t, FromConfig(config.Default()), m.values)
	assert.Nil(t, m.Init())
}

func TestModel_MenuNavigation(t *testing.T) {
	m := NewModel(Options{})

	m, _ = press(t, m, "up")
	assert.Equal(t, 0, m.menuIndex)

	m, _ = press(t, m, "down", "j")
	assert.Equal(t, 2, m.menuIndex)

	for range Categories {
		m, _ = press(t, m, "down")
	}
	assert.Equal(t, len(Categories), m.menuIndex, "cursor stops on the save entry")

	m, _ = press(t, m, "k")
	assert.Equal(t, len(Categories)-1, m.menuIndex)
}

func TestModel_OpenAndLeaveForm(t *testing.T) {
	m := NewModel(Options{})

	m, _ = press(t, m, "down", "enter")
	assert.Equal(t, stateForm, m.state)
	assert.Equal(t, "filters", m.category)
	require.NotNil(t, m.currentForm)
	assert.Contains(t, m.View(), GetCategoryByID("filters").Description)

	m, _ = press(t, m, "esc")
	assert.Equal(t, stateMenu, m.state)
	assert.False(t, m.dirty)
}

func TestModel_Save(t *testing.T) {
	var saved *config.Config
	cfg := config.Default()
	cfg.Scan.RootLabel = "DOCS"

	m := NewModel(Options{
		Config:   cfg,
		SaveFunc: func(c *config.Config) error { saved = c; return nil },
	})

	m, _ = press(t, m, "s")
	assert.Equal(t, stateSaved, m.state)
	require.NotNil(t, saved)
	assert.Equal(t, "DOCS", saved.Scan.RootLabel)
	assert.Contains(t, m.View(), "saved successfully")

	_, cmd := press(t, m, "x")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_SaveErrors(t *testing.T) {
	t.Run("save function fails", func(t *testing.T) {
		m := NewModel(Options{
			SaveFunc: func(*config.Config) error { return errors.New("read-only file system") },
		})

		m, _ = press(t, m, "s")
		assert.Equal(t, stateError, m.state)
		assert.Contains(t, m.View(), "read-only file system")
	})

	t.Run("invalid values", func(t *testing.T) {
		m := NewModel(Options{})
		m.values.Debounce = "soon"

		m, _ = press(t, m, "s")
		assert.Equal(t, stateError, m.state)
		assert.Contains(t, m.View(), "invalid debounce")
	})
}

func TestModel_QuitWithUnsavedChanges(t *testing.T) {
	saves := 0
	newDirty := func() Model {
		m := NewModel(Options{SaveFunc: func(*config.Config) error { saves++; return nil }})
		m.dirty = true
		return m
	}

	t.Run("cancel returns to menu", func(t *testing.T) {
		m, _ := press(t, newDirty(), "q")
		assert.Equal(t, stateConfirm, m.state)
		assert.Contains(t, m.View(), "unsaved changes")

		m, _ = press(t, m, "c")
		assert.Equal(t, stateMenu, m.state)
	})

	t.Run("yes saves", func(t *testing.T) {
		m, _ := press(t, newDirty(), "q", "y")
		assert.Equal(t, stateSaved, m.state)
		assert.Equal(t, 1, saves)
	})

	t.Run("no quits", func(t *testing.T) {
		_, cmd := press(t, newDirty(), "esc", "n")
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})
}

func TestModel_QuitClean(t *testing.T) {
	_, cmd := press(t, NewModel(Options{}), "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_View(t *testing.T) {
	m := NewModel(Options{Path: "/home/u/.filemanifest/config.yaml"})
	view := m.View()

	assert.Contains(t, view, "filemanifest Configuration")
	assert.Contains(t, view, "/home/u/.filemanifest/config.yaml")
	for _, cat := range Categories {
		assert.Contains(t, view, cat.Name)
	}
	assert.Contains(t, view, "Save Configuration")

	m.dirty = true
	assert.Contains(t, m.View(), "Save Configuration *")
}

func TestModel_WindowSize(t *testing.T) {
	next, cmd := NewModel(Options{}).Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m := next.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, 100, m.width)
	assert.Equal(t, 40, m.height)
}
