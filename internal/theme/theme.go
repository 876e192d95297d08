// Package theme holds the display theme. The active theme is an explicit
// value passed to whoever renders output; nothing in this package is
// process-global, so two renderers can hold different themes.
package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/kopi/internal/storage"
)

// Name identifies a theme.
type Name string

const (
	Dark  Name = "dark"
	Light Name = "light"
)

// DefaultName is used when nothing was persisted.
const DefaultName = Dark

// Theme is a resolved set of styles for terminal output.
type Theme struct {
	Name Name

	Title     lipgloss.Style
	Header    lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style
	Border    lipgloss.Style
}

// Resolve builds the style set for a theme name. Unknown names fall back
// to the default.
func Resolve(name Name) Theme {
	switch name {
	case Light:
		return Theme{
			Name:      Light,
			Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("25")),
			Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("236")),
			Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
			Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("124")),
			Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
			Border:    lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("250")),
		}
	default:
		return Theme{
			Name:      Dark,
			Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
			Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
			Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Border:    lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("238")),
		}
	}
}

// Load reads the persisted theme name, falling back to the default.
func Load(st storage.Store) Theme {
	raw, err := st.Get(storage.KeyTheme)
	if err != nil {
		return Resolve(DefaultName)
	}

	name := Name(raw)
	if name != Dark && name != Light {
		return Resolve(DefaultName)
	}
	return Resolve(name)
}

// Save persists the theme choice.
func Save(st storage.Store, name Name) error {
	if name != Dark && name != Light {
		return fmt.Errorf("unknown theme %q", name)
	}
	return st.Put(storage.KeyTheme, []byte(name))
}
