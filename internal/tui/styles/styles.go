// Package styles carries the TUI's theme table: the accent palette
// that drives sidebar, border, and status coloring, adapted from the
// teacher's theme-preset pattern and trimmed to this program's
// surfaces.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ThemeName is the display name of a theme.
type ThemeName string

const (
	ThemeDefault    ThemeName = "Default"
	ThemeSunset     ThemeName = "Sunset"
	ThemeDeepSea    ThemeName = "Deep Sea"
	ThemeNeonHacker ThemeName = "Neon Hacker"
)

// Preset is the accent palette for one theme.
type Preset struct {
	Name ThemeName

	Primary     color.Color
	Secondary   color.Color
	BorderFocus color.Color
	Green       color.Color
	Red         color.Color
	Muted       color.Color
}

func mustHex(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic("invalid hex color: " + hex)
	}
	return c
}

var presets = []Preset{
	{
		Name:        ThemeDefault,
		Primary:     mustHex("#7D56F4"),
		Secondary:   mustHex("#04B575"),
		BorderFocus: mustHex("#7D56F4"),
		Green:       mustHex("#04B575"),
		Red:         mustHex("#FF5555"),
		Muted:       mustHex("#626262"),
	},
	{
		Name:        ThemeSunset,
		Primary:     mustHex("#FF5F6D"),
		Secondary:   mustHex("#FFC371"),
		BorderFocus: mustHex("#FF5F6D"),
		Green:       mustHex("#FFB347"),
		Red:         mustHex("#FF4444"),
		Muted:       mustHex("#8A6F6F"),
	},
	{
		Name:        ThemeDeepSea,
		Primary:     mustHex("#00CED1"),
		Secondary:   mustHex("#00FFFF"),
		BorderFocus: mustHex("#00CED1"),
		Green:       mustHex("#00E5CC"),
		Red:         mustHex("#FF6B9D"),
		Muted:       mustHex("#4A6B6F"),
	},
	{
		Name:        ThemeNeonHacker,
		Primary:     mustHex("#39FF14"),
		Secondary:   mustHex("#00FF41"),
		BorderFocus: mustHex("#39FF14"),
		Green:       mustHex("#39FF14"),
		Red:         mustHex("#FF3131"),
		Muted:       mustHex("#2F6B2F"),
	},
}

// Styles holds the lipgloss styles derived from the active preset.
type Styles struct {
	activeTheme ThemeName

	Sidebar       lipgloss.Style
	SidebarActive lipgloss.Style
	Border        lipgloss.Style
	BorderFocus   lipgloss.Style
	Status        lipgloss.Style
	StatusMuted   lipgloss.Style
	Unread        lipgloss.Style
	Footer        lipgloss.Style
}

// New builds Styles from the default preset.
func New() *Styles {
	s := &Styles{}
	s.Apply(presets[0])
	return s
}

// Presets returns all available theme presets.
func Presets() []Preset {
	return presets
}

// ActiveTheme returns the name of the currently active theme.
func (s *Styles) ActiveTheme() ThemeName {
	return s.activeTheme
}

// Apply recolors every derived style from preset.
func (s *Styles) Apply(p Preset) {
	s.activeTheme = p.Name

	s.Sidebar = lipgloss.NewStyle().Width(25).Border(lipgloss.NormalBorder()).BorderForeground(p.Muted)
	s.SidebarActive = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	s.Border = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Muted)
	s.BorderFocus = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.BorderFocus)
	s.Status = lipgloss.NewStyle().Foreground(p.Secondary)
	s.StatusMuted = lipgloss.NewStyle().Foreground(p.Muted)
	s.Unread = lipgloss.NewStyle().Foreground(p.Red).Bold(true)
	s.Footer = lipgloss.NewStyle().Foreground(p.Muted)
}

// Cycle advances to the next theme preset and applies it, returning
// its name.
func (s *Styles) Cycle() ThemeName {
	idx := 0
	for i, p := range presets {
		if p.Name == s.activeTheme {
			idx = i
			break
		}
	}
	next := presets[(idx+1)%len(presets)]
	s.Apply(next)
	return next.Name
}
