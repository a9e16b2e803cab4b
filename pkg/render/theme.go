package render

import "github.com/charmbracelet/lipgloss"

// Theme defines colors and icons for terminal rendering.
type Theme struct {
	Name    string
	Title   lipgloss.Style
	Key     lipgloss.Style
	Value   lipgloss.Style
	JSON    lipgloss.Style // structured values
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	BadgeV1 lipgloss.Style
	BadgeV2 lipgloss.Style
	Icons   ThemeIcons
}

// ThemeIcons defines the icon set for a theme.
type ThemeIcons struct {
	Fail   string
	Copy   string
	Bullet string
}

// DefaultTheme returns a vibrant color theme.
func DefaultTheme() Theme {
	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("231"))
	return Theme{
		Name:    "default",
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")), // blue
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Value:   lipgloss.NewStyle(),
		JSON:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("242")), // gray
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),  // green
		BadgeV1: badge.Background(lipgloss.Color("166")),
		BadgeV2: badge.Background(lipgloss.Color("33")),
		Icons: ThemeIcons{
			Fail:   "✗",
			Copy:   "⧉",
			Bullet: "·",
		},
	}
}

// OrcaTheme returns a muted, professional theme.
func OrcaTheme() Theme {
	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("235"))
	return Theme{
		Name:    "orca",
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75")), // pale blue
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Value:   lipgloss.NewStyle(),
		JSON:    lipgloss.NewStyle().Foreground(lipgloss.Color("179")), // muted gold
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("167")), // muted red
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("108")), // sage green
		BadgeV1: badge.Background(lipgloss.Color("179")),
		BadgeV2: badge.Background(lipgloss.Color("75")),
		Icons: ThemeIcons{
			Fail:   "✗",
			Copy:   "»",
			Bullet: "·",
		},
	}
}

// MonoTheme returns a monochrome theme (no colors).
func MonoTheme() Theme {
	return Theme{
		Name:    "mono",
		Title:   lipgloss.NewStyle().Bold(true),
		Key:     lipgloss.NewStyle(),
		Value:   lipgloss.NewStyle(),
		JSON:    lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
		Success: lipgloss.NewStyle(),
		BadgeV1: lipgloss.NewStyle().Bold(true),
		BadgeV2: lipgloss.NewStyle().Bold(true),
		Icons: ThemeIcons{
			Fail:   "x",
			Copy:   ">",
			Bullet: "-",
		},
	}
}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	switch name {
	case "orca":
		return OrcaTheme()
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}

// BadgeStyle returns the badge style for a protocol name.
func (t Theme) BadgeStyle(protocol string) lipgloss.Style {
	if protocol == "MPv2" {
		return t.BadgeV2
	}
	return t.BadgeV1
}
