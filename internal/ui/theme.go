package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Border     lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Danger     lipgloss.Color
	BarFill    lipgloss.Color
	BarEmpty   lipgloss.Color
}

var palettes = map[string]palette{
	// house palette, warm like the shop lanterns
	"miso": {
		Background: lipgloss.Color("#1c1814"),
		Surface:    lipgloss.Color("#2a241e"),
		Text:       lipgloss.Color("#f2e5cf"),
		Muted:      lipgloss.Color("#a89678"),
		Accent:     lipgloss.Color("#e8a33d"),
		Border:     lipgloss.Color("#4a4036"),
		Success:    lipgloss.Color("#9cbf5f"),
		Warning:    lipgloss.Color("#e8c33d"),
		Danger:     lipgloss.Color("#d95f4c"),
		BarFill:    lipgloss.Color("#e8a33d"),
		BarEmpty:   lipgloss.Color("#2a241e"),
	},
	"catppuccin": {
		Background: lipgloss.Color("#1e1e2e"),
		Surface:    lipgloss.Color("#313244"),
		Text:       lipgloss.Color("#cdd6f4"),
		Muted:      lipgloss.Color("#a6adc8"),
		Accent:     lipgloss.Color("#cba6f7"),
		Border:     lipgloss.Color("#585b70"),
		Success:    lipgloss.Color("#94e2d5"),
		Warning:    lipgloss.Color("#f9e2af"),
		Danger:     lipgloss.Color("#f38ba8"),
		BarFill:    lipgloss.Color("#94e2d5"),
		BarEmpty:   lipgloss.Color("#313244"),
	},
	"gruvbox": {
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Text:       lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#a89984"),
		Accent:     lipgloss.Color("#fabd2f"),
		Border:     lipgloss.Color("#665c54"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fe8019"),
		Danger:     lipgloss.Color("#fb4934"),
		BarFill:    lipgloss.Color("#b8bb26"),
		BarEmpty:   lipgloss.Color("#3c3836"),
	},
}

func paletteFor(name string) palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["miso"]
}

func themeNames() []string {
	names := make([]string, 0, len(palettes))
	for k := range palettes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func nextThemeName(current string, step int) string {
	names := themeNames()
	if len(names) == 0 {
		return current
	}
	idx := 0
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}
	idx = (idx + step) % len(names)
	if idx < 0 {
		idx += len(names)
	}
	return names[idx]
}
