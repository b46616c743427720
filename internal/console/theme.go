package console

import "github.com/charmbracelet/lipgloss"

// Theme names accepted by the config and the `config theme` command.
const (
	ThemeDefault = "default"
	ThemeMono    = "mono"
	ThemeSakura  = "sakura"
)

// Theme bundles the styles used across the terminal surface.
type Theme struct {
	Name string

	Panel   lipgloss.Style // assistant message panels
	Title   lipgloss.Style // panel titles and section headers
	Thought lipgloss.Style // dim reasoning lines
	Command lipgloss.Style // proposed shell commands
	Warn    lipgloss.Style
	Error   lipgloss.Style
	Prompt  lipgloss.Style // input prompt labels
	Muted   lipgloss.Style // secondary detail (durations, counters)
}

// themePalette is the raw color set a Theme is built from.
type themePalette struct {
	accent  lipgloss.Color
	border  lipgloss.Color
	dim     lipgloss.Color
	warn    lipgloss.Color
	errCol  lipgloss.Color
	command lipgloss.Color
}

var palettes = map[string]themePalette{
	ThemeDefault: {
		accent:  lipgloss.Color("39"),  // blue
		border:  lipgloss.Color("39"),
		dim:     lipgloss.Color("245"),
		warn:    lipgloss.Color("214"),
		errCol:  lipgloss.Color("196"),
		command: lipgloss.Color("150"),
	},
	ThemeMono: {
		accent:  lipgloss.Color("252"),
		border:  lipgloss.Color("240"),
		dim:     lipgloss.Color("243"),
		warn:    lipgloss.Color("250"),
		errCol:  lipgloss.Color("255"),
		command: lipgloss.Color("252"),
	},
	ThemeSakura: {
		accent:  lipgloss.Color("211"),
		border:  lipgloss.Color("175"),
		dim:     lipgloss.Color("245"),
		warn:    lipgloss.Color("216"),
		errCol:  lipgloss.Color("203"),
		command: lipgloss.Color("182"),
	},
}

// NewTheme builds a Theme by name. Unknown names fall back to the default
// palette so a stale config value never breaks output.
func NewTheme(name string) Theme {
	p, ok := palettes[name]
	if !ok {
		name = ThemeDefault
		p = palettes[ThemeDefault]
	}

	return Theme{
		Name: name,
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
		Title:   lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		Thought: lipgloss.NewStyle().Foreground(p.dim).Italic(true),
		Command: lipgloss.NewStyle().Foreground(p.command).Bold(true),
		Warn:    lipgloss.NewStyle().Foreground(p.warn),
		Error:   lipgloss.NewStyle().Foreground(p.errCol).Bold(true),
		Prompt:  lipgloss.NewStyle().Foreground(p.accent),
		Muted:   lipgloss.NewStyle().Foreground(p.dim),
	}
}

// ThemeNames lists the selectable themes in display order.
func ThemeNames() []string {
	return []string{ThemeDefault, ThemeMono, ThemeSakura}
}
