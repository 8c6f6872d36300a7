package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named color palette.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Info       lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
}

// DefaultTheme is applied at startup and whenever a saved theme is unknown.
const DefaultTheme = "classic"

var Themes = map[string]Theme{
	"classic": {
		Name:       "classic",
		Primary:    "#FF6B9D",
		Secondary:  "#C792EA",
		Success:    "#C3E88D",
		Warning:    "#FFCB6B",
		Error:      "#F07178",
		Info:       "#82AAFF",
		Muted:      "#546E7A",
		Background: "#263238",
		Foreground: "#EEFFFF",
	},
	"ocean": {
		Name:       "ocean",
		Primary:    "#4FC3F7",
		Secondary:  "#80CBC4",
		Success:    "#A5D6A7",
		Warning:    "#FFE082",
		Error:      "#EF9A9A",
		Info:       "#90CAF9",
		Muted:      "#607D8B",
		Background: "#0F1C2E",
		Foreground: "#E3F2FD",
	},
	"forest": {
		Name:       "forest",
		Primary:    "#8BC34A",
		Secondary:  "#CDDC39",
		Success:    "#AED581",
		Warning:    "#FFB74D",
		Error:      "#E57373",
		Info:       "#4DB6AC",
		Muted:      "#6D7B6A",
		Background: "#1B2418",
		Foreground: "#F1F8E9",
	},
	"sunset": {
		Name:       "sunset",
		Primary:    "#FF8A65",
		Secondary:  "#FFB74D",
		Success:    "#C5E1A5",
		Warning:    "#FFD54F",
		Error:      "#FF5252",
		Info:       "#B39DDB",
		Muted:      "#8D6E63",
		Background: "#2B1B17",
		Foreground: "#FFF3E0",
	},
}

// ThemeNames returns the theme names sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(Themes))
	for n := range Themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var (
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Info       lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color

	RoundedBorder = lipgloss.RoundedBorder()
	ThickBorder   = lipgloss.ThickBorder()
)

var (
	TitleStyle         lipgloss.Style
	SubtitleStyle      lipgloss.Style
	TextStyle          lipgloss.Style
	MutedStyle         lipgloss.Style
	SelectedStyle      lipgloss.Style
	CardStyle          lipgloss.Style
	ActiveCardStyle    lipgloss.Style
	ModalStyle         lipgloss.Style
	StatusActive       lipgloss.Style
	StatusCompleted    lipgloss.Style
	StatusWarning      lipgloss.Style
	StatusError        lipgloss.Style
	ProgressBarStyle   lipgloss.Style
	ProgressEmptyStyle lipgloss.Style
	ActiveTabStyle     lipgloss.Style
	InactiveTabStyle   lipgloss.Style
	HelpStyle          lipgloss.Style
	InputStyle         lipgloss.Style
	FocusedInputStyle  lipgloss.Style
	MarkerStyle        lipgloss.Style
	HighlightStyle     lipgloss.Style
	DisabledStyle      lipgloss.Style
)

var current Theme

func init() {
	Apply(Themes[DefaultTheme])
}

// Current returns the applied theme.
func Current() Theme {
	return current
}

// ApplyNamed applies a named theme. A valid customColor replaces the primary
// color when useCustom is set. Unknown names fall back to the default theme;
// the return value reports whether name was known.
func ApplyNamed(name, customColor string, useCustom bool) bool {
	t, ok := Themes[name]
	if !ok {
		t = Themes[DefaultTheme]
	}
	if useCustom && IsHexColor(customColor) {
		t.Primary = lipgloss.Color(customColor)
	}
	Apply(t)
	return ok
}

// IsHexColor accepts #RGB and #RRGGBB.
func IsHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Apply rebuilds every style from t.
func Apply(t Theme) {
	current = t
	Primary, Secondary = t.Primary, t.Secondary
	Success, Warning, Error, Info = t.Success, t.Warning, t.Error, t.Info
	Muted, Background, Foreground = t.Muted, t.Background, t.Foreground

	TitleStyle = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(Secondary).
		Italic(true)

	TextStyle = lipgloss.NewStyle().
		Foreground(Foreground)

	MutedStyle = lipgloss.NewStyle().
		Foreground(Muted)

	SelectedStyle = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	CardStyle = lipgloss.NewStyle().
		Border(RoundedBorder).
		BorderForeground(Secondary).
		Padding(0, 1)

	ActiveCardStyle = lipgloss.NewStyle().
		Border(ThickBorder).
		BorderForeground(Primary).
		Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
		Border(ThickBorder).
		BorderForeground(Primary).
		Padding(1, 2)

	StatusActive = lipgloss.NewStyle().
		Foreground(Info).
		Bold(true)

	StatusCompleted = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	StatusWarning = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)

	StatusError = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	ProgressBarStyle = lipgloss.NewStyle().
		Foreground(Primary)

	ProgressEmptyStyle = lipgloss.NewStyle().
		Foreground(Muted)

	ActiveTabStyle = lipgloss.NewStyle().
		Foreground(Primary).
		Background(lipgloss.Color("#37474F")).
		Padding(0, 2).
		Bold(true)

	InactiveTabStyle = lipgloss.NewStyle().
		Foreground(Muted).
		Padding(0, 2)

	HelpStyle = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true).
		MarginTop(1)

	InputStyle = lipgloss.NewStyle().
		Border(RoundedBorder).
		BorderForeground(Secondary).
		Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
		Border(RoundedBorder).
		BorderForeground(Primary).
		Padding(0, 1)

	MarkerStyle = lipgloss.NewStyle().
		Foreground(Secondary)

	HighlightStyle = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	DisabledStyle = lipgloss.NewStyle().
		Foreground(Muted).
		Strikethrough(true)
}

// StatusStyle maps a sync status to its style.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "checking", "downloading":
		return StatusActive
	case "complete", "skipped":
		return StatusCompleted
	case "missing":
		return StatusWarning
	case "error":
		return StatusError
	default:
		return MutedStyle
	}
}
