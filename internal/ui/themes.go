package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme represents a color theme for the terminal browser
type Theme struct {
	Name string

	// Brand colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	// Semantic colors
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	// UI colors
	Border     lipgloss.AdaptiveColor
	Background lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Selected   lipgloss.AdaptiveColor
}

// buildTheme creates a theme with the given [light, dark] colors
func buildTheme(name string, primary, secondary, accent, success, warning, errorColor, border, background, foreground, muted, selected [2]string) Theme {
	return Theme{
		Name:       name,
		Primary:    lipgloss.AdaptiveColor{Light: primary[0], Dark: primary[1]},
		Secondary:  lipgloss.AdaptiveColor{Light: secondary[0], Dark: secondary[1]},
		Accent:     lipgloss.AdaptiveColor{Light: accent[0], Dark: accent[1]},
		Success:    lipgloss.AdaptiveColor{Light: success[0], Dark: success[1]},
		Warning:    lipgloss.AdaptiveColor{Light: warning[0], Dark: warning[1]},
		Error:      lipgloss.AdaptiveColor{Light: errorColor[0], Dark: errorColor[1]},
		Border:     lipgloss.AdaptiveColor{Light: border[0], Dark: border[1]},
		Background: lipgloss.AdaptiveColor{Light: background[0], Dark: background[1]},
		Foreground: lipgloss.AdaptiveColor{Light: foreground[0], Dark: foreground[1]},
		Muted:      lipgloss.AdaptiveColor{Light: muted[0], Dark: muted[1]},
		Selected:   lipgloss.AdaptiveColor{Light: selected[0], Dark: selected[1]},
	}
}

// Available themes
var (
	// VSSTheme uses the studio's navy, gold and cream palette
	VSSTheme = buildTheme("vss",
		[2]string{"#0B1D3A", "#F8F5EF"}, [2]string{"#52607A", "#B8C2D6"}, [2]string{"#B8912A", "#D4AF37"},
		[2]string{"#2F7D4F", "#5FBF85"}, [2]string{"#B8912A", "#D4AF37"}, [2]string{"#A12B2B", "#E06666"},
		[2]string{"#D8D2C4", "#24385C"}, [2]string{"#F8F5EF", "#0B1D3A"}, [2]string{"#1B2A44", "#F8F5EF"},
		[2]string{"#6B7280", "#9CA3AF"}, [2]string{"#EFE6CF", "#1D3461"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#333333", "#DDDDDD"}, [2]string{"#8A6D00", "#FFD700"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CC6600", "#FFAA00"}, [2]string{"#CC0000", "#FF4444"},
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#FFFFFF", "#000000"}, [2]string{"#000000", "#FFFFFF"},
		[2]string{"#444444", "#BBBBBB"}, [2]string{"#FFFF00", "#444444"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#718096", "#A0AEC0"}, [2]string{"#4A5568", "#CBD5E0"},
		[2]string{"#2F855A", "#68D391"}, [2]string{"#C05621", "#F6AD55"}, [2]string{"#C53030", "#FC8181"},
		[2]string{"#E2E8F0", "#2D3748"}, [2]string{"#FFFFFF", "#1A202C"}, [2]string{"#2D3748", "#F7FAFC"},
		[2]string{"#A0AEC0", "#718096"}, [2]string{"#EDF2F7", "#2D3748"})
)

// Current active theme
var currentTheme = VSSTheme

// GetTheme returns the current active theme
func GetTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme
func SetTheme(theme *Theme) {
	currentTheme = *theme
}

// SetThemeByName sets the theme by name
func SetThemeByName(name string) bool {
	switch name {
	case "vss", "":
		SetTheme(&VSSTheme)
		return true
	case "high-contrast":
		SetTheme(&HighContrastTheme)
		return true
	case "minimal":
		SetTheme(&MinimalTheme)
		return true
	default:
		return false
	}
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"vss", "high-contrast", "minimal"}
}

// SetColorMode applies an auto|always|never color mode to lipgloss
func SetColorMode(mode string) {
	switch mode {
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
	default:
		if IsColorDisabled() {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	}
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	// Navigation bar
	Brand     lipgloss.Style
	NavItem   lipgloss.Style
	NavActive lipgloss.Style
	NavRule   lipgloss.Style

	// Content
	Heading lipgloss.Style
	Lead    lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Card    lipgloss.Style
	Stat    lipgloss.Style
	Callout lipgloss.Style

	// Interactive elements
	Link     lipgloss.Style
	Button   lipgloss.Style
	Focused  lipgloss.Style
	Input    lipgloss.Style
	TabOn    lipgloss.Style
	TabOff   lipgloss.Style
	Summary  lipgloss.Style
	Detail   lipgloss.Style
	HelpLine lipgloss.Style

	// Status
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// GetStyles builds the styles for the current theme
func GetStyles() *Styles {
	theme := GetTheme()

	return &Styles{
		Theme: theme,

		Brand: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Padding(0, 1),

		NavItem: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Padding(0, 1),

		NavActive: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Underline(true).
			Bold(true).
			Padding(0, 1),

		NavRule: lipgloss.NewStyle().
			Foreground(theme.Border),

		Heading: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Lead: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Stat: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Callout: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 2),

		Link: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Button: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Background(theme.Selected).
			Padding(0, 1),

		Focused: lipgloss.NewStyle().
			Foreground(theme.Background).
			Background(theme.Accent).
			Bold(true),

		Input: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Underline(true),

		TabOn: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Underline(true).
			Padding(0, 1),

		TabOff: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Summary: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Detail: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			PaddingLeft(4),

		HelpLine: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),
	}
}
