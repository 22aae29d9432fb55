// Package styles contains Lip Gloss style definitions.
package styles

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"catppuccin-latte": CatppuccinLattePreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// DefaultPreset is the stock plank color scheme.
// Color values match the styles.go AdaptiveColor definitions (Dark values).
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default plank theme",
	Colors: map[ColorToken]string{
		// Text hierarchy
		TokenTextPrimary:     "#CCCCCC",
		TokenTextSecondary:   "#BBBBBB",
		TokenTextMuted:       "#696969",
		TokenTextDescription: "#999999",
		TokenTextPlaceholder: "#777777",

		// Borders
		TokenBorderDefault:   "#696969",
		TokenBorderFocus:     "#FFFFFF",
		TokenBorderHighlight: "#54A0FF",

		// Status indicators
		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",

		// Selection
		TokenSelectionIndicator: "#FFFFFF",

		// Buttons
		TokenButtonText:             "#FFFFFF",
		TokenButtonPrimaryBg:        "#1A5276",
		TokenButtonPrimaryFocusBg:   "#3498DB",
		TokenButtonSecondaryBg:      "#2D3436",
		TokenButtonSecondaryFocusBg: "#636E72",
		TokenButtonDisabledBg:       "#2D2D2D",

		// Forms
		TokenFormBorder:      "#8C8C8C",
		TokenFormBorderFocus: "#FFFFFF",
		TokenFormLabel:       "#8C8C8C",
		TokenFormLabelFocus:  "#FFFFFF",

		// Overlays/Modals
		TokenOverlayTitle:  "#C9C9C9",
		TokenOverlayBorder: "#8C8C8C",

		// Toast notifications
		TokenToastSuccess: "#73F59F",
		TokenToastError:   "#FF8787",
		TokenToastInfo:    "#54A0FF",
		TokenToastWarn:    "#FECA57",

		// Project status
		TokenProjectActive:   "#54A0FF",
		TokenProjectFinished: "#73F59F",

		// Drag feedback
		TokenDropReceptive: "#FECA57",
	},
}

// CatppuccinMochaPreset is the Catppuccin Mocha (dark) theme.
// Colors from: https://catppuccin.com/palette
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Catppuccin Mocha - warm, cozy dark theme",
	Colors: map[ColorToken]string{
		// Text hierarchy
		TokenTextPrimary:     "#CDD6F4", // text
		TokenTextSecondary:   "#BAC2DE", // subtext1
		TokenTextMuted:       "#6C7086", // overlay0
		TokenTextDescription: "#A6ADC8", // subtext0
		TokenTextPlaceholder: "#585B70", // surface2

		// Borders
		TokenBorderDefault:   "#6C7086", // overlay0
		TokenBorderFocus:     "#CDD6F4", // text
		TokenBorderHighlight: "#89B4FA", // blue

		// Status indicators
		TokenStatusSuccess: "#A6E3A1", // green
		TokenStatusWarning: "#F9E2AF", // yellow
		TokenStatusError:   "#F38BA8", // red

		// Selection
		TokenSelectionIndicator: "#CDD6F4", // text

		// Buttons
		TokenButtonText:             "#1E1E2E", // base
		TokenButtonPrimaryBg:        "#89B4FA", // blue
		TokenButtonPrimaryFocusBg:   "#B4BEFE", // lavender
		TokenButtonSecondaryBg:      "#45475A", // surface1
		TokenButtonSecondaryFocusBg: "#585B70", // surface2
		TokenButtonDisabledBg:       "#313244", // surface0

		// Forms
		TokenFormBorder:      "#6C7086", // overlay0
		TokenFormBorderFocus: "#CDD6F4", // text
		TokenFormLabel:       "#6C7086", // overlay0
		TokenFormLabelFocus:  "#CDD6F4", // text

		// Overlays/Modals
		TokenOverlayTitle:  "#CDD6F4", // text
		TokenOverlayBorder: "#6C7086", // overlay0

		// Toast notifications
		TokenToastSuccess: "#A6E3A1", // green
		TokenToastError:   "#F38BA8", // red
		TokenToastInfo:    "#89B4FA", // blue
		TokenToastWarn:    "#F9E2AF", // yellow

		// Project status
		TokenProjectActive:   "#89B4FA", // blue
		TokenProjectFinished: "#A6E3A1", // green

		// Drag feedback
		TokenDropReceptive: "#F9E2AF", // yellow
	},
}

// CatppuccinLattePreset is the Catppuccin Latte (light) theme.
// Colors from: https://catppuccin.com/palette
var CatppuccinLattePreset = Preset{
	Name:        "catppuccin-latte",
	Description: "Catppuccin Latte - warm, cozy light theme",
	Colors: map[ColorToken]string{
		// Text hierarchy
		TokenTextPrimary:     "#4C4F69", // text
		TokenTextSecondary:   "#5C5F77", // subtext1
		TokenTextMuted:       "#9CA0B0", // overlay0
		TokenTextDescription: "#6C6F85", // subtext0
		TokenTextPlaceholder: "#ACB0BE", // surface2

		// Borders
		TokenBorderDefault:   "#9CA0B0", // overlay0
		TokenBorderFocus:     "#4C4F69", // text
		TokenBorderHighlight: "#1E66F5", // blue

		// Status indicators
		TokenStatusSuccess: "#40A02B", // green
		TokenStatusWarning: "#DF8E1D", // yellow
		TokenStatusError:   "#D20F39", // red

		// Selection
		TokenSelectionIndicator: "#4C4F69", // text

		// Buttons
		TokenButtonText:             "#EFF1F5", // base
		TokenButtonPrimaryBg:        "#1E66F5", // blue
		TokenButtonPrimaryFocusBg:   "#7287FD", // lavender
		TokenButtonSecondaryBg:      "#BCC0CC", // surface1
		TokenButtonSecondaryFocusBg: "#ACB0BE", // surface2
		TokenButtonDisabledBg:       "#CCD0DA", // surface0

		// Forms
		TokenFormBorder:      "#9CA0B0", // overlay0
		TokenFormBorderFocus: "#4C4F69", // text
		TokenFormLabel:       "#9CA0B0", // overlay0
		TokenFormLabelFocus:  "#4C4F69", // text

		// Overlays/Modals
		TokenOverlayTitle:  "#4C4F69", // text
		TokenOverlayBorder: "#9CA0B0", // overlay0

		// Toast notifications
		TokenToastSuccess: "#40A02B", // green
		TokenToastError:   "#D20F39", // red
		TokenToastInfo:    "#1E66F5", // blue
		TokenToastWarn:    "#DF8E1D", // yellow

		// Project status
		TokenProjectActive:   "#1E66F5", // blue
		TokenProjectFinished: "#40A02B", // green

		// Drag feedback
		TokenDropReceptive: "#DF8E1D", // yellow
	},
}

// DraculaPreset is the Dracula theme.
// Colors from: https://draculatheme.com/contribute
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dracula - dark theme with vibrant colors",
	Colors: map[ColorToken]string{
		// Text hierarchy
		TokenTextPrimary:     "#F8F8F2", // foreground
		TokenTextSecondary:   "#F8F8F2", // foreground
		TokenTextMuted:       "#6272A4", // comment
		TokenTextDescription: "#F8F8F2", // foreground
		TokenTextPlaceholder: "#6272A4", // comment

		// Borders
		TokenBorderDefault:   "#6272A4", // comment
		TokenBorderFocus:     "#F8F8F2", // foreground
		TokenBorderHighlight: "#BD93F9", // purple

		// Status indicators
		TokenStatusSuccess: "#50FA7B", // green
		TokenStatusWarning: "#F1FA8C", // yellow
		TokenStatusError:   "#FF5555", // red

		// Selection
		TokenSelectionIndicator: "#F8F8F2", // foreground

		// Buttons
		TokenButtonText:             "#282A36", // background
		TokenButtonPrimaryBg:        "#BD93F9", // purple
		TokenButtonPrimaryFocusBg:   "#FF79C6", // pink
		TokenButtonSecondaryBg:      "#44475A", // current line
		TokenButtonSecondaryFocusBg: "#6272A4", // comment
		TokenButtonDisabledBg:       "#44475A", // current line

		// Forms
		TokenFormBorder:      "#6272A4", // comment
		TokenFormBorderFocus: "#F8F8F2", // foreground
		TokenFormLabel:       "#6272A4", // comment
		TokenFormLabelFocus:  "#F8F8F2", // foreground

		// Overlays/Modals
		TokenOverlayTitle:  "#F8F8F2", // foreground
		TokenOverlayBorder: "#6272A4", // comment

		// Toast notifications
		TokenToastSuccess: "#50FA7B", // green
		TokenToastError:   "#FF5555", // red
		TokenToastInfo:    "#8BE9FD", // cyan
		TokenToastWarn:    "#F1FA8C", // yellow

		// Project status
		TokenProjectActive:   "#8BE9FD", // cyan
		TokenProjectFinished: "#50FA7B", // green

		// Drag feedback
		TokenDropReceptive: "#F1FA8C", // yellow
	},
}

// NordPreset is the Nord theme.
// Colors from: https://www.nordtheme.com/docs/colors-and-palettes
var NordPreset = Preset{
	Name:        "nord",
	Description: "Nord - arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		// Text hierarchy
		TokenTextPrimary:     "#ECEFF4", // snow storm 3
		TokenTextSecondary:   "#E5E9F0", // snow storm 2
		TokenTextMuted:       "#4C566A", // polar night 4
		TokenTextDescription: "#D8DEE9", // snow storm 1
		TokenTextPlaceholder: "#4C566A", // polar night 4

		// Borders
		TokenBorderDefault:   "#4C566A", // polar night 4
		TokenBorderFocus:     "#ECEFF4", // snow storm 3
		TokenBorderHighlight: "#88C0D0", // frost 2

		// Status indicators
		TokenStatusSuccess: "#A3BE8C", // aurora green
		TokenStatusWarning: "#EBCB8B", // aurora yellow
		TokenStatusError:   "#BF616A", // aurora red

		// Selection
		TokenSelectionIndicator: "#ECEFF4", // snow storm 3

		// Buttons
		TokenButtonText:             "#2E3440", // polar night 1
		TokenButtonPrimaryBg:        "#5E81AC", // frost 4
		TokenButtonPrimaryFocusBg:   "#81A1C1", // frost 3
		TokenButtonSecondaryBg:      "#434C5E", // polar night 3
		TokenButtonSecondaryFocusBg: "#4C566A", // polar night 4
		TokenButtonDisabledBg:       "#3B4252", // polar night 2

		// Forms
		TokenFormBorder:      "#4C566A", // polar night 4
		TokenFormBorderFocus: "#ECEFF4", // snow storm 3
		TokenFormLabel:       "#4C566A", // polar night 4
		TokenFormLabelFocus:  "#ECEFF4", // snow storm 3

		// Overlays/Modals
		TokenOverlayTitle:  "#ECEFF4", // snow storm 3
		TokenOverlayBorder: "#4C566A", // polar night 4

		// Toast notifications
		TokenToastSuccess: "#A3BE8C", // aurora green
		TokenToastError:   "#BF616A", // aurora red
		TokenToastInfo:    "#81A1C1", // frost 3
		TokenToastWarn:    "#EBCB8B", // aurora yellow

		// Project status
		TokenProjectActive:   "#88C0D0", // frost 2
		TokenProjectFinished: "#A3BE8C", // aurora green

		// Drag feedback
		TokenDropReceptive: "#EBCB8B", // aurora yellow
	},
}

// HighContrastPreset is a high contrast theme for accessibility.
// All colors meet WCAG AAA contrast requirements against black.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Colors: map[ColorToken]string{
		// Text hierarchy - pure white for maximum visibility
		TokenTextPrimary:     "#FFFFFF",
		TokenTextSecondary:   "#FFFFFF",
		TokenTextMuted:       "#FFFFFF",
		TokenTextDescription: "#FFFFFF",
		TokenTextPlaceholder: "#CCCCCC",

		// Borders
		TokenBorderDefault:   "#FFFFFF",
		TokenBorderFocus:     "#FFFF00",
		TokenBorderHighlight: "#00FFFF",

		// Status indicators - pure, saturated colors
		TokenStatusSuccess: "#00FF00",
		TokenStatusWarning: "#FFFF00",
		TokenStatusError:   "#FF0000",

		// Selection
		TokenSelectionIndicator: "#FFFF00",

		// Buttons
		TokenButtonText:             "#000000",
		TokenButtonPrimaryBg:        "#00FFFF",
		TokenButtonPrimaryFocusBg:   "#FFFFFF",
		TokenButtonSecondaryBg:      "#808080",
		TokenButtonSecondaryFocusBg: "#FFFFFF",
		TokenButtonDisabledBg:       "#404040",

		// Forms
		TokenFormBorder:      "#FFFFFF",
		TokenFormBorderFocus: "#FFFF00",
		TokenFormLabel:       "#FFFFFF",
		TokenFormLabelFocus:  "#FFFF00",

		// Overlays/Modals
		TokenOverlayTitle:  "#FFFFFF",
		TokenOverlayBorder: "#FFFFFF",

		// Toast notifications
		TokenToastSuccess: "#00FF00",
		TokenToastError:   "#FF0000",
		TokenToastInfo:    "#00FFFF",
		TokenToastWarn:    "#FFFF00",

		// Project status
		TokenProjectActive:   "#00FFFF",
		TokenProjectFinished: "#00FF00",

		// Drag feedback
		TokenDropReceptive: "#FFFF00",
	},
}
