// Package styles holds the terminal themes: glamour markdown styles for the
// settings and quick-build listings and lipgloss styles for command summaries.
package styles

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/x/exp/charmtone"
)

// ThemeEnv selects the markdown theme: "vscode" (default) or "charm".
const ThemeEnv = "ADHOC_THEME"

// Helper functions for style pointers
func boolPtr(b bool) *bool       { return &b }
func stringPtr(s string) *string { return &s }
func uintPtr(u uint) *uint       { return &u }

// MarkdownStyle returns the theme named by ThemeEnv.
func MarkdownStyle() ansi.StyleConfig {
	if strings.EqualFold(os.Getenv(ThemeEnv), "charm") {
		return CharmStyle()
	}
	return VSCodeDarkStyle()
}

// MarkdownRenderer returns a glamour TermRenderer wrapping at width.
func MarkdownRenderer(width int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithStyles(MarkdownStyle()),
		glamour.WithWordWrap(width),
	)
}

// RenderMarkdown renders md for a terminal of the given width.
func RenderMarkdown(md string, width int) (string, error) {
	r, err := MarkdownRenderer(width)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// CharmStyle is the charmtone palette theme.
func CharmStyle() ansi.StyleConfig {
	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: stringPtr(charmtone.Smoke.Hex())},
		},
		List: ansi.StyleList{LevelIndent: 2},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockSuffix: "\n",
				Color:       stringPtr(charmtone.Malibu.Hex()),
				Bold:        boolPtr(true),
			},
		},
		H1: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Prefix:          " ",
				Suffix:          " ",
				Color:           stringPtr(charmtone.Zest.Hex()),
				BackgroundColor: stringPtr(charmtone.Charple.Hex()),
				Bold:            boolPtr(true),
			},
		},
		H2:          ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "## "}},
		H3:          ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "### "}},
		Strong:      ansi.StylePrimitive{Bold: boolPtr(true)},
		Emph:        ansi.StylePrimitive{Italic: boolPtr(true)},
		Item:        ansi.StylePrimitive{BlockPrefix: "• "},
		Enumeration: ansi.StylePrimitive{BlockPrefix: ". "},
		Link: ansi.StylePrimitive{
			Color:     stringPtr(charmtone.Zinc.Hex()),
			Underline: boolPtr(true),
		},
		LinkText: ansi.StylePrimitive{
			Color: stringPtr(charmtone.Guac.Hex()),
			Bold:  boolPtr(true),
		},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: stringPtr(charmtone.Malibu.Hex())},
		},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{Color: stringPtr(charmtone.Charcoal.Hex())},
				Margin:         uintPtr(2),
			},
		},
		Table: ansi.StyleTable{},
		Text:  ansi.StylePrimitive{},
	}
}
