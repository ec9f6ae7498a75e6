package styles

import (
	"github.com/charmbracelet/glamour/ansi"
)

// VS Code Dark theme colors, shared with the HTML report palette.
const (
	VSCodeForeground = "#D4D4D4"
	VSCodeLink       = "#4FC1FF"
	VSCodeInlineCode = "#EACD53"
	VSCodeComment    = "#6A9955"
	VSCodeHeading    = "#569CD6"
	VSCodeString     = "#CE9178"
	VSCodeNumber     = "#B5CEA8"
	VSCodeLineNumber = "#858585"

	// Report marks
	DiffAdd = "#339933"
	DiffChg = "#CCCC00"
	DiffSub = "#993333"
)

// VSCodeDarkStyle is the default markdown theme.
func VSCodeDarkStyle() ansi.StyleConfig {
	heading := func(prefix string, bold bool) ansi.StyleBlock {
		return ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{
			Prefix: prefix,
			Color:  stringPtr(VSCodeHeading),
			Bold:   boolPtr(bold),
		}}
	}

	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: stringPtr(VSCodeForeground)},
		},
		BlockQuote: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color:  stringPtr(VSCodeComment),
				Italic: boolPtr(true),
			},
			Indent:      uintPtr(1),
			IndentToken: stringPtr("│ "),
		},
		List: ansi.StyleList{LevelIndent: 2},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockSuffix: "\n",
				Color:       stringPtr(VSCodeHeading),
				Bold:        boolPtr(true),
			},
		},
		H1:     heading("# ", true),
		H2:     heading("## ", true),
		H3:     heading("### ", true),
		H4:     heading("#### ", false),
		Strong: ansi.StylePrimitive{Bold: boolPtr(true), Color: stringPtr(VSCodeForeground)},
		Emph:   ansi.StylePrimitive{Italic: boolPtr(true)},
		HorizontalRule: ansi.StylePrimitive{
			Color:  stringPtr(VSCodeLineNumber),
			Format: "\n────────────────────────────────────────\n",
		},
		Item:        ansi.StylePrimitive{BlockPrefix: "• "},
		Enumeration: ansi.StylePrimitive{BlockPrefix: ". ", Color: stringPtr(VSCodeNumber)},
		Link:        ansi.StylePrimitive{Color: stringPtr(VSCodeLink), Underline: boolPtr(true)},
		LinkText:    ansi.StylePrimitive{Color: stringPtr(VSCodeLink)},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: stringPtr(VSCodeInlineCode)},
		},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{Color: stringPtr(VSCodeForeground)},
				Margin:         uintPtr(1),
			},
		},
		Table: ansi.StyleTable{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{Color: stringPtr(VSCodeForeground)},
			},
		},
		Text: ansi.StylePrimitive{Color: stringPtr(VSCodeForeground)},
	}
}
