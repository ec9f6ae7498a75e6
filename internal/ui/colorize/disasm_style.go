package colorize

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// StyleName is the registered name of AdhocDark.
const StyleName = "adhoc-dark"

// AdhocDark follows the palette of the comparison report: VS Code dark background,
// light grey text.
var AdhocDark = styles.Register(chroma.MustNewStyle(StyleName, chroma.StyleEntries{
	chroma.Text:       "#D6D6D6",
	chroma.Background: "#D6D6D6 bg:#202124",
	chroma.Whitespace: "#D6D6D6",

	// Mnemonics
	chroma.Keyword: "#569CD6 bold",

	chroma.Name:          "#9CDCFE",
	chroma.NameAttribute: "#7C9C9D",
	chroma.NameLabel:     "#FFD700", // placeholder jump targets

	chroma.LiteralNumber: "#FF5F87",
	chroma.LiteralString: "#EACD53",

	chroma.Operator:    "#D6D6D6",
	chroma.Punctuation: "#808080",
}))
