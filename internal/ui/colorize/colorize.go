// Package colorize highlights Adhoc instruction text with chroma, for terminals and
// for the HTML comparison report.
package colorize

import (
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/styles"
)

// NoColorEnv disables terminal colouring when set to any value.
const NoColorEnv = "ADHOC_NO_COLOR"

// Style returns the instruction style with fallbacks
func Style() *chroma.Style {
	for _, name := range []string{StyleName, "dracula", "monokai"} {
		if style := styles.Get(name); style != nil {
			return style
		}
	}
	return styles.Fallback
}

// getTerminalFormatter returns an appropriate terminal formatter
func getTerminalFormatter() chroma.Formatter {
	for _, name := range []string{"terminal16m", "terminal256"} {
		if formatter := formatters.Get(name); formatter != nil {
			return formatter
		}
	}
	return formatters.Fallback
}

// Tokens splits a single instruction line into chroma tokens.
func Tokens(line string) (chroma.Iterator, error) {
	return Instructions.Tokenise(nil, line)
}

// Terminal colours instruction text with ANSI escapes. The input is returned
// unchanged when NoColorEnv is set.
func Terminal(text string) (string, error) {
	if os.Getenv(NoColorEnv) != "" {
		return text, nil
	}

	iterator, err := Tokens(text)
	if err != nil {
		return text, err
	}

	var buf strings.Builder
	if err := getTerminalFormatter().Format(&buf, Style(), iterator); err != nil {
		return text, err
	}
	return buf.String(), nil
}

// Lines colours each line independently and joins them with newlines. Lines that
// fail to tokenise are kept plain.
func Lines(lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		out, err := Terminal(l)
		if err != nil {
			out = l
		}
		b.WriteString(out)
		b.WriteByte('\n')
	}
	return b.String()
}
