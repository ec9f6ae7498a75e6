// Package normalize removes build-specific noise from disassembly instruction text so
// that two builds of the same script can be compared line by line.
package normalize

import (
	"regexp"
	"strings"

	"adhoctool/internal/disasm"
)

// JumpPlaceholder replaces every absolute jump target.
const JumpPlaceholder = "Jump:UNK"

var (
	// allocation metadata that changes with unrelated edits
	dropRe = regexp.MustCompile(`, (?:Index:|Local:|Static:|PushAt:)\d*`)
	jumpRe = regexp.MustCompile(`(?:Jump To Func Ins |JumpTo=|Jump=)\d+`)
)

// Options controls which noise is kept.
type Options struct {
	// ShowJump keeps absolute jump targets instead of replacing them.
	ShowJump bool
	// ShowLeave keeps LEAVE pseudo-instructions. They tend to move around between
	// compiler builds and produce many false differences.
	ShowLeave bool
}

// IsLeave reports whether text is a LEAVE pseudo-instruction.
func IsLeave(text string) bool {
	return strings.HasPrefix(strings.TrimLeft(text, " \t"), "LEAVE:")
}

// Line scrubs a single instruction text.
func Line(text string, opts Options) string {
	text = dropRe.ReplaceAllString(text, "")
	if !opts.ShowJump {
		text = jumpRe.ReplaceAllString(text, JumpPlaceholder)
	}
	return text
}

// Lines scrubs instruction texts, dropping LEAVE lines unless requested. Applying it
// to its own output with the same options returns the same sequence.
func Lines(texts []string, opts Options) []string {
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		if !opts.ShowLeave && IsLeave(t) {
			continue
		}
		out = append(out, Line(t, opts))
	}
	return out
}

// Document returns the normalized instruction stream of doc. Header, blank and
// unrecognised lines are not part of the stream.
func Document(doc *disasm.Document, opts Options) []string {
	return Lines(doc.Texts(), opts)
}

// Truncate limits how far apart two sequences may be in length. When one is longer
// than the other by more than limit, it is cut to len(shorter)+limit. It returns the
// possibly shortened sequences and the number of lines dropped. A negative limit
// disables truncation.
func Truncate(a, b []string, limit int) ([]string, []string, int) {
	if limit < 0 {
		return a, b, 0
	}
	switch {
	case len(a) > len(b)+limit:
		n := len(b) + limit
		return a[:n], b, len(a) - n
	case len(b) > len(a)+limit:
		n := len(a) + limit
		return a, b[:n], len(b) - n
	}
	return a, b, 0
}
