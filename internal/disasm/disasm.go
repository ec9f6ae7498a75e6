// Package disasm models the text dumps (.ad.diss) written by the Adhoc disassembler.
//
// Every line of a dump is classified by a small set of named matchers into a header
// field, an instruction or an unrecognised line.
package disasm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// LineKind tags what a dump line was recognised as.
type LineKind int

const (
	KindUnrecognized LineKind = iota
	KindHeaderField
	KindInstruction
)

func (k LineKind) String() string {
	switch k {
	case KindHeaderField:
		return "header"
	case KindInstruction:
		return "instruction"
	default:
		return "unrecognized"
	}
}

// Header field names.
const (
	FieldVersion          = "Version"
	FieldRootInstructions = "Root Instructions"
	FieldStackSetup       = "Stack Setup"
)

// Line is one classified line of a dump. Which fields are set depends on Kind.
type Line struct {
	Kind   LineKind
	Number int    // 1-based line number in the source
	Raw    string // line as read, without the terminator

	// KindHeaderField
	Field  string
	Values []string

	// KindInstruction
	Prefix [3]string // the three pipe-delimited numeric columns
	Text   string    // instruction text after the last pipe
}

type headerMatcher struct {
	field string
	re    *regexp.Regexp
}

var (
	instructionRe = regexp.MustCompile(`^\s*(\d*)\|\s*(\d*)\|\s*(\d*)\|\s*(.*)$`)

	headerMatchers = []headerMatcher{
		{field: FieldVersion, re: regexp.MustCompile(`Version: (\d+)`)},
		{field: FieldRootInstructions, re: regexp.MustCompile(`Root Instructions: (\d+)`)},
		{field: FieldStackSetup, re: regexp.MustCompile(`Stack Size: (\d*) - Variable Heap Size: (\d*) - Variable Heap Size Static: (\S*)`)},
	}
)

// Classify recognises a single line. Instruction shape takes precedence over header
// fields.
func Classify(number int, raw string) Line {
	l := Line{Kind: KindUnrecognized, Number: number, Raw: raw}
	if strings.TrimSpace(raw) == "" {
		return l
	}

	if m := instructionRe.FindStringSubmatch(raw); m != nil {
		l.Kind = KindInstruction
		l.Prefix = [3]string{m[1], m[2], m[3]}
		l.Text = strings.TrimRight(m[4], " \t\r")
		return l
	}

	for _, hm := range headerMatchers {
		if m := hm.re.FindStringSubmatch(raw); m != nil {
			l.Kind = KindHeaderField
			l.Field = hm.field
			l.Values = m[1:]
			return l
		}
	}
	return l
}

// Document is a classified dump.
type Document struct {
	Path  string
	Lines []Line
}

// Parse classifies every line read from r. name labels the document in errors.
func Parse(r io.Reader, name string) (*Document, error) {
	doc := &Document{Path: name}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	n := 0
	for scanner.Scan() {
		n++
		doc.Lines = append(doc.Lines, Classify(n, scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("disasm: reading %s: %w", name, err)
	}
	return doc, nil
}

// ReadFile opens and parses the dump at path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("disasm: open %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f, path)
}

// Instructions returns the instruction lines in source order.
func (d *Document) Instructions() []Line {
	var out []Line
	for _, l := range d.Lines {
		if l.Kind == KindInstruction {
			out = append(out, l)
		}
	}
	return out
}

// Texts returns the instruction text of every instruction line.
func (d *Document) Texts() []string {
	ins := d.Instructions()
	out := make([]string, len(ins))
	for i, l := range ins {
		out[i] = l.Text
	}
	return out
}
