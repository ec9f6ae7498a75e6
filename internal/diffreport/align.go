package diffreport

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// RowKind classifies an aligned row.
type RowKind int

const (
	RowEqual RowKind = iota
	RowChanged
	RowAdded   // present on the right only
	RowRemoved // present on the left only
)

func (k RowKind) String() string {
	switch k {
	case RowChanged:
		return "changed"
	case RowAdded:
		return "added"
	case RowRemoved:
		return "removed"
	default:
		return "equal"
	}
}

// Mark tags a run of characters inside a cell.
type Mark int

const (
	MarkNone Mark = iota
	MarkAdd
	MarkSub
	MarkChg
)

// Segment is a run of text sharing one mark.
type Segment struct {
	Text string
	Mark Mark
}

// Cell is one side of a row.
type Cell struct {
	Line     int // 1-based index in its sequence
	Text     string
	Segments []Segment
}

// Row pairs at most one line from each side. A nil side is blank.
type Row struct {
	Kind        RowKind
	Left, Right *Cell
}

// Align lines up left and right with a sequence matcher. Replaced blocks are paired
// in order and the surplus of the longer side becomes added or removed rows.
func Align(left, right []string) []Row {
	m := difflib.NewMatcherWithJunk(left, right, false, nil)

	var rows []Row
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case 'e':
			for i, j := op.I1, op.J1; i < op.I2; i, j = i+1, j+1 {
				rows = append(rows, Row{
					Kind:  RowEqual,
					Left:  plainCell(i, left[i], MarkNone),
					Right: plainCell(j, right[j], MarkNone),
				})
			}
		case 'r':
			n := min(op.I2-op.I1, op.J2-op.J1)
			for k := 0; k < n; k++ {
				i, j := op.I1+k, op.J1+k
				l, r := markChars(left[i], right[j])
				rows = append(rows, Row{
					Kind:  RowChanged,
					Left:  &Cell{Line: i + 1, Text: left[i], Segments: l},
					Right: &Cell{Line: j + 1, Text: right[j], Segments: r},
				})
			}
			rows = appendRemoved(rows, left, op.I1+n, op.I2)
			rows = appendAdded(rows, right, op.J1+n, op.J2)
		case 'd':
			rows = appendRemoved(rows, left, op.I1, op.I2)
		case 'i':
			rows = appendAdded(rows, right, op.J1, op.J2)
		}
	}
	return rows
}

func appendRemoved(rows []Row, left []string, from, to int) []Row {
	for i := from; i < to; i++ {
		rows = append(rows, Row{Kind: RowRemoved, Left: plainCell(i, left[i], MarkSub)})
	}
	return rows
}

func appendAdded(rows []Row, right []string, from, to int) []Row {
	for j := from; j < to; j++ {
		rows = append(rows, Row{Kind: RowAdded, Right: plainCell(j, right[j], MarkAdd)})
	}
	return rows
}

func plainCell(index int, text string, mark Mark) *Cell {
	c := &Cell{Line: index + 1, Text: text}
	if text != "" {
		c.Segments = []Segment{{Text: text, Mark: mark}}
	}
	return c
}

// markChars highlights the characters that differ between a changed pair.
func markChars(a, b string) (left, right []Segment) {
	ar, br := runeStrings(a), runeStrings(b)
	m := difflib.NewMatcherWithJunk(ar, br, false, nil)

	for _, op := range m.GetOpCodes() {
		l, r := strings.Join(ar[op.I1:op.I2], ""), strings.Join(br[op.J1:op.J2], "")
		switch op.Tag {
		case 'e':
			left = appendSegment(left, l, MarkNone)
			right = appendSegment(right, r, MarkNone)
		case 'r':
			left = appendSegment(left, l, MarkChg)
			right = appendSegment(right, r, MarkChg)
		case 'd':
			left = appendSegment(left, l, MarkSub)
		case 'i':
			right = appendSegment(right, r, MarkAdd)
		}
	}
	return left, right
}

func appendSegment(segs []Segment, text string, mark Mark) []Segment {
	if text == "" {
		return segs
	}
	if n := len(segs); n > 0 && segs[n-1].Mark == mark {
		segs[n-1].Text += text
		return segs
	}
	return append(segs, Segment{Text: text, Mark: mark})
}

func runeStrings(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
