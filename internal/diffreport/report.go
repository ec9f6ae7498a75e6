// Package diffreport renders two normalized instruction streams as a self-contained
// side-by-side HTML comparison.
//
// The layout follows the classic difflib HTML table: a navigation column, line
// numbers and text for each side, and a legend. Unchanged rows are syntax
// highlighted with class-based chroma CSS; changed rows carry character level
// add/sub/chg marks. Output only depends on the inputs, so equal inputs give
// byte-identical reports.
package diffreport

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"

	"adhoctool/internal/diag"
	"adhoctool/internal/ui/colorize"
)

// DefaultTabSize is the tab stop used when expanding tabs before alignment.
const DefaultTabSize = 4

// Stats counts the rows of a report by kind.
type Stats struct {
	Equal   int `json:"equal"`
	Changed int `json:"changed"`
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// Differences is the number of rows that are not equal.
func (s Stats) Differences() int { return s.Changed + s.Added + s.Removed }

// Report is a rendered comparison.
type Report struct {
	HTML  []byte
	Rows  []Row
	Stats Stats
}

type options struct {
	notes   []diag.Diag
	tabSize int
	style   *chroma.Style
}

// Option configures Build.
type Option func(*options)

// WithNotes renders diagnostics above the table.
func WithNotes(items ...diag.Diag) Option {
	return func(o *options) { o.notes = append(o.notes, items...) }
}

// WithTabSize overrides DefaultTabSize.
func WithTabSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.tabSize = n
		}
	}
}

// WithStyle overrides the chroma style used for unchanged rows.
func WithStyle(style *chroma.Style) Option {
	return func(o *options) {
		if style != nil {
			o.style = style
		}
	}
}

// Build aligns left against right and renders the report. The labels head the two
// columns, usually the file names.
func Build(left, right []string, leftLabel, rightLabel string, opts ...Option) (*Report, error) {
	o := options{tabSize: DefaultTabSize, style: colorize.Style()}
	for _, opt := range opts {
		opt(&o)
	}

	rows := Align(expandAll(left, o.tabSize), expandAll(right, o.tabSize))

	r := &renderer{
		opts: o,
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.ClassPrefix(classPrefix),
			chromahtml.PreventSurroundingPre(true),
		),
	}

	var buf bytes.Buffer
	if err := r.write(&buf, rows, leftLabel, rightLabel); err != nil {
		return nil, fmt.Errorf("diffreport: render: %w", err)
	}

	return &Report{HTML: buf.Bytes(), Rows: rows, Stats: countRows(rows)}, nil
}

func countRows(rows []Row) Stats {
	var s Stats
	for _, row := range rows {
		switch row.Kind {
		case RowEqual:
			s.Equal++
		case RowChanged:
			s.Changed++
		case RowAdded:
			s.Added++
		case RowRemoved:
			s.Removed++
		}
	}
	return s
}

func expandAll(lines []string, tabSize int) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = expandTabs(l, tabSize)
	}
	return out
}

func expandTabs(s string, tabSize int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabSize - col%tabSize
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

const classPrefix = "hl-"

type renderer struct {
	opts      options
	formatter *chromahtml.Formatter
}

func (r *renderer) write(w io.Writer, rows []Row, leftLabel, rightLabel string) error {
	var css bytes.Buffer
	if err := r.formatter.WriteCSS(&css, r.opts.style); err != nil {
		return err
	}

	fmt.Fprint(w, "<!DOCTYPE html>\n<html>\n<head>\n")
	fmt.Fprint(w, "<meta http-equiv=\"Content-Type\" content=\"text/html; charset=utf-8\" />\n")
	fmt.Fprintf(w, "<title>%s vs %s</title>\n", html.EscapeString(leftLabel), html.EscapeString(rightLabel))
	fmt.Fprint(w, darkStyles)
	fmt.Fprint(w, baseStyles)
	fmt.Fprintf(w, "<style type=\"text/css\">\n%s</style>\n", css.String())
	fmt.Fprint(w, "</head>\n<body>\n")

	r.writeNotes(w)

	fmt.Fprint(w, "<table class=\"diff hl-chroma\" id=\"diff_top\" cellspacing=\"0\" cellpadding=\"0\" rules=\"groups\">\n")
	fmt.Fprint(w, "<colgroup></colgroup> <colgroup></colgroup> <colgroup></colgroup>\n")
	fmt.Fprint(w, "<colgroup></colgroup> <colgroup></colgroup> <colgroup></colgroup>\n")
	fmt.Fprintf(w, "<thead><tr><th class=\"diff_next\"><br /></th><th colspan=\"2\" class=\"diff_header\">%s</th>"+
		"<th class=\"diff_next\"><br /></th><th colspan=\"2\" class=\"diff_header\">%s</th></tr></thead>\n",
		html.EscapeString(leftLabel), html.EscapeString(rightLabel))
	fmt.Fprint(w, "<tbody>\n")

	ids, hrefs := navigation(rows)
	for i, row := range rows {
		left, err := r.cell(row.Left, "from")
		if err != nil {
			return err
		}
		right, err := r.cell(row.Right, "to")
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "<tr><td class=\"diff_next\"%s>%s</td>%s<td class=\"diff_next\">%s</td>%s</tr>\n",
			ids[i], hrefs[i], left, hrefs[i], right); err != nil {
			return err
		}
	}

	fmt.Fprint(w, "</tbody>\n</table>\n")
	fmt.Fprint(w, legend)
	_, err := fmt.Fprint(w, "</body>\n</html>\n")
	return err
}

func (r *renderer) writeNotes(w io.Writer) {
	if len(r.opts.notes) == 0 {
		return
	}
	fmt.Fprint(w, "<div class=\"notes\"><ul>\n")
	for _, n := range r.opts.notes {
		fmt.Fprintf(w, "<li class=\"note_%s\">%s</li>\n", n.Severity, html.EscapeString(n.String()))
	}
	fmt.Fprint(w, "</ul></div>\n")
}

// navigation returns, per row, the anchor attribute and the link shown in the
// navigation columns. Each block of consecutive differences gets an anchor and a
// link to the next block; the last block links back to the top.
func navigation(rows []Row) (ids, hrefs []string) {
	ids = make([]string, len(rows))
	hrefs = make([]string, len(rows))

	var starts []int
	for i, row := range rows {
		if row.Kind != RowEqual && (i == 0 || rows[i-1].Kind == RowEqual) {
			starts = append(starts, i)
		}
	}
	if len(starts) == 0 {
		return ids, hrefs
	}

	if starts[0] != 0 {
		hrefs[0] = `<a href="#chg_0">f</a>`
	}
	for k, i := range starts {
		ids[i] = fmt.Sprintf(` id="chg_%d"`, k)
		if k+1 < len(starts) {
			hrefs[i] = fmt.Sprintf(`<a href="#chg_%d">n</a>`, k+1)
		} else {
			hrefs[i] = `<a href="#diff_top">t</a>`
		}
	}
	return ids, hrefs
}

func (r *renderer) cell(c *Cell, side string) (string, error) {
	if c == nil {
		return `<td class="diff_header"></td><td nowrap="nowrap" class="diff_text"></td>`, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<td class="diff_header" id="%s%d">%d</td><td nowrap="nowrap" class="diff_text">`, side, c.Line, c.Line)
	if len(c.Segments) == 1 && c.Segments[0].Mark == MarkNone {
		if err := r.highlight(&b, c.Text); err != nil {
			return "", err
		}
	} else {
		for _, s := range c.Segments {
			text := html.EscapeString(s.Text)
			if class := markClass(s.Mark); class != "" {
				fmt.Fprintf(&b, `<span class="%s">%s</span>`, class, text)
			} else {
				b.WriteString(text)
			}
		}
	}
	b.WriteString("</td>")
	return b.String(), nil
}

func (r *renderer) highlight(w io.Writer, text string) error {
	it, err := colorize.Tokens(text)
	if err != nil {
		_, err = io.WriteString(w, html.EscapeString(text))
		return err
	}
	return r.formatter.Format(w, r.opts.style, it)
}

func markClass(m Mark) string {
	switch m {
	case MarkAdd:
		return "diff_add"
	case MarkSub:
		return "diff_sub"
	case MarkChg:
		return "diff_chg"
	}
	return ""
}

// darkStyles is placed ahead of baseStyles and wins through !important.
const darkStyles = `<style type="text/css">
    .diff {font-size: 12px;}
    body {background: #202124; color:#D6D6D6;}
    .diff_header {background-color:#252526 !important;}
    .diff_next {background-color:#333333 !important;}
    .diff_add {background-color:#339933 !important;}
    .diff_chg {background-color:#CCCC00 !important; color: #000;}
    .diff_sub {background-color:#993333 !important;}
    a {color:#AAAAFF}
    .notes {font-family:Courier; font-size: 12px;}
    .note_E {color:#FF6B6B;}
    .note_W {color:#CCCC00;}
    .note_I {color:#AAAAFF;}
</style>
`

const baseStyles = `<style type="text/css">
    table.diff {font-family:Courier; border:medium;}
    .diff_header {background-color:#e0e0e0}
    td.diff_header {text-align:right}
    td.diff_text {white-space:pre}
    .diff_next {background-color:#c0c0c0}
    .diff_add {background-color:#aaffaa}
    .diff_chg {background-color:#ffff77}
    .diff_sub {background-color:#ffaaaa}
</style>
`

const legend = `<table class="diff" summary="Legends">
    <tr> <th colspan="2"> Legends </th> </tr>
    <tr> <td> <table border="" summary="Colors">
                  <tr><th> Colors </th> </tr>
                  <tr><td class="diff_add">&nbsp;Added&nbsp;</td></tr>
                  <tr><td class="diff_chg">Changed</td> </tr>
                  <tr><td class="diff_sub">Deleted</td> </tr>
              </table></td>
         <td> <table border="" summary="Links">
                  <tr><th colspan="2"> Links </th> </tr>
                  <tr><td>(f)irst change</td> </tr>
                  <tr><td>(n)ext change</td> </tr>
                  <tr><td>(t)op</td> </tr>
              </table></td> </tr>
</table>
`
