// Package diag provides structured diagnostics shared by the config, disassembly and
// comparison packages. Diagnostics describe problems that do not stop processing.
package diag

import "fmt"

// Kind classifies a diagnostic message.
type Kind string

const (
	MetadataMismatch Kind = "metadata_mismatch"
	MalformedValue   Kind = "malformed_value"
	Truncated        Kind = "truncated"
	SkippedEntry     Kind = "skipped_entry"
)

// Severity ranks a diagnostic. Errors are still non-fatal.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "W"
	case Error:
		return "E"
	default:
		return "I"
	}
}

// Diag records a non-fatal issue.
type Diag struct {
	Kind     Kind     `json:"kind"`
	Severity Severity `json:"severity"`
	Msg      string   `json:"msg"`
}

func (d Diag) String() string {
	return fmt.Sprintf("[%s] %s", d.Severity, d.Msg)
}

// Diags accumulates diagnostics in the order they were reported.
type Diags struct {
	items []Diag
}

func (d *Diags) Add(kind Kind, sev Severity, msg string) {
	d.items = append(d.items, Diag{Kind: kind, Severity: sev, Msg: msg})
}

func (d *Diags) Addf(kind Kind, sev Severity, format string, args ...any) {
	d.items = append(d.items, Diag{Kind: kind, Severity: sev, Msg: fmt.Sprintf(format, args...)})
}

// Append adds already-built diagnostics.
func (d *Diags) Append(items ...Diag) {
	d.items = append(d.items, items...)
}

func (d *Diags) Items() []Diag { return d.items }
func (d *Diags) Len() int      { return len(d.items) }

// Count returns how many diagnostics have the given severity.
func (d *Diags) Count(sev Severity) int {
	n := 0
	for _, it := range d.items {
		if it.Severity == sev {
			n++
		}
	}
	return n
}

// Has reports whether any diagnostic of the given kind was recorded.
func (d *Diags) Has(kind Kind) bool {
	for _, it := range d.items {
		if it.Kind == kind {
			return true
		}
	}
	return false
}
