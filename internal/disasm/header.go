package disasm

import (
	"errors"
	"fmt"
	"strings"

	"adhoctool/internal/diag"
)

// ErrMalformedHeader is matched by every *HeaderError.
var ErrMalformedHeader = errors.New("malformed disassembly header")

// HeaderError reports a dump whose prologue lacks a required field. Without the
// version and root instruction count the document cannot be compared safely.
type HeaderError struct {
	Path    string
	Missing []string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("disasm: %s: header is missing %s", e.Path, strings.Join(e.Missing, ", "))
}

func (e *HeaderError) Is(target error) bool { return target == ErrMalformedHeader }

// StackSetup holds the root frame sizing line. Values are kept as written; old
// versions print "=Variable Heap Size" for the static heap.
type StackSetup struct {
	StackSize      string
	HeapSize       string
	HeapSizeStatic string
}

// Header is the metadata extracted from a dump prologue. Values are the raw digits as
// written so mismatches can be reported verbatim.
type Header struct {
	Version          string
	RootInstructions string
	Stack            *StackSetup
}

// Header extracts the first occurrence of each header field.
func (d *Document) Header() (Header, error) {
	var h Header
	for _, l := range d.Lines {
		if l.Kind != KindHeaderField {
			continue
		}
		switch l.Field {
		case FieldVersion:
			if h.Version == "" {
				h.Version = l.Values[0]
			}
		case FieldRootInstructions:
			if h.RootInstructions == "" {
				h.RootInstructions = l.Values[0]
			}
		case FieldStackSetup:
			if h.Stack == nil {
				h.Stack = &StackSetup{StackSize: l.Values[0], HeapSize: l.Values[1], HeapSizeStatic: l.Values[2]}
			}
		}
	}

	var missing []string
	if h.Version == "" {
		missing = append(missing, FieldVersion)
	}
	if h.RootInstructions == "" {
		missing = append(missing, FieldRootInstructions)
	}
	if len(missing) > 0 {
		return h, &HeaderError{Path: d.Path, Missing: missing}
	}
	return h, nil
}

// CompareHeaders cross-checks the header of a new build against the original.
// Version and root instruction count disagreements are errors, stack sizing
// disagreements are warnings. Neither stops a comparison.
func CompareHeaders(newHdr, origHdr Header) []diag.Diag {
	var d diag.Diags
	check := func(sev diag.Severity, name, n, o string) {
		if n != o {
			d.Addf(diag.MetadataMismatch, sev, "Mismatched %s: %s new / %s orig", name, n, o)
		}
	}

	check(diag.Error, "version", newHdr.Version, origHdr.Version)
	check(diag.Error, "root instruction count", newHdr.RootInstructions, origHdr.RootInstructions)

	switch {
	case newHdr.Stack != nil && origHdr.Stack != nil:
		check(diag.Warning, "stack size", newHdr.Stack.StackSize, origHdr.Stack.StackSize)
		check(diag.Warning, "variable heap size", newHdr.Stack.HeapSize, origHdr.Stack.HeapSize)
		check(diag.Warning, "static variable heap size", newHdr.Stack.HeapSizeStatic, origHdr.Stack.HeapSizeStatic)
	case newHdr.Stack != nil || origHdr.Stack != nil:
		d.Add(diag.MetadataMismatch, diag.Warning, "Stack setup present in only one document")
	}
	return d.Items()
}
