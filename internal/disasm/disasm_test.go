package disasm

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"adhoctool/internal/diag"
)

const sampleDump = `Version: 12
Root Instructions: 5
  > Instruction Count: 5
  > Stack Size: 4 - Variable Heap Size: 2 - Variable Heap Size Static: 1

   0|   1|   0| SOURCE_FILE: main.ad
   1|   3|   1| VARIABLE_PUSH: foo, PushAt:3
   2|   3|   2| INT_CONST: 5
   3|   3|   3| LEAVE: Rewind:1
   4|   4|   4| JUMP: JumpTo=9
  > Stack Size: 8 - Variable Heap Size: 9 - Variable Heap Size Static: 10
`

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		kind   LineKind
		field  string
		values []string
		text   string
	}{
		{name: "blank", raw: "   ", kind: KindUnrecognized},
		{name: "version", raw: "Version: 12", kind: KindHeaderField, field: FieldVersion, values: []string{"12"}},
		{name: "root", raw: "Root Instructions: 345", kind: KindHeaderField, field: FieldRootInstructions, values: []string{"345"}},
		{
			name:   "stack",
			raw:    "  > Stack Size: 4 - Variable Heap Size: 2 - Variable Heap Size Static: =Variable",
			kind:   KindHeaderField,
			field:  FieldStackSetup,
			values: []string{"4", "2", "=Variable"},
		},
		{name: "instruction", raw: "  12|  3|  4| CALL: ArgCount=1", kind: KindInstruction, text: "CALL: ArgCount=1"},
		{name: "empty columns", raw: "||| NOP", kind: KindInstruction, text: "NOP"},
		{name: "pipe in text", raw: "1| 2| 3| BINARY_OPERATOR: |", kind: KindInstruction, text: "BINARY_OPERATOR: |"},
		{name: "trailing carriage return", raw: "1| 2| 3| POP\r", kind: KindInstruction, text: "POP"},
		{name: "two columns only", raw: "1| 2| POP", kind: KindUnrecognized},
		{name: "frame info", raw: "  > Instruction Count: 5", kind: KindUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Classify(7, tt.raw)
			if l.Kind != tt.kind {
				t.Fatalf("kind = %s, want %s", l.Kind, tt.kind)
			}
			if l.Number != 7 || l.Raw != tt.raw {
				t.Errorf("number/raw not kept: %d %q", l.Number, l.Raw)
			}
			if l.Field != tt.field {
				t.Errorf("field = %q, want %q", l.Field, tt.field)
			}
			if strings.Join(l.Values, ",") != strings.Join(tt.values, ",") {
				t.Errorf("values = %q, want %q", l.Values, tt.values)
			}
			if l.Text != tt.text {
				t.Errorf("text = %q, want %q", l.Text, tt.text)
			}
		})
	}
}

func TestParseDocument(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleDump), "sample.ad.diss")
	if err != nil {
		t.Fatal(err)
	}

	texts := doc.Texts()
	want := []string{
		"SOURCE_FILE: main.ad",
		"VARIABLE_PUSH: foo, PushAt:3",
		"INT_CONST: 5",
		"LEAVE: Rewind:1",
		"JUMP: JumpTo=9",
	}
	if strings.Join(texts, "\n") != strings.Join(want, "\n") {
		t.Errorf("texts = %q, want %q", texts, want)
	}
	if ins := doc.Instructions(); ins[1].Prefix != [3]string{"1", "3", "1"} || ins[1].Number != 7 {
		t.Errorf("instruction 1 = %+v", ins[1])
	}

	h, err := doc.Header()
	if err != nil {
		t.Fatal(err)
	}
	if h.Version != "12" || h.RootInstructions != "5" {
		t.Errorf("header = %+v", h)
	}
	if h.Stack == nil || *h.Stack != (StackSetup{StackSize: "4", HeapSize: "2", HeapSizeStatic: "1"}) {
		t.Errorf("stack = %+v, want the first (root) frame", h.Stack)
	}
}

func TestHeaderMissingFields(t *testing.T) {
	doc, err := Parse(strings.NewReader("Root Instructions: 3\n0| 0| 0| NOP\n"), "broken.ad.diss")
	if err != nil {
		t.Fatal(err)
	}

	_, err = doc.Header()
	if !errors.Is(err, ErrMalformedHeader) {
		t.Fatalf("expected ErrMalformedHeader, got %v", err)
	}
	var hdrErr *HeaderError
	if !errors.As(err, &hdrErr) {
		t.Fatalf("expected *HeaderError, got %T", err)
	}
	if hdrErr.Path != "broken.ad.diss" || len(hdrErr.Missing) != 1 || hdrErr.Missing[0] != FieldVersion {
		t.Errorf("HeaderError = %+v", hdrErr)
	}
}

func TestCompareHeaders(t *testing.T) {
	base := Header{Version: "12", RootInstructions: "40", Stack: &StackSetup{"4", "2", "1"}}

	tests := []struct {
		name     string
		new      Header
		errors   int
		warnings int
	}{
		{name: "identical", new: base},
		{name: "version", new: Header{Version: "7", RootInstructions: "40", Stack: base.Stack}, errors: 1},
		{name: "root count", new: Header{Version: "12", RootInstructions: "41", Stack: base.Stack}, errors: 1},
		{name: "stack sizes", new: Header{Version: "12", RootInstructions: "40", Stack: &StackSetup{"5", "3", "1"}}, warnings: 2},
		{name: "stack missing", new: Header{Version: "12", RootInstructions: "40"}, warnings: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d diag.Diags
			d.Append(CompareHeaders(tt.new, base)...)
			if got := d.Count(diag.Error); got != tt.errors {
				t.Errorf("errors = %d, want %d (%v)", got, tt.errors, d.Items())
			}
			if got := d.Count(diag.Warning); got != tt.warnings {
				t.Errorf("warnings = %d, want %d (%v)", got, tt.warnings, d.Items())
			}
			for _, it := range d.Items() {
				if it.Kind != diag.MetadataMismatch {
					t.Errorf("unexpected kind %s", it.Kind)
				}
			}
		})
	}
}

func TestCompareHeadersReportsBothValues(t *testing.T) {
	items := CompareHeaders(Header{Version: "5", RootInstructions: "1"}, Header{Version: "7", RootInstructions: "1"})
	if len(items) != 1 {
		t.Fatalf("expected one diagnostic, got %v", items)
	}
	if items[0].Msg != "Mismatched version: 5 new / 7 orig" {
		t.Errorf("msg = %q", items[0].Msg)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.ad.diss")
	if err := os.WriteFile(path, []byte(sampleDump), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Path != path || len(doc.Instructions()) != 5 {
		t.Errorf("doc = %s with %d instructions", doc.Path, len(doc.Instructions()))
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
