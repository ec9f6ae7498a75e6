package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"adhoctool/internal/diag"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestParseValueTypes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Value
	}{
		{name: "quoted string", raw: `"C:\tools\adhoc.exe"`, want: StringValue(`C:\tools\adhoc.exe`)},
		{name: "single quoted string", raw: `'quick'`, want: StringValue("quick")},
		{name: "bare string", raw: "quick", want: StringValue("quick")},
		{name: "only one layer stripped", raw: `""nested""`, want: StringValue(`"nested"`)},
		{name: "mismatched quotes kept", raw: `"half'`, want: StringValue(`"half'`)},
		{name: "true", raw: "true", want: BoolValue(true)},
		{name: "false uppercase", raw: "FALSE", want: BoolValue(false)},
		{name: "quoted true stays a string", raw: `"true"`, want: StringValue("true")},
		{name: "empty array", raw: "[]", want: ArrayValue()},
		{name: "array", raw: `["a", "b c", ""]`, want: ArrayValue("a", "b c", "")},
		{name: "array without separators", raw: `["a""b"]`, want: ArrayValue("a", "b")},
		{name: "array with escapes", raw: `["say \"hi\"", "C:\\dir"]`, want: ArrayValue(`say "hi"`, `C:\dir`)},
		{name: "array ignores unquoted text", raw: `[junk, "x", 12]`, want: ArrayValue("x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseValue(tt.raw)
			if !ok {
				t.Fatalf("parseValue(%q) reported malformed input", tt.raw)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseValue(%q) = %s (%s), want %s (%s)", tt.raw, got, got.Kind(), tt.want, tt.want.Kind())
			}
		})
	}
}

func TestParseArrayUnterminated(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{raw: `["abc`, want: []string{"abc"}},
		{raw: `["ok", "bro`, want: []string{"ok", "bro"}},
		{raw: `["trailing\`, want: []string{`trailing\`}},
		{raw: `["esc\"`, want: []string{`esc"`}},
	}

	for _, tt := range tests {
		items, ok := parseArray(tt.raw)
		if ok {
			t.Errorf("parseArray(%q) should report an unterminated quote", tt.raw)
		}
		if strings.Join(items, "|") != strings.Join(tt.want, "|") {
			t.Errorf("parseArray(%q) = %q, want %q", tt.raw, items, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	entries := []Entry{
		{Key: "PLAIN", Value: StringValue("hello world")},
		{Key: "EMPTY", Value: StringValue("")},
		{Key: "SPACES", Value: StringValue("  padded  ")},
		{Key: "PATH", Value: StringValue(`C:\Program Files\adhoc.exe`)},
		{Key: "LOOKS_BOOL", Value: StringValue("TRUE")},
		{Key: "LOOKS_ARRAY", Value: StringValue("[not, an, array]")},
		{Key: "QUOTE_INSIDE", Value: StringValue(`a "quoted" word`)},
		{Key: "ON", Value: BoolValue(true)},
		{Key: "OFF", Value: BoolValue(false)},
		{Key: "NONE", Value: ArrayValue()},
		{Key: "LIST", Value: ArrayValue("x", "", `C:\dir\`, `say "hi"`, "a, b", "[x]")},
	}

	path := filepath.Join(t.TempDir(), "config.txt")
	if err := Save(path, entries, nil); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Diags()) != 0 {
		t.Errorf("unexpected diagnostics: %v", s.Diags())
	}
	for _, e := range entries {
		got, ok := s.Get(e.Key)
		if !ok {
			t.Errorf("%s missing after round trip", e.Key)
			continue
		}
		if !got.Equal(e.Value) {
			t.Errorf("%s = %s, want %s", e.Key, got, e.Value)
		}
	}
	if got := strings.Join(s.Keys(), ","); got != "PLAIN,EMPTY,SPACES,PATH,LOOKS_BOOL,LOOKS_ARRAY,QUOTE_INSIDE,ON,OFF,NONE,LIST" {
		t.Errorf("key order = %s", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d entries", s.Len())
	}
}

func TestLoadInvalidEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.txt")
	if err := os.WriteFile(path, []byte("KEY = \xff\xfe\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *IOError, got %v", err)
	}
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("expected ErrInvalidEncoding, got %v", err)
	}
}

func TestLoadDirectoryIsIOError(t *testing.T) {
	_, err := Load(t.TempDir())
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *IOError reading a directory, got %v", err)
	}
}

func TestParseSkipsUnrecognisedLines(t *testing.T) {
	content := strings.Join([]string{
		"// a comment = with equals",
		"",
		"no equals sign here",
		" = missing key",
		"  ADHOC_DIR  =   \"adhoc.exe\"  ",
		"A = b = c",
		"BROKEN = [\"ok\", \"unterminated]",
	}, "\n")

	s, err := Parse(strings.NewReader(content))
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d (%v)", s.Len(), s.Keys())
	}
	if got := s.String("ADHOC_DIR", ""); got != "adhoc.exe" {
		t.Errorf("ADHOC_DIR = %q", got)
	}
	if got := s.String("A", ""); got != "b = c" {
		t.Errorf("A = %q, want %q", got, "b = c")
	}
	items, ok := s.Array("BROKEN")
	if !ok || len(items) != 2 || items[1] != "unterminated" {
		t.Errorf("BROKEN = %q, %v", items, ok)
	}
	if len(s.Diags()) != 1 || s.Diags()[0].Kind != diag.MalformedValue {
		t.Errorf("expected one malformed value diagnostic, got %v", s.Diags())
	}
}

func TestSavePreservesUnrelatedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.txt")
	writeFile(t, path, strings.Join([]string{
		"// settings",
		"ADHOC_DIR = \"old.exe\"",
		"",
		"  QUICK_BUILD_LIST_0 = [\"a\"]",
		"CUSTOM = keep me",
		"QUICK_BUILD_LIST_1 = [\"b\"]",
		"// QUICK_BUILD_LIST_ in a comment stays",
	}, "\n"))

	updates := []Entry{
		{Key: "QUICK_BUILD_LIST_0", Value: ArrayValue("new")},
		{Key: "ADHOC_DIR", Value: StringValue("new.exe")},
	}
	if err := Save(path, updates, []string{"QUICK_BUILD_LIST_", "ADHOC_DIR"}); err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"// settings",
		"",
		"CUSTOM = keep me",
		"// QUICK_BUILD_LIST_ in a comment stays",
		`QUICK_BUILD_LIST_0 = ["new"]`,
		`ADHOC_DIR = "new.exe"`,
		"",
	}, "\n")
	if got := readFile(t, path); got != want {
		t.Errorf("saved file:\n%s\nwant:\n%s", got, want)
	}
}

func TestSaveCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	if err := Save(path, []Entry{{Key: "X", Value: BoolValue(true)}}, []string{"X"}); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, path); got != "X = true\n" {
		t.Errorf("got %q", got)
	}
}

func TestSaveWriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "config.txt")
	err := Save(path, []Entry{{Key: "X", Value: StringValue("y")}}, nil)
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *IOError, got %v", err)
	}
	if ioErr.Op != "write" {
		t.Errorf("Op = %q, want write", ioErr.Op)
	}
}

func TestStoreSetDelete(t *testing.T) {
	s := NewStore()
	s.Set("A", StringValue("1"))
	s.Set("B", BoolValue(true))
	s.Set("A", StringValue("2"))
	s.Delete("A")
	s.Delete("missing")

	if got := strings.Join(s.Keys(), ","); got != "B" {
		t.Errorf("keys = %s", got)
	}
	if !s.Bool("B", false) {
		t.Error("B should be true")
	}
	if got := s.String("B", "def"); got != "def" {
		t.Errorf("String on a bool should fall back to default, got %q", got)
	}
}
