// Package config reads and writes the toolchain front-end configuration file.
//
// The file is line oriented:
//
//	// comment
//	ADHOC_DIR = "C:\tools\adhoc.exe"
//	AUTO_DISS_ON_QUICKBUILD = true
//	QUICK_BUILD_LIST_0 = ["label", "SINGLE", "main.ad", "12", "", "main.adc"]
//
// Values are strings, booleans or arrays of double-quoted strings. Comments and keys
// the program does not manage survive a Save untouched.
package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"adhoctool/internal/diag"
)

// ErrInvalidEncoding is wrapped by IOError when a file is not valid UTF-8.
var ErrInvalidEncoding = errors.New("invalid UTF-8 encoding")

// IOError reports a configuration file that exists but could not be read or written.
// A missing file is never an IOError.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("config: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Entry is a key and its value, used for ordered updates.
type Entry struct {
	Key   string
	Value Value
}

// Store holds the parsed entries of one configuration file.
type Store struct {
	values map[string]Value
	keys   []string
	diags  diag.Diags
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{values: make(map[string]Value)}
}

// Load parses the file at path. A file that does not exist yields an empty store.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewStore(), nil
		}
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return nil, &IOError{Op: "read", Path: path, Err: ErrInvalidEncoding}
	}

	s, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return s, nil
}

// Parse reads entries from r. Lines that are not KEY = VALUE pairs are skipped.
// When a key repeats, the last occurrence wins.
func Parse(r io.Reader) (*Store, error) {
	s := NewStore()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		key, raw, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		v, ok := parseValue(strings.TrimSpace(raw))
		if !ok {
			s.diags.Addf(diag.MalformedValue, diag.Warning,
				"line %d: %s has an unterminated quote, kept %d item(s)", lineNo, key, len(v.arr))
		}
		s.Set(key, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

// String returns the string under key, or def when the key is absent or not a string.
func (s *Store) String(key, def string) string {
	if v, ok := s.values[key]; ok {
		if str, ok := v.AsString(); ok {
			return str
		}
	}
	return def
}

// Bool returns the boolean under key, or def when the key is absent or not a boolean.
func (s *Store) Bool(key string, def bool) bool {
	if v, ok := s.values[key]; ok {
		if b, ok := v.AsBool(); ok {
			return b
		}
	}
	return def
}

// Array returns the items under key. ok is false when the key is absent or not an array.
func (s *Store) Array(key string) ([]string, bool) {
	v, ok := s.values[key]
	if !ok {
		return nil, false
	}
	return v.AsArray()
}

// Set stores v under key. New keys are appended to the key order.
func (s *Store) Set(key string, v Value) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = v
}

// Delete removes key from the store.
func (s *Store) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in the order they were first seen.
func (s *Store) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.values) }

// Diags returns problems found while parsing.
func (s *Store) Diags() []diag.Diag { return s.diags.Items() }

// Format renders one KEY = VALUE line without the trailing newline.
func Format(key string, v Value) string {
	return key + " = " + v.String()
}

// Save merges updates into the file at path. Every existing line whose trimmed text
// starts with one of replacePrefixes is removed, then one line per update is appended
// in order. All other lines, comments included, are kept as they were. A missing file
// is treated as empty.
func Save(path string, updates []Entry, replacePrefixes []string) error {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &IOError{Op: "read", Path: path, Err: err}
	}

	var out bytes.Buffer
	for _, line := range splitLines(string(data)) {
		if hasAnyPrefix(strings.TrimSpace(line), replacePrefixes) {
			continue
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	for _, e := range updates {
		out.WriteString(Format(e.Key, e.Value))
		out.WriteByte('\n')
	}

	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// splitLines splits s on '\n'. A trailing newline does not produce an empty last
// line. Carriage returns stay on their lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
