package config

import (
	"strings"
)

// Kind identifies which of the supported types a Value holds.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	default:
		return "string"
	}
}

// Value is a single configuration value: a string, a boolean or an ordered list of
// strings.
type Value struct {
	kind Kind
	str  string
	b    bool
	arr  []string
}

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// ArrayValue returns a string-array Value. The items are copied.
func ArrayValue(items ...string) Value {
	arr := make([]string, len(items))
	copy(arr, items)
	return Value{kind: KindArray, arr: arr}
}

func (v Value) Kind() Kind { return v.kind }

// AsString returns the string and true when v holds a string.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsBool returns the boolean and true when v holds a boolean.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsArray returns a copy of the items and true when v holds an array.
func (v Value) AsArray() ([]string, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	out := make([]string, len(v.arr))
	copy(out, v.arr)
	return out, true
}

// Equal reports whether both values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if v.arr[i] != o.arr[i] {
				return false
			}
		}
		return true
	default:
		return v.str == o.str
	}
}

// String renders the value the way it is written to disk.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindArray:
		return formatArray(v.arr)
	default:
		return `"` + v.str + `"`
	}
}

// parseValue decodes the right-hand side of a KEY = VALUE line. ok is false when an
// array value had an unterminated quote; the returned value then holds what could be
// recovered.
func parseValue(raw string) (v Value, ok bool) {
	switch {
	case len(raw) >= 2 && raw[0] == '[' && raw[len(raw)-1] == ']':
		items, ok := parseArray(raw[1 : len(raw)-1])
		return Value{kind: KindArray, arr: items}, ok
	case strings.EqualFold(raw, "true"):
		return BoolValue(true), true
	case strings.EqualFold(raw, "false"):
		return BoolValue(false), true
	default:
		return StringValue(unquote(raw)), true
	}
}

// unquote strips one layer of matching single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if first := s[0]; (first == '"' || first == '\'') && s[len(s)-1] == first {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// parseArray collects every double-quoted substring of s. A backslash inside quotes
// keeps the next character literally. Text outside quotes is a separator.
func parseArray(s string) ([]string, bool) {
	items := []string{}
	for i := 0; i < len(s); i++ {
		if s[i] != '"' {
			continue
		}

		var b strings.Builder
		closed := false
		for i++; i < len(s); i++ {
			c := s[i]
			if c == '\\' && i+1 < len(s) {
				i++
				b.WriteByte(s[i])
				continue
			}
			if c == '"' {
				closed = true
				break
			}
			b.WriteByte(c)
		}
		items = append(items, b.String())
		if !closed {
			return items, false
		}
	}
	return items, true
}

func formatArray(items []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, it := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('"')
		b.WriteString(escapeItem(it))
		b.WriteByte('"')
	}
	b.WriteByte(']')
	return b.String()
}

func escapeItem(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
