// Package format substitutes {name} placeholders in template text.
//
// A placeholder is a bare name between single braces. Doubled braces ({{ and }})
// produce a literal brace. Conversions, format specs and attribute or index
// access are syntax errors: a placeholder either resolves to a value or the
// whole execution fails.
package format

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingKey is matched by every *MissingKeyError.
var ErrMissingKey = errors.New("missing key")

// Lookup resolves placeholder names to values.
type Lookup interface {
	Lookup(key string) (string, bool)
}

// Map is the simplest Lookup.
type Map map[string]string

// Lookup implements Lookup.
func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// MissingKeyError reports a placeholder with no value.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing key %q", e.Key)
}

// Is makes errors.Is(err, ErrMissingKey) work.
func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingKey
}

// SyntaxError reports malformed template text at a byte offset.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

// Execute returns text with every placeholder replaced from vars.
func Execute(text string, vars Lookup) (string, error) {
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); {
		c := text[i]
		switch c {
		case '{':
			if i+1 < len(text) && text[i+1] == '{' {
				b.WriteByte('{')
				i += 2
				continue
			}
			name, n, err := field(text, i)
			if err != nil {
				return "", err
			}
			v, ok := vars.Lookup(name)
			if !ok {
				return "", &MissingKeyError{Key: name}
			}
			b.WriteString(v)
			i += n
		case '}':
			if i+1 < len(text) && text[i+1] == '}' {
				b.WriteByte('}')
				i += 2
				continue
			}
			return "", &SyntaxError{Offset: i, Msg: "single '}' encountered"}
		default:
			j := strings.IndexAny(text[i:], "{}")
			if j < 0 {
				b.WriteString(text[i:])
				i = len(text)
			} else {
				b.WriteString(text[i : i+j])
				i += j
			}
		}
	}
	return b.String(), nil
}

// field parses the placeholder opening at text[start] and returns its name and
// the number of bytes it spans, braces included.
func field(text string, start int) (string, int, error) {
	end := strings.IndexAny(text[start+1:], "{}")
	if end < 0 {
		return "", 0, &SyntaxError{Offset: start, Msg: "expected '}' before end of string"}
	}
	end += start + 1
	if text[end] == '{' {
		return "", 0, &SyntaxError{Offset: end, Msg: "unexpected '{' in field name"}
	}

	name := text[start+1 : end]
	switch {
	case name == "":
		return "", 0, &SyntaxError{Offset: start, Msg: "empty field name"}
	case isPositional(name):
		return "", 0, &SyntaxError{Offset: start, Msg: fmt.Sprintf("positional field {%s} has no argument", name)}
	case strings.ContainsAny(name, "!:"):
		return "", 0, &SyntaxError{Offset: start, Msg: fmt.Sprintf("conversions and format specs are not supported: {%s}", name)}
	case strings.ContainsAny(name, ".["):
		return "", 0, &SyntaxError{Offset: start, Msg: fmt.Sprintf("attribute and index access are not supported: {%s}", name)}
	}
	return name, end - start + 1, nil
}

func isPositional(name string) bool {
	for i := 0; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			return false
		}
	}
	return true
}
