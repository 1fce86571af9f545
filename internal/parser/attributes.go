package parser

import (
	"fmt"
	"strings"

	"github.com/agleyzer/hlssort/internal/playlist"
)

// MalformedAttributeError reports a tag body that violates the key=value,
// comma-separated attribute-list grammar.
type MalformedAttributeError struct {
	// Line is the 1-based source line, or 0 when tokenizing outside a file
	Line int

	// Segment is the offending comma-separated piece of the attribute list
	Segment string

	Reason string
}

func (e *MalformedAttributeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed attribute on line %d: %s: %q", e.Line, e.Reason, e.Segment)
	}
	return fmt.Sprintf("malformed attribute: %s: %q", e.Reason, e.Segment)
}

// Tokenize splits an attribute list into ordered key/value pairs. Commas
// inside double-quoted values do not separate attributes. One layer of
// enclosing quotes is stripped from each value. A quote left open at the end
// of the list is malformed.
func Tokenize(attrs string) (playlist.AttributeList, error) {
	segments, ok := splitUnquoted(attrs)
	if !ok {
		return nil, &MalformedAttributeError{Segment: attrs, Reason: "unterminated quote"}
	}
	list := make(playlist.AttributeList, 0, len(segments))

	for _, seg := range segments {
		key, value, found := strings.Cut(seg, "=")
		if !found {
			return nil, &MalformedAttributeError{Segment: seg, Reason: "missing '='"}
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, &MalformedAttributeError{Segment: seg, Reason: "empty key"}
		}
		if list.Has(key) {
			return nil, &MalformedAttributeError{Segment: seg, Reason: "duplicate key " + key}
		}

		list = append(list, playlist.Pair{Key: key, Value: unquote(strings.TrimSpace(value))})
	}

	return list, nil
}

// splitUnquoted splits s on commas that are outside double quotes. ok is false
// when a quote is never closed.
func splitUnquoted(s string) (segments []string, ok bool) {
	inQuotes := false
	start := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				segments = append(segments, s[start:i])
				start = i + 1
			}
		}
	}

	return append(segments, s[start:]), !inQuotes
}

func unquote(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}
