package internal

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// fieldPath addresses a value nested under objects, e.g. {"metadata", "create_time"}.
type fieldPath []string

// lookup follows path through nested objects.
func lookup(v any, path ...string) (any, bool) {
	cur := v
	for _, key := range path {
		obj, ok := cur.(*Object)
		if !ok {
			return nil, false
		}
		cur, ok = obj.Get(key)
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func lookupString(v any, path ...string) (string, bool) {
	raw, ok := lookup(v, path...)
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	return s, ok
}

// textExtractor pulls message text out of one known node shape. ok reports whether
// the shape matched; a matched shape ends the chain even when the text is empty.
type textExtractor func(node any) (text string, ok bool)

// roleExtractor pulls the author role out of one known node shape.
type roleExtractor func(node any) (role string, ok bool)

// textChain lists the node shapes in priority order.
var textChain = []textExtractor{
	textFromString,
	partsAt("content"),
	textAt("content"),
	textFromContentString,
	partsAt("message", "content"),
	textAt("message", "content"),
	textFromTextField,
}

var (
	// mappingRoleChain applies to nodes of a "mapping" graph.
	mappingRoleChain = []roleExtractor{
		roleAt("author", "role"),
		roleAt("author"),
		roleAt("metadata", "role"),
	}
	// flatRoleChain applies to entries of a flat messages list.
	flatRoleChain = []roleExtractor{
		roleAt("author", "role"),
		roleAt("role"),
	}
)

// timestampFields are tried in order; the first present field is used.
var timestampFields = []fieldPath{
	{"create_time"},
	{"metadata", "create_time"},
	{"createTime"},
}

// ExtractText runs the text chain over a node and returns the trimmed text.
func ExtractText(node any) string {
	for _, extract := range textChain {
		if text, ok := extract(node); ok {
			return text
		}
	}
	return ""
}

func extractRole(node any, chain []roleExtractor) string {
	for _, extract := range chain {
		if role, ok := extract(node); ok {
			return role
		}
	}
	return ""
}

// ExtractTimestamp returns the node's creation time in epoch seconds, or nil.
func ExtractTimestamp(node any) *int64 {
	for _, path := range timestampFields {
		if raw, ok := lookup(node, path...); ok && raw != nil {
			return AsUnix(raw)
		}
	}
	return nil
}

func textFromString(node any) (string, bool) {
	s, ok := node.(string)
	return s, ok
}

// partsAt joins the string fragments of <path>.parts with newlines.
func partsAt(path ...string) textExtractor {
	partsPath := append(append(fieldPath{}, path...), "parts")
	return func(node any) (string, bool) {
		raw, ok := lookup(node, partsPath...)
		if !ok {
			return "", false
		}
		parts, ok := raw.([]any)
		if !ok {
			return "", false
		}
		fragments := make([]string, 0, len(parts))
		for _, p := range parts {
			// non-text parts (images, attachments) carry objects
			if s, ok := p.(string); ok {
				fragments = append(fragments, s)
			}
		}
		return strings.TrimSpace(strings.Join(fragments, "\n")), true
	}
}

// textAt reads <path>.text when it is a string.
func textAt(path ...string) textExtractor {
	textPath := append(append(fieldPath{}, path...), "text")
	return func(node any) (string, bool) {
		s, ok := lookupString(node, textPath...)
		if !ok {
			return "", false
		}
		return strings.TrimSpace(s), true
	}
}

func textFromContentString(node any) (string, bool) {
	s, ok := lookupString(node, "content")
	if !ok || s == "" {
		return "", false
	}
	return strings.TrimSpace(s), true
}

func textFromTextField(node any) (string, bool) {
	s, ok := lookupString(node, "text")
	if !ok || s == "" {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// roleAt reads the role at path. Any value that is set ends the chain; values
// other than a string (an author object without a role, a number) yield an
// empty role, so the message never counts as a user message.
func roleAt(path ...string) roleExtractor {
	return func(node any) (string, bool) {
		v, ok := lookup(node, path...)
		if !ok || !isSet(v) {
			return "", false
		}
		s, _ := v.(string)
		return s, true
	}
}

// isSet reports whether v holds a value: not null, false, zero or "".
func isSet(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	default:
		return true
	}
}

// AsUnix normalizes a raw timestamp to epoch seconds. Values above 1e12 are
// taken as milliseconds. Zero, missing and unparseable values yield nil.
func AsUnix(raw any) *int64 {
	var v float64
	switch t := raw.(type) {
	case float64:
		v = t
	case int64:
		v = float64(t)
	case int:
		v = float64(t)
	case string:
		s := strings.TrimSpace(t)
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			v = f
		} else if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
			sec := ts.Unix()
			if sec == 0 {
				return nil
			}
			return &sec
		} else {
			return nil
		}
	default:
		return nil
	}

	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	if v > 1e12 {
		v /= 1000
	}
	sec := int64(math.Floor(v))
	return &sec
}
