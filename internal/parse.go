package internal

import (
	"bufio"
	"bytes"
	"fmt"
)

// ParseExport decodes an export file. A single JSON document is tried first;
// when that fails every non-blank line is decoded on its own (NDJSON), array
// lines are flattened one level, and the result is wrapped as
// {"conversations": [...]} so root discovery finds it. Input made only of
// blank lines yields an empty conversation list.
func ParseExport(source string, data []byte) (any, error) {
	doc, docErr := decodeDocument(data)
	if docErr == nil {
		return doc, nil
	}
	LogDebug("%s is not a single JSON document (%v), trying NDJSON", source, docErr)

	items, err := parseLines(source, data)
	if err != nil {
		return nil, err
	}
	return NewObject("conversations", items), nil
}

func parseLines(source string, data []byte) ([]any, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	// A line can hold an entire conversation; size the buffer to the input.
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)

	items := make([]any, 0)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		v, err := decodeDocument(line)
		if err != nil {
			return nil, &ParseError{Source: source, Key: fmt.Sprintf("line %d", lineNo), Err: err}
		}
		if arr, ok := v.([]any); ok {
			items = append(items, arr...)
		} else {
			items = append(items, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Source: source, Key: fmt.Sprintf("line %d", lineNo+1), Err: err}
	}
	return items, nil
}
