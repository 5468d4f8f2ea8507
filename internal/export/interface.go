package export

import (
	"fmt"
	"io"

	"github.com/iksnae/question-digest/internal"
)

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(day *internal.DayFile, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: jsonl, md, yaml, json)", format)
	}
}

// FileName returns the default download name for a day, e.g. questions-2024-01-31.md
func FileName(day string, e Exporter) string {
	return fmt.Sprintf("questions-%s.%s", day, e.Extension())
}
