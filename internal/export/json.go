package export

import (
	"io"

	json "github.com/goccy/go-json"

	"github.com/iksnae/question-digest/internal"
)

// JSONExporter exports a day in JSON format (pretty-printed)
type JSONExporter struct{}

// Export exports a day to JSON format
func (e *JSONExporter) Export(day *internal.DayFile, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	return enc.Encode(day)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
