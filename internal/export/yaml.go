package export

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/iksnae/question-digest/internal"
)

// YAMLExporter exports a day in YAML format
type YAMLExporter struct{}

// Export exports a day to YAML format
func (e *YAMLExporter) Export(day *internal.DayFile, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()

	return enc.Encode(day)
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
