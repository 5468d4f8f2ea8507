package export

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/iksnae/question-digest/internal"
)

// jsonlRecord is one question line; the day is repeated so lines stand alone.
type jsonlRecord struct {
	Day   string `json:"day"`
	I     int    `json:"i"`
	Time  *int64 `json:"time"`
	Text  string `json:"text"`
	Title string `json:"title,omitempty"`
}

// JSONLExporter exports a day in JSONL format (one question per line)
type JSONLExporter struct{}

// Export exports a day to JSONL format
func (e *JSONLExporter) Export(day *internal.DayFile, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for _, item := range day.Items {
		rec := jsonlRecord{
			Day:   day.Day,
			I:     item.I,
			Time:  item.Time,
			Text:  item.Text,
			Title: item.Title,
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to encode question %d: %w", item.I, err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
