package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/question-digest/internal"
)

// MarkdownExporter exports a day as a Markdown bullet list
type MarkdownExporter struct{}

// Export writes a "# Questions – <day>" heading followed by one bullet per question.
func (e *MarkdownExporter) Export(day *internal.DayFile, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# Questions – %s\n\n", day.Day); err != nil {
		return err
	}

	for _, item := range day.Items {
		// continuation lines are indented so multi-line questions stay in one bullet
		text := strings.ReplaceAll(escapeMarkdown(item.Text), "\n", "\n  ")
		if _, err := fmt.Fprintf(w, "- %s\n", text); err != nil {
			return err
		}
	}

	return nil
}

// escapeMarkdown escapes markdown special characters
func escapeMarkdown(text string) string {
	// Basic escaping - preserve code blocks
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
