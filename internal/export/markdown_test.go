package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/question-digest/internal"
)

func TestMarkdownExporter_Export(t *testing.T) {
	tests := []struct {
		name    string
		day     *internal.DayFile
		want    string
		wantErr bool
	}{
		{
			name:    "basic day",
			day:     internal.CreateTestDayFile("2024-01-31", "How do channels work?", "What is a goroutine?"),
			want:    "# Questions – 2024-01-31\n\n- How do channels work?\n- What is a goroutine?\n",
			wantErr: false,
		},
		{
			name:    "empty day",
			day:     internal.CreateTestDayFile("unknown"),
			want:    "# Questions – unknown\n\n",
			wantErr: false,
		},
		{
			name:    "multi-line question stays in one bullet",
			day:     internal.CreateTestDayFile("2024-01-31", "first line\nsecond **line**"),
			want:    "# Questions – 2024-01-31\n\n- first line\n  second \\*\\*line\\*\\*\n",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := &MarkdownExporter{}

			err := exporter.Export(tt.day, &buf)
			if (err != nil) != tt.wantErr {
				t.Errorf("MarkdownExporter.Export() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && buf.String() != tt.want {
				t.Errorf("MarkdownExporter.Export() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestMarkdownExporter_Extension(t *testing.T) {
	exporter := &MarkdownExporter{}
	if got := exporter.Extension(); got != "md" {
		t.Errorf("MarkdownExporter.Extension() = %v, want md", got)
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     []string
		notWant  []string
	}{
		{
			name:  "basic text",
			input: "Hello world",
			want:  []string{"Hello world"},
		},
		{
			name:    "markdown bold",
			input:    "This is **bold** text",
			want:     []string{"\\*\\*bold\\*\\*"},
			notWant:  []string{"**bold**"},
		},
		{
			name:    "markdown underline",
			input:    "This is __underlined__ text",
			want:     []string{"\\_\\_underlined\\_\\_"},
			notWant:  []string{"__underlined__"},
		},
		{
			name:  "code block preserved",
			input: "```go\npackage main\n```",
			want:  []string{"```go", "package main", "```"},
		},
		{
			name:    "mixed content",
			input:    "Regular text **bold** and ```code```",
			want:     []string{"\\*\\*bold\\*\\*", "```code```"},
			notWant:  []string{"**bold**"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := escapeMarkdown(tt.input)
			for _, wantStr := range tt.want {
				if !strings.Contains(got, wantStr) {
					t.Errorf("escapeMarkdown() should contain %q, got: %s", wantStr, got)
				}
			}
			for _, notWantStr := range tt.notWant {
				if strings.Contains(got, notWantStr) {
					t.Errorf("escapeMarkdown() should not contain %q, got: %s", notWantStr, got)
				}
			}
		})
	}
}


