package cmd

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/iksnae/question-digest/testutil"
)

func TestExportCommand(t *testing.T) {
	outDir := buildFixture(t)
	dest := filepath.Join(testutil.CreateTempDir(t), "exports")

	stdout, err := execute(t, "export", "--out", outDir, "--dest", dest)
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	if !strings.Contains(stdout, "Exported 2 day(s)") {
		t.Errorf("stdout = %q", stdout)
	}

	want := []string{"questions-2023-11-14.md", "questions-2023-11-16.md"}
	if got := testutil.ListFiles(t, dest); !reflect.DeepEqual(got, want) {
		t.Errorf("exported files = %v, want %v", got, want)
	}

	md, err := os.ReadFile(filepath.Join(dest, want[0]))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(md), "How do goroutines schedule work?") {
		t.Errorf("markdown = %q", md)
	}
}

func TestExportCommand_SingleDayFormats(t *testing.T) {
	outDir := buildFixture(t)

	tests := []struct {
		format string
		file   string
	}{
		{"jsonl", "questions-2023-11-16.jsonl"},
		{"json", "questions-2023-11-16.json"},
		{"yaml", "questions-2023-11-16.yaml"},
		{"markdown", "questions-2023-11-16.md"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dest := testutil.CreateTempDir(t)
			if _, err := execute(t, "export", "2023-11-16", "--out", outDir, "--dest", dest, "-f", tt.format); err != nil {
				t.Fatalf("export error = %v", err)
			}
			if got := testutil.ListFiles(t, dest); !reflect.DeepEqual(got, []string{tt.file}) {
				t.Errorf("exported files = %v, want %s", got, tt.file)
			}
		})
	}
}

func TestExportCommand_Stdout(t *testing.T) {
	outDir := buildFixture(t)

	stdout, err := execute(t, "export", "2023-11-16", "--out", outDir, "--format", "jsonl", "--stdout")
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], "What is a channel deadlock?") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestExportCommand_Errors(t *testing.T) {
	outDir := buildFixture(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "invalid format", args: []string{"export", "--out", outDir, "--format", "invalid"}},
		{name: "unknown day", args: []string{"export", "2020-01-01", "--out", outDir, "--stdout"}},
		{name: "no index", args: []string{"export", "--out", filepath.Join(outDir, "nothing"), "--stdout"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("export should fail")
			}
		})
	}
}
