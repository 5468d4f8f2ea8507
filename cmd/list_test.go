package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/iksnae/question-digest/internal"
	"github.com/iksnae/question-digest/testutil"
)

func TestListCommand(t *testing.T) {
	outDir := buildFixture(t)

	stdout, err := execute(t, "list", "--out", outDir)
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	for _, want := range []string{"2 question(s) over 2 day(s)", "2023-11-14", "2023-11-16", "QUESTIONS", "KEYWORDS"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("list output missing %q:\n%s", want, stdout)
		}
	}
}

func TestListCommand_Formats(t *testing.T) {
	outDir := buildFixture(t)

	stdout, err := execute(t, "list", "--out", outDir, "--format", "json")
	if err != nil {
		t.Fatalf("list --format json error = %v", err)
	}
	var index internal.Index
	if err := json.Unmarshal([]byte(stdout), &index); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if index.TotalDays != 2 || index.Days[0].Day != "2023-11-14" {
		t.Errorf("index = %+v", index)
	}

	stdout, err = execute(t, "list", "--out", outDir, "-f", "yaml")
	if err != nil {
		t.Fatalf("list --format yaml error = %v", err)
	}
	var fromYAML internal.Index
	if err := yaml.Unmarshal([]byte(stdout), &fromYAML); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, stdout)
	}
	if fromYAML.TotalQuestions != 2 {
		t.Errorf("index = %+v", fromYAML)
	}

	if _, err := execute(t, "list", "--out", outDir, "--format", "xml"); err == nil {
		t.Error("unsupported format should fail")
	}
}

func TestListCommand_NoIndex(t *testing.T) {
	_, err := execute(t, "list", "--out", filepath.Join(testutil.CreateTempDir(t), "empty"))
	if !errors.Is(err, internal.ErrNoIndex) {
		t.Errorf("list error = %v, want ErrNoIndex", err)
	}
}

func TestListCommand_SQLite(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	input := testutil.WriteExportFixture(t, dir, "export.jsonl", testutil.NDJSONExport)
	dbPath := filepath.Join(dir, "digest.db")
	if _, err := execute(t, input, "--out", filepath.Join(dir, "data"), "--tz", "UTC", "--sqlite", dbPath); err != nil {
		t.Fatalf("build error = %v", err)
	}

	// the directory is ignored when reading from the mirror
	stdout, err := execute(t, "list", "--out", filepath.Join(dir, "elsewhere"), "--sqlite", dbPath, "-f", "json")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	var index internal.Index
	if err := json.Unmarshal([]byte(stdout), &index); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if index.TotalDays != 2 {
		t.Errorf("index = %+v", index)
	}
}

func TestDisplayIndex(t *testing.T) {
	tests := []struct {
		name  string
		index *internal.Index
		want  []string
	}{
		{
			name:  "empty index",
			index: &internal.Index{Days: []internal.DayMeta{}},
			want:  []string{"No questions found"},
		},
		{
			name: "days with keywords",
			index: &internal.Index{
				TotalDays:      2,
				TotalQuestions: 3,
				Days: []internal.DayMeta{
					{Day: "2024-01-30", Count: 1, Keywords: []string{"golang"}},
					{Day: "2024-01-31", Count: 2, Keywords: []string{"channel", "select"}},
				},
			},
			want: []string{"3 question(s) over 2 day(s)", "channel, select", "2024-01-31"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			displayIndex(&buf, tt.index)
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("displayIndex() missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}
