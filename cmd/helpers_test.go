package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/iksnae/question-digest/testutil"
)

// resetFlags puts every flag back to its default so one Execute does not
// leak into the next.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the CLI with args and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)

	err := rootCmd.Execute()
	return stdout.String(), err
}

// buildFixture writes the two-conversation NDJSON export and builds it into
// a fresh output directory using UTC days.
func buildFixture(t *testing.T) (outDir string) {
	t.Helper()
	dir := testutil.CreateTempDir(t)
	input := testutil.WriteExportFixture(t, dir, "export.jsonl", testutil.NDJSONExport)
	outDir = filepath.Join(dir, "data")

	if _, err := execute(t, input, "--out", outDir, "--tz", "UTC"); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return outDir
}
