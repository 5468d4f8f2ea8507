package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/iksnae/question-digest/internal"
	"github.com/iksnae/question-digest/internal/export"
)

var (
	format    string
	outputDir string
	toStdout  bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [day...]",
	Short: "Export days of questions to file",
	Long: `Export the questions of one or more days to jsonl, md, yaml or json.

Without arguments every day in the index is exported, one file per day
named questions-<day>.<ext>. Use 'question-digest list' to see the days.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		ds, err := openDataset()
		if err != nil {
			return err
		}
		defer ds.Close()

		days := args
		if len(days) == 0 {
			index, err := ds.Index()
			if err != nil {
				return explain(err)
			}
			for _, meta := range index.Days {
				days = append(days, meta.Day)
			}
		}
		if len(days) == 0 {
			internal.PrintWarning("No days to export")
			return nil
		}

		if toStdout {
			for _, d := range days {
				day, err := ds.Day(d)
				if err != nil {
					return explain(err)
				}
				if err := exporter.Export(day, cmd.OutOrStdout()); err != nil {
					return &internal.ExportError{Format: format, Path: "stdout", Err: err}
				}
			}
			return nil
		}

		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return &internal.StorageError{Path: outputDir, Op: "mkdir", Err: err}
		}

		steps := make([]internal.ProgressStep, 0, len(days))
		for _, d := range days {
			steps = append(steps, internal.ProgressStep{
				Message: "Exporting " + d,
				Fn: func() error {
					day, err := ds.Day(d)
					if err != nil {
						return explain(err)
					}
					return exportDay(exporter, day, filepath.Join(outputDir, export.FileName(day.Day, exporter)))
				},
			})
		}
		if err := internal.ShowProgressWithSteps(cmd.Context(), steps); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d day(s) to %s\n", len(days), outputDir)
		return nil
	},
}

func exportDay(exporter export.Exporter, day *internal.DayFile, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &internal.StorageError{Path: path, Op: "create", Err: err}
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = &internal.StorageError{Path: path, Op: "close", Err: cerr}
		}
	}()

	if err := exporter.Export(day, f); err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	internal.LogDebug("Exported %s to %s", day.Day, path)
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "md", "Export format (jsonl, md, yaml, json)")
	exportCmd.Flags().StringVar(&outputDir, "dest", "./exports", "Directory the exported files are written to")
	exportCmd.Flags().BoolVar(&toStdout, "stdout", false, "Write to stdout instead of files")
}
