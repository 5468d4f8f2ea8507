package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	json "github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/iksnae/question-digest/internal"
)

var listFormat string

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the days in the built dataset",
	Long: `List every day of the built dataset with its question count and keywords.

Reads index.json from the output directory, or the SQLite mirror when
--sqlite is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := openDataset()
		if err != nil {
			return err
		}
		defer ds.Close()

		index, err := ds.Index()
		if err != nil {
			return explain(err)
		}

		out := cmd.OutOrStdout()
		switch strings.ToLower(listFormat) {
		case "table", "":
			displayIndex(out, index)
			return nil
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(index)
		case "yaml", "yml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(index); err != nil {
				return err
			}
			return enc.Close()
		default:
			return fmt.Errorf("unsupported format: %s (supported: table, json, yaml)", listFormat)
		}
	},
}

func displayIndex(w io.Writer, index *internal.Index) {
	if len(index.Days) == 0 {
		fmt.Fprintln(w, headerStyle.Render("📋 No questions found"))
		return
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("📋 %d question(s) over %d day(s)", index.TotalQuestions, index.TotalDays)))
	fmt.Fprintln(w)

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateHeader = true
	tw.Style().Options.DrawBorder = true

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignCenter, WidthMax: 80},
	})
	tw.AppendHeader(table.Row{"Day", "Questions", "Keywords"})

	for _, meta := range index.Days {
		tw.AppendRow(table.Row{
			meta.Day,
			meta.Count,
			strings.Join(meta.Keywords, ", "),
		})
	}
	tw.Render()

	fmt.Fprintln(w)
	fmt.Fprintln(w, idStyle.Render("💡 Tip: Use a day (e.g., ")+
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(index.Days[len(index.Days)-1].Day)+
		idStyle.Render(") with `question-digest show <day>`"))
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "Output format (table, json, yaml)")
}
