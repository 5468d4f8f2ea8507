package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/iksnae/question-digest/internal"
)

var (
	limit  int
	filter string
)

var (
	// Styles for show command
	dayHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1).
			MarginBottom(1)

	dayMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			MarginBottom(1)

	questionContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <day>",
	Short: "Show the questions asked on one day",
	Long: `Display the questions of one day (YYYY-MM-DD, or "unknown" for questions
without a timestamp) in the order they were asked.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := openDataset()
		if err != nil {
			return err
		}
		defer ds.Close()

		day, err := ds.Day(args[0])
		if err != nil {
			return explain(err)
		}
		loc, err := conf.Location()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		displayDayHeader(out, day)

		items := day.Filter(filter)
		total := len(items)
		if limit > 0 && limit < len(items) {
			items = items[:limit]
		}

		if total == 0 {
			fmt.Fprintln(out, dayMetaStyle.Render(fmt.Sprintf("No questions match %q", filter)))
			return nil
		}

		for i, item := range items {
			displayQuestion(out, i+1, total, item, loc)
		}

		// Show remaining count if limit was applied
		if limit > 0 && limit < total {
			fmt.Fprintln(out, dayMetaStyle.Italic(true).
				Render(fmt.Sprintf("... (%d more question(s))", total-limit)))
		}
		return nil
	},
}

func displayDayHeader(w io.Writer, day *internal.DayFile) {
	if day == nil {
		return
	}
	fmt.Fprintln(w, dayHeaderStyle.Render(fmt.Sprintf("🗓  %s", day.Day)))

	metaParts := []string{countStyle.Render(fmt.Sprintf("%d question(s)", day.Count))}
	if len(day.Keywords) > 0 {
		metaParts = append(metaParts, "Keywords: "+strings.Join(day.Keywords, ", "))
	}
	fmt.Fprintln(w, dayMetaStyle.Render(strings.Join(metaParts, " • ")))
}

func displayQuestion(w io.Writer, index, total int, item internal.DayItem, loc *time.Location) {
	header := timestampStyle.Render(fmt.Sprintf("[%d/%d]", index, total))
	if item.Time != nil {
		header += " " + dateStyle.Render(time.Unix(*item.Time, 0).In(loc).Format("15:04:05"))
	}
	if item.Title != "" {
		header += " " + titleStyle.Render(item.Title)
	}
	fmt.Fprintln(w, header)

	content := strings.TrimSpace(item.Text)
	if content == "" {
		fmt.Fprintln(w, questionContentStyle.Foreground(lipgloss.Color("240")).Render("(empty question)"))
		return
	}
	fmt.Fprintln(w, questionContentStyle.Render(wrapText(content, 80)))
}

func wrapText(text string, width int) string {
	lines := strings.Split(text, "\n")
	var wrapped []string

	for _, line := range lines {
		if len(line) <= width {
			wrapped = append(wrapped, line)
			continue
		}

		// Wrap long lines
		words := strings.Fields(line)
		currentLine := ""
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				if currentLine != "" {
					wrapped = append(wrapped, currentLine)
					currentLine = word
				} else {
					wrapped = append(wrapped, word)
					currentLine = ""
				}
			} else {
				if currentLine == "" {
					currentLine = word
				} else {
					currentLine += " " + word
				}
			}
		}
		if currentLine != "" {
			wrapped = append(wrapped, currentLine)
		}
	}

	return strings.Join(wrapped, "\n")
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit number of questions to show")
	showCmd.Flags().StringVar(&filter, "filter", "", "Only show questions containing this text (case-insensitive)")
}
