package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iksnae/question-digest/internal"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Find questions across every day",
	Long: `Search the text of every question in the built dataset, ignoring case.

Matches are listed by day in the order they were asked. With --sqlite the
search runs against the SQLite mirror.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := args[0]
		if strings.TrimSpace(term) == "" {
			return fmt.Errorf("search term must not be empty")
		}

		ds, err := openDataset()
		if err != nil {
			return err
		}
		defer ds.Close()

		questions, err := ds.Search(term)
		if err != nil {
			return explain(err)
		}
		loc, err := conf.Location()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(questions) == 0 {
			fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("🔎 No questions match %q", term)))
			return nil
		}
		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("🔎 %d question(s) match %q", len(questions), term)))
		fmt.Fprintln(out)

		total := len(questions)
		if searchLimit > 0 && searchLimit < total {
			questions = questions[:searchLimit]
		}
		for _, q := range questions {
			displayMatch(out, q, loc)
		}
		if searchLimit > 0 && searchLimit < total {
			fmt.Fprintln(out, dayMetaStyle.Italic(true).
				Render(fmt.Sprintf("... (%d more question(s))", total-searchLimit)))
		}
		return nil
	},
}

func displayMatch(w io.Writer, q internal.Question, loc *time.Location) {
	header := dateStyle.Render(q.Date)
	if q.Timestamp != nil {
		header += " " + timestampStyle.Render(time.Unix(*q.Timestamp, 0).In(loc).Format("15:04"))
	}
	if q.Title != "" {
		header += " " + titleStyle.Render(q.Title)
	}
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, questionContentStyle.Render(wrapText(strings.TrimSpace(q.Text), 80)))
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Limit number of matches to show")
}
