package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/iksnae/question-digest/internal"
)

var (
	healthcheckVerbose bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck [export-file]",
	Short: "Check that an export can be read and the output written",
	Long: `Check the health of question-digest by verifying:
  • Configuration
  • Export file readability and format
  • Output directory writability
  • Published dataset and SQLite mirror state

This command is useful for debugging a build before running it, especially in CI/CD environments.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		input := conf.Input
		if len(args) == 1 {
			input = args[0]
		}

		fmt.Fprintln(out, sectionStyle.Render("🔍 Question Digest Health Check"))
		fmt.Fprintln(out)

		// Step 1: Configuration
		fmt.Fprintln(out, infoStyle.Render("Step 1: Loading configuration..."))
		if conf.Path != "" {
			fmt.Fprintln(out, successStyle.Render("✅ Config loaded from "+conf.Path))
		} else {
			fmt.Fprintln(out, successStyle.Render("✅ Using defaults (no config file)"))
		}
		if healthcheckVerbose {
			fmt.Fprintf(out, "   Output: %s\n", conf.OutDir)
			fmt.Fprintf(out, "   Time zone: %s\n", conf.Timezone)
			fmt.Fprintf(out, "   Keywords per day: %d\n", conf.TopKeywords)
		}
		fmt.Fprintln(out)

		// Step 2: Read the export
		fmt.Fprintln(out, infoStyle.Render("Step 2: Reading "+input+"..."))
		data, err := internal.ReadExport(input)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Cannot read export:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Export readable (%d bytes)", len(data))))
		fmt.Fprintln(out)

		// Step 3: Parse it
		fmt.Fprintln(out, infoStyle.Render("Step 3: Extracting questions..."))
		pipeline, err := internal.NewPipelineFromConfig(conf)
		if err != nil {
			return err
		}
		result, err := pipeline.Run(input, data)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Export is not valid JSON:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		questions := result.Index.TotalQuestions
		if questions > 0 {
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Found %d question(s) in %d conversation(s)", questions, result.Conversations)))
			if healthcheckVerbose {
				for i, meta := range result.Index.Days {
					if i < 5 { // Show first 5
						fmt.Fprintf(out, "   [%d] %s (%d)\n", i+1, meta.Day, meta.Count)
					}
				}
				if len(result.Index.Days) > 5 {
					fmt.Fprintf(out, "   ... and %d more\n", len(result.Index.Days)-5)
				}
			}
		} else {
			fmt.Fprintln(out, warningStyle.Render("⚠️  No questions found"))
			fmt.Fprintln(out, "   This could mean:")
			fmt.Fprintln(out, "   • The export has no conversations")
			fmt.Fprintln(out, "   • Messages carry no user role the extractor recognizes")
		}
		fmt.Fprintln(out)

		// Step 4: Output directory
		fmt.Fprintln(out, infoStyle.Render("Step 4: Checking output directory..."))
		if err := checkWritable(conf.OutDir); err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Output directory is not writable:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		fmt.Fprintln(out, successStyle.Render("✅ "+conf.OutDir+" is writable"))
		fmt.Fprintln(out)

		// Step 5: Published dataset
		fmt.Fprintln(out, infoStyle.Render("Step 5: Checking published dataset..."))
		index, err := internal.NewDirSink(conf.OutDir).LoadIndex()
		switch {
		case errors.Is(err, internal.ErrNoIndex):
			fmt.Fprintln(out, warningStyle.Render("⚠️  No index.json yet"))
		case err != nil:
			fmt.Fprintln(out, warningStyle.Render("⚠️  index.json is unreadable:"), err)
		default:
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Published: %d question(s) over %d day(s)", index.TotalQuestions, index.TotalDays)))
		}
		if conf.SQLite != "" {
			db, err := internal.OpenDatabase(conf.SQLite)
			if err != nil {
				fmt.Fprintln(out, warningStyle.Render("⚠️  SQLite mirror unavailable:"), err)
			} else {
				if mirrored, err := internal.QueryIndex(db); err != nil {
					fmt.Fprintln(out, warningStyle.Render("⚠️  SQLite mirror unreadable:"), err)
				} else {
					fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ SQLite mirror: %d day(s)", mirrored.TotalDays)))
				}
				db.Close()
			}
		}
		fmt.Fprintln(out)

		// Summary
		fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
		fmt.Fprintln(out)
		if questions > 0 {
			fmt.Fprintln(out, successStyle.Render("✅ Health check passed!"))
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("   • Days: %d", result.Index.TotalDays)))
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("   • Questions: %d", questions)))
		} else {
			fmt.Fprintln(out, warningStyle.Render("⚠️  Export readable but no questions found"))
		}
		return nil
	},
}

// checkWritable creates dir if needed and writes a temporary file into it.
func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".healthcheck-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVarP(&healthcheckVerbose, "details", "d", false, "Show detailed diagnostic information")
}
