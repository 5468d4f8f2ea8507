package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/question-digest/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	outDir     string
	topN       int
	timezone   string
	sqlitePath string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"

	// conf is loaded once per invocation by the persistent pre-run hook
	conf *internal.Config
)

// rootCmd builds the static dataset when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "question-digest [export-file]",
	Short: "Turn a chat history export into a daily digest of your questions",
	Long: `Reads a chat history export (conversations.json, a single conversation
or newline-delimited JSON), keeps only the messages you wrote and writes one
JSON file per calendar day plus an index with per-day keywords.

The output directory is what the bundled web viewer loads from.

Quick Start:
  question-digest conversations.json          # Build site/data/
  question-digest list                        # Days with question counts
  question-digest show 2024-01-31             # Questions asked that day
  question-digest serve                       # Serve the viewer and API`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: runBuild,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// flagKeys maps command line flags onto config keys. Only flags set on the
// command line override the config file and environment.
var flagKeys = map[string]string{
	"out":    "outDir",
	"top":    "topKeywords",
	"tz":     "timezone",
	"sqlite": "sqlite",
	"host":   "serve.host",
	"port":   "serve.port",
	"site":   "serve.siteDir",
}

func loadConfig(cmd *cobra.Command) error {
	v := internal.NewViper()
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind --%s: %w", name, err)
			}
		}
	}

	c, err := internal.LoadConfig(v, configPath)
	if err != nil {
		return err
	}

	format := c.Logger.Format
	if format == "auto" {
		format = ""
	}
	internal.SetLogOutput(cmd.ErrOrStderr(), format)
	internal.SetLogLevel(internal.ParseLogLevel(c.Logger.Level))
	if verbose {
		internal.SetVerbose(true)
	}
	if c.Path != "" {
		internal.LogDebug("Loaded config from %s", c.Path)
	}

	conf = c
	return nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	input := conf.Input
	if len(args) == 1 {
		input = args[0]
	}

	pipeline, err := internal.NewPipelineFromConfig(conf)
	if err != nil {
		return err
	}

	sinks := internal.MultiSink{internal.NewDirSink(conf.OutDir)}
	if conf.SQLite != "" {
		db, err := internal.NewSQLiteSink(conf.SQLite)
		if err != nil {
			return err
		}
		defer db.Close()
		sinks = append(sinks, db)
	}

	var (
		data   []byte
		result *internal.Result
	)
	steps := []internal.ProgressStep{
		{
			Message: "Reading " + input,
			Fn: func() (err error) {
				data, err = internal.ReadExport(input)
				return err
			},
		},
		{
			Message: "Extracting questions",
			Fn: func() (err error) {
				result, err = pipeline.Run(input, data)
				return err
			},
		},
		{
			Message: "Writing " + conf.OutDir,
			Fn: func() error {
				return pipeline.Emit(result, sinks)
			},
		},
	}
	if err := internal.ShowProgressWithSteps(cmd.Context(), steps); err != nil {
		return err
	}

	internal.LogInfo("Extracted %d question(s) from %d conversation(s)",
		result.Index.TotalQuestions, result.Conversations)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d day files to %s\n", len(result.Days), conf.OutDir)
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./question-digest.yaml or ~/.config/question-digest/question-digest.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outDir, "out", "o", "site/data", "Directory the day files and index.json are written to")
	rootCmd.PersistentFlags().IntVar(&topN, "top", internal.DefaultTopKeywords, "Number of keywords kept per day")
	rootCmd.PersistentFlags().StringVar(&timezone, "tz", "Local", "Time zone used to bucket questions into days (IANA name)")
	rootCmd.PersistentFlags().StringVar(&sqlitePath, "sqlite", "", "Also mirror the dataset into this SQLite database")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
