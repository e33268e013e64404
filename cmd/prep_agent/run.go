package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/prep-coach/internal/config"
	"github.com/jonathan/prep-coach/internal/pipeline"
	"github.com/jonathan/prep-coach/internal/report"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full prep pipeline for one company",
	Long: `Analyzes your emails from the company, researches its website, and writes an interview preparation report.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPrepCmd,
}

var (
	runConfigPath  string
	runCompany     string
	runUserID      string
	runOutputDir   string
	runDebug       bool
	runEmailOnly   bool
	runFastWeb     bool
	runSaveToDocs  bool
	runDocsOnly    bool
	runUseBrowser  bool
	runAPIKey      string
	runDatabaseURL string
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runCompany, "company", "c", "", "Company domain to prepare for (e.g. stripe.com)")
	runCommand.Flags().StringVarP(&runUserID, "user-id", "u", "", "Your email address")
	runCommand.Flags().StringVarP(&runOutputDir, "output-dir", "o", "", "Directory for the report (default output/prep_reports)")
	runCommand.Flags().BoolVar(&runDebug, "debug", false, "Print step-by-step summaries and debug telemetry")
	runCommand.Flags().BoolVar(&runEmailOnly, "email-only", false, "Skip web research entirely")
	runCommand.Flags().BoolVar(&runFastWeb, "fast-web", false, "Use reduced web research budgets")
	runCommand.Flags().BoolVar(&runSaveToDocs, "save-to-docs", false, "Also export the report to Google Docs")
	runCommand.Flags().BoolVar(&runDocsOnly, "docs-only", false, "Export to Google Docs without writing a local file")
	runCommand.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for optional artifact persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPrepCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.Load(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
		if runDebug {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("company") {
		cfg.Company = runCompany
	}
	if cmd.Flags().Changed("user-id") {
		cfg.UserID = runUserID
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = runOutputDir
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = runDebug
	}
	if cmd.Flags().Changed("email-only") {
		cfg.EmailOnly = runEmailOnly
	}
	if cmd.Flags().Changed("fast-web") {
		cfg.FastWeb = runFastWeb
	}
	if cmd.Flags().Changed("save-to-docs") {
		cfg.SaveToDocs = runSaveToDocs
	}
	if cmd.Flags().Changed("docs-only") {
		cfg.DocsOnly = runDocsOnly
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = runUseBrowser
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}

	// Step 3: Apply defaults and environment fallbacks
	cfg = cfg.MergeWithDefaults(config.Config{OutputDir: report.DefaultOutputDir})
	cfg.FromEnv()

	// Step 4: Validate required fields before any external call
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := pipeline.RunOptions{
		Company:      cfg.Company,
		UserID:       cfg.UserID,
		OutputDir:    cfg.OutputDir,
		EmailOnly:    cfg.EmailOnly,
		FastWeb:      cfg.FastWeb,
		SaveToDocs:   cfg.SaveToDocs,
		DocsOnly:     cfg.DocsOnly,
		UseBrowser:   cfg.UseBrowser,
		Debug:        cfg.Debug,
		APIKey:       cfg.APIKey,
		SearchAPIKey: cfg.SearchAPIKey,
		SearchCX:     cfg.SearchCX,
		GoogleToken:  cfg.GoogleToken,
		DatabaseURL:  cfg.DatabaseURL,
	}

	_, err := pipeline.RunPipeline(ctx, opts)
	return err
}
