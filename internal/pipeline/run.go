// Package pipeline provides the high-level orchestration for an interview
// prep run: email analysis and web research in parallel, then report
// synthesis and saving.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/prep-coach/internal/db"
	"github.com/jonathan/prep-coach/internal/discovery"
	"github.com/jonathan/prep-coach/internal/email"
	"github.com/jonathan/prep-coach/internal/fetch"
	"github.com/jonathan/prep-coach/internal/llm"
	"github.com/jonathan/prep-coach/internal/observability"
	"github.com/jonathan/prep-coach/internal/report"
	"github.com/jonathan/prep-coach/internal/research"
	"github.com/jonathan/prep-coach/internal/scrape"
	"github.com/jonathan/prep-coach/internal/tools"
	"github.com/jonathan/prep-coach/internal/types"
)

// RunOptions holds configuration for one prep run.
type RunOptions struct {
	Company   string // company domain, e.g. stripe.com
	UserID    string // the user's email address
	OutputDir string

	EmailOnly  bool
	FastWeb    bool
	SaveToDocs bool
	DocsOnly   bool
	UseBrowser bool
	Debug      bool

	APIKey       string // Gemini
	SearchAPIKey string // Google Custom Search
	SearchCX     string
	GoogleToken  string // OAuth access token for Gmail/Docs
	DatabaseURL  string

	// LogOut receives the JSON event stream; defaults to stderr.
	LogOut io.Writer
}

// RunPipeline executes the full prep run and returns the saved report path
// (empty when the report went to Google Docs only).
func RunPipeline(ctx context.Context, opts RunOptions) (string, error) {
	if opts.LogOut == nil {
		opts.LogOut = os.Stderr
	}

	logger := observability.NewEventLogger(opts.LogOut)
	if opts.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	printer := observability.NewPrinter(os.Stdout)
	exec := tools.NewExecutor(logger, nil)

	mode := types.FullMode()
	if opts.FastWeb {
		mode = types.FastMode()
	}

	// Database persistence is best-effort; the run continues without it.
	var database *db.DB
	runID := uuid.New()
	if opts.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
			database = nil
		} else {
			defer database.Close()
			if err := database.CreateRun(ctx, runID, opts.Company, opts.UserID, mode.Name); err != nil {
				fmt.Printf("Warning: failed to record run: %v\n", err)
			}
		}
	}

	// The LLM is optional: without it the oracle falls back to deterministic
	// selection and the report falls back to the basic template.
	var client llm.Client
	if opts.APIKey != "" {
		var err error
		client, err = llm.NewClient(ctx, llm.DefaultConfig(), opts.APIKey)
		if err != nil {
			fmt.Printf("Warning: LLM unavailable: %v\n", err)
			client = nil
		} else {
			defer client.Close()
		}
	} else {
		fmt.Println("Warning: no Gemini API key set; using deterministic fallbacks.")
	}

	var insight types.EmailInsight
	var artifact types.ResearchArtifact
	var insightMu, artifactMu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)

	// Email branch
	g.Go(func() error {
		result, err := runEmailBranch(gCtx, opts, exec)
		if err != nil {
			return fmt.Errorf("email analysis failed: %w", err)
		}
		insightMu.Lock()
		insight = result
		insightMu.Unlock()
		return nil
	})

	// Web research branch
	if !opts.EmailOnly {
		g.Go(func() error {
			result, err := runResearchBranch(gCtx, opts, mode, client, exec)
			if err != nil {
				return fmt.Errorf("web research failed: %w", err)
			}
			artifactMu.Lock()
			artifact = result
			artifactMu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if database != nil {
			_ = database.CompleteRun(ctx, runID, "failed")
		}
		return "", err
	}

	if opts.Debug {
		printer.PrintEmailInsight(&insight)
		if !opts.EmailOnly {
			printer.PrintResearchArtifact(&artifact)
		}
	}

	if database != nil {
		_ = database.SaveArtifact(ctx, runID, "email_insight", insight)
		_ = database.SaveArtifact(ctx, runID, "research", artifact)
	}

	// Report synthesis never fails the run; the coach degrades internally.
	coach := report.NewCoach(client)
	content := coach.CreateReport(ctx, opts.Company, insight, artifact)

	path, err := saveReport(ctx, opts, exec, content)
	if err != nil {
		if database != nil {
			_ = database.CompleteRun(ctx, runID, "failed")
		}
		return "", err
	}

	if database != nil {
		if path != "" {
			_ = database.SaveReportPath(ctx, runID, path)
		}
		_ = database.CompleteRun(ctx, runID, "completed")
	}

	return path, nil
}

// runEmailBranch analyzes the user's correspondence with the company. With no
// Google token the branch degrades to an empty insight.
func runEmailBranch(ctx context.Context, opts RunOptions, exec *tools.Executor) (types.EmailInsight, error) {
	if opts.GoogleToken == "" {
		fmt.Println("Warning: no Google OAuth token set; skipping email analysis.")
		return types.EmailInsight{}, nil
	}

	mail, err := tools.NewGmailProvider(ctx, opts.GoogleToken)
	if err != nil {
		return types.EmailInsight{}, fmt.Errorf("gmail client: %w", err)
	}

	analyzer := email.NewAnalyzer(mail, exec)
	return analyzer.AnalyzeCompanyEmails(ctx, opts.Company, opts.UserID)
}

// runResearchBranch discovers, scrapes, and aggregates company pages. Missing
// search credentials leave the engine running on the site map alone.
func runResearchBranch(ctx context.Context, opts RunOptions, mode types.RunMode, client llm.Client, exec *tools.Executor) (types.ResearchArtifact, error) {
	fetchOpts := fetch.DefaultOptions()

	var searcher tools.Searcher
	if opts.SearchAPIKey != "" && opts.SearchCX != "" {
		gs, err := tools.NewGoogleSearch(ctx, opts.SearchAPIKey, opts.SearchCX)
		if err != nil {
			fmt.Printf("Warning: search unavailable: %v\n", err)
		} else {
			searcher = gs
		}
	} else {
		fmt.Println("Warning: no Google Search credentials set; discovery uses the site map only.")
	}
	if searcher == nil {
		searcher = unavailableSearcher{}
	}

	var oracle discovery.Oracle
	if client != nil {
		oracle = discovery.NewLLMOracle(client)
	}

	var crawler tools.Crawler
	if mode.CrawlFallback {
		crawler = tools.NewLinkCrawler(fetchOpts)
	}

	engine := discovery.NewEngine(tools.NewLinkMapper(fetchOpts), searcher, crawler, oracle, exec)
	orchestrator := scrape.NewOrchestrator(tools.NewHTTPScraper(fetchOpts, opts.UseBrowser), exec)
	researcher := research.NewResearcher(engine, orchestrator)

	return researcher.Research(ctx, opts.Company, mode)
}

// saveReport writes the report locally and, when requested, exports it to
// Google Docs. A docs failure falls back to a local copy.
func saveReport(ctx context.Context, opts RunOptions, exec *tools.Executor, content string) (string, error) {
	var path string

	if !opts.DocsOnly {
		var err error
		path, err = report.SaveLocal(opts.Company, content, opts.OutputDir)
		if err != nil {
			return "", err
		}
		fmt.Printf("Report saved to %s\n", path)
	}

	if opts.SaveToDocs || opts.DocsOnly {
		if opts.GoogleToken == "" {
			fmt.Println("Warning: no Google OAuth token set; cannot save to Google Docs.")
		} else {
			saver, err := tools.NewDocsClient(ctx, opts.GoogleToken)
			if err == nil {
				var info *tools.DocInfo
				info, err = report.SaveToDocs(ctx, saver, exec, opts.Company, content)
				if err == nil {
					fmt.Printf("Report saved to Google Docs: %s\n", info.URL)
					return path, nil
				}
			}
			fmt.Printf("Warning: saving to Google Docs failed: %v\n", err)
		}
		if opts.DocsOnly {
			// Docs export failed; keep a local copy rather than losing the report.
			var err error
			path, err = report.SaveLocal(opts.Company, content, opts.OutputDir)
			if err != nil {
				return "", err
			}
			fmt.Printf("Report saved locally instead: %s\n", path)
		}
	}

	return path, nil
}

// unavailableSearcher stands in when search credentials are missing. It fails
// with a plain error so discovery degrades to the site map instead of
// treating the missing config as a fatal auth failure.
type unavailableSearcher struct{}

func (unavailableSearcher) Search(ctx context.Context, query string, limit int) ([]types.SearchResult, error) {
	return nil, fmt.Errorf("search not configured")
}
