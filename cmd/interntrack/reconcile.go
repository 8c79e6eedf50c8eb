package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jmorrow/interntrack/internal/config"
	"github.com/jmorrow/interntrack/internal/db"
	"github.com/jmorrow/interntrack/internal/fetch"
	"github.com/jmorrow/interntrack/internal/llm"
	"github.com/jmorrow/interntrack/internal/logging"
	"github.com/jmorrow/interntrack/internal/observability"
	"github.com/jmorrow/interntrack/internal/ratelimit"
	"github.com/jmorrow/interntrack/internal/tracking"
)

var reconcileCommand = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile tracked application statuses",
	Long: `Checks every non-terminal tracked application against its signal sources
(employer portal, third-party tracker API, heuristic predictor) and applies at
most one status transition per application. Applications updated within the
last six hours are skipped.`,
	RunE: runReconcileCmd,
}

var (
	reconcileConfigPath  string
	reconcileUserID      string
	reconcileAPIKey      string
	reconcileDatabaseURL string
	reconcileTrackerURL  string
	reconcileTrackerKey  string
	reconcileUseBrowser  bool
	reconcileVerbose     bool
	reconcileJSONLogs    bool
)

func init() {
	reconcileCommand.Flags().StringVar(&reconcileConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	reconcileCommand.Flags().StringVarP(&reconcileUserID, "user", "u", "", "User UUID whose applications to reconcile")
	reconcileCommand.Flags().StringVar(&reconcileAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	reconcileCommand.Flags().StringVar(&reconcileDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	reconcileCommand.Flags().StringVar(&reconcileTrackerURL, "tracker-url", "", "Third-party tracker API base URL (optional, defaults to TRACKER_API_URL env var)")
	reconcileCommand.Flags().StringVar(&reconcileTrackerKey, "tracker-key", "", "Third-party tracker API key (optional, defaults to TRACKER_API_KEY env var)")
	reconcileCommand.Flags().BoolVar(&reconcileUseBrowser, "use-browser", false, "Use headless browser for SPA portals (requires Chrome)")
	reconcileCommand.Flags().BoolVarP(&reconcileVerbose, "verbose", "v", false, "Print detailed debug information")
	reconcileCommand.Flags().BoolVar(&reconcileJSONLogs, "json-logs", false, "Emit structured JSON logs")

	rootCmd.AddCommand(reconcileCommand)
}

func runReconcileCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(cmd, reconcileConfigPath, map[string]func(*config.Config){
		"user":        func(c *config.Config) { c.UserID = reconcileUserID },
		"api-key":     func(c *config.Config) { c.APIKey = reconcileAPIKey },
		"db-url":      func(c *config.Config) { c.DatabaseURL = reconcileDatabaseURL },
		"tracker-url": func(c *config.Config) { c.TrackerAPIURL = reconcileTrackerURL },
		"tracker-key": func(c *config.Config) { c.TrackerAPIKey = reconcileTrackerKey },
		"use-browser": func(c *config.Config) { c.UseBrowser = reconcileUseBrowser },
	})
	if err != nil {
		return err
	}

	if cfg.UserID == "" {
		return fmt.Errorf("--user is required")
	}
	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		return fmt.Errorf("invalid user ID %q: %w", cfg.UserID, err)
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required (--api-key or %s)", config.EnvAPIKey)
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required (--db-url or %s)", config.EnvDatabaseURL)
	}

	logger, err := logging.New(reconcileJSONLogs, reconcileVerbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	limiter := ratelimit.New(10, 2)
	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.APIKey, limiter)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	fetchOpts := fetch.DefaultOptions()
	fetchOpts.UseBrowser = cfg.UseBrowser
	fetcher := fetch.NewHTTPFetcher(fetchOpts, logger)

	// Portal first, then the tracker API, then the time-based predictor.
	sources := []tracking.SignalSource{
		tracking.NewPortalSource(fetcher, logger),
		tracking.NewAPISource(cfg.TrackerAPIURL, cfg.TrackerAPIKey, nil, logger),
		tracking.NewPredictorSource(client, logger),
	}

	reconciler := tracking.NewReconciler(database, sources, logger)

	result, err := reconciler.ReconcileStatuses(ctx, userID)
	if err != nil {
		return err
	}

	if reconcileVerbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintReconcileResult(result)
		printer.PrintInsights(&result.Insights)
	}

	fmt.Fprintf(os.Stdout, "Checked %d applications, applied %d updates\n", result.CheckedCount, len(result.Updates))
	for _, u := range result.Updates {
		fmt.Fprintf(os.Stdout, "  %s  %s → %s (%s)\n", u.ApplicationID, u.OldStatus, u.NewStatus, u.Source)
	}

	insights := result.Insights
	fmt.Fprintf(os.Stdout, "Tracked: %d, success rate: %.0f%%", insights.Total, insights.SuccessRate*100)
	if insights.AvgResponseTime > 0 {
		fmt.Fprintf(os.Stdout, ", avg response: %.1f days", insights.AvgResponseTime.Hours()/24)
	}
	fmt.Fprintln(os.Stdout)

	return nil
}
