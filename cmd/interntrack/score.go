package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jmorrow/interntrack/internal/config"
	"github.com/jmorrow/interntrack/internal/db"
	"github.com/jmorrow/interntrack/internal/embedding"
	"github.com/jmorrow/interntrack/internal/llm"
	"github.com/jmorrow/interntrack/internal/logging"
	"github.com/jmorrow/interntrack/internal/matching"
	"github.com/jmorrow/interntrack/internal/observability"
	"github.com/jmorrow/interntrack/internal/ratelimit"
)

var scoreCommand = &cobra.Command{
	Use:   "score [posting-id...]",
	Short: "Score postings against the user's profile",
	Long: `Scores each posting against the user's career profile: embedding similarity
fused with weighted LLM sub-scores. Scores are written back to the posting
records, overwriting any previous score.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runScoreCmd,
}

var (
	scoreConfigPath  string
	scoreUserID      string
	scoreAPIKey      string
	scoreDatabaseURL string
	scoreConcurrency int
	scoreVerbose     bool
	scoreJSONLogs    bool
)

func init() {
	scoreCommand.Flags().StringVar(&scoreConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	scoreCommand.Flags().StringVarP(&scoreUserID, "user", "u", "", "User UUID whose profile to score against")
	scoreCommand.Flags().StringVar(&scoreAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	scoreCommand.Flags().StringVar(&scoreDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	scoreCommand.Flags().IntVar(&scoreConcurrency, "concurrency", 0, "Parallel posting workers (default 4)")
	scoreCommand.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print detailed debug information")
	scoreCommand.Flags().BoolVar(&scoreJSONLogs, "json-logs", false, "Emit structured JSON logs")

	rootCmd.AddCommand(scoreCommand)
}

func runScoreCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(cmd, scoreConfigPath, map[string]func(*config.Config){
		"user":        func(c *config.Config) { c.UserID = scoreUserID },
		"api-key":     func(c *config.Config) { c.APIKey = scoreAPIKey },
		"db-url":      func(c *config.Config) { c.DatabaseURL = scoreDatabaseURL },
		"concurrency": func(c *config.Config) { c.Concurrency = scoreConcurrency },
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

	postingIDs := make([]uuid.UUID, 0, len(args))
	for _, arg := range args {
		id, err := uuid.Parse(arg)
		if err != nil {
			return fmt.Errorf("invalid posting ID %q: %w", arg, err)
		}
		postingIDs = append(postingIDs, id)
	}
	if len(postingIDs) == 0 {
		return fmt.Errorf("at least one posting ID is required")
	}

	logger, err := logging.New(scoreJSONLogs, scoreVerbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	profile, err := database.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("user %s has no profile", userID)
	}

	postings, err := database.GetPostings(ctx, postingIDs)
	if err != nil {
		return err
	}
	if len(postings) == 0 {
		return fmt.Errorf("none of the given posting IDs exist")
	}

	limiter := ratelimit.New(10, 2)
	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.APIKey, limiter)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	embedder, err := embedding.NewGeminiEmbedder(ctx, cfg.APIKey, "", limiter)
	if err != nil {
		return err
	}
	defer func() { _ = embedder.Close() }()

	matcher := matching.NewMatcher(embedder, matching.NewLLMScorer(client, logger), logger, cfg.Concurrency)

	result, err := matcher.ScoreBatch(ctx, profile, postings, cfg.ScoringWeights())
	if err != nil {
		return err
	}

	if err := matcher.PersistScores(ctx, database, result.Results); err != nil {
		return err
	}

	if scoreVerbose {
		observability.NewPrinter(os.Stdout).PrintBatchResult(result)
	}

	fmt.Fprintf(os.Stdout, "Scored %d postings (high: %d, medium: %d, low: %d)\n",
		len(result.Results), result.HighCount, result.MediumCount, result.LowCount)
	for _, r := range result.Results {
		marker := ""
		if r.Degraded {
			marker = " [similarity only]"
		}
		fmt.Fprintf(os.Stdout, "  %s  %.3f%s\n", r.PostingID, r.Score, marker)
	}
	for _, f := range result.Failures {
		fmt.Fprintf(os.Stdout, "  %s  failed: %s\n", f.PostingID, f.Reason)
	}

	return nil
}

// loadMergedConfig loads an optional config file, applies explicitly-set CLI
// flags over it, then fills remaining credentials from the environment.
func loadMergedConfig(cmd *cobra.Command, path string, overrides map[string]func(*config.Config)) (*config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	for flag, apply := range overrides {
		if cmd.Flags().Changed(flag) {
			apply(&cfg)
		}
	}

	cfg.FromEnv()
	merged := cfg.MergeWithDefaults(config.Config{})

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}
