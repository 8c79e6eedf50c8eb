package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jmorrow/interntrack/internal/config"
	"github.com/jmorrow/interntrack/internal/db"
	"github.com/jmorrow/interntrack/internal/letters"
	"github.com/jmorrow/interntrack/internal/llm"
	"github.com/jmorrow/interntrack/internal/logging"
	"github.com/jmorrow/interntrack/internal/ratelimit"
)

var letterCommand = &cobra.Command{
	Use:   "letter <posting-id>",
	Short: "Generate a cover letter for a posting",
	Long: `Generates a cover letter for one posting from the user's career profile.
The letter is printed to stdout or written to --out.`,
	Args: cobra.ExactArgs(1),
	RunE: runLetterCmd,
}

var (
	letterConfigPath  string
	letterUserID      string
	letterAPIKey      string
	letterDatabaseURL string
	letterTone        string
	letterOut         string
	letterVerbose     bool
)

func init() {
	letterCommand.Flags().StringVar(&letterConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	letterCommand.Flags().StringVarP(&letterUserID, "user", "u", "", "User UUID whose profile to write from")
	letterCommand.Flags().StringVar(&letterAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	letterCommand.Flags().StringVar(&letterDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	letterCommand.Flags().StringVar(&letterTone, "tone", "", "Tone of the letter (default professional and enthusiastic)")
	letterCommand.Flags().StringVarP(&letterOut, "out", "o", "", "Write the letter to this file instead of stdout")
	letterCommand.Flags().BoolVarP(&letterVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(letterCommand)
}

func runLetterCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(cmd, letterConfigPath, map[string]func(*config.Config){
		"user":    func(c *config.Config) { c.UserID = letterUserID },
		"api-key": func(c *config.Config) { c.APIKey = letterAPIKey },
		"db-url":  func(c *config.Config) { c.DatabaseURL = letterDatabaseURL },
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
	postingID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid posting ID %q: %w", args[0], err)
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required (--api-key or %s)", config.EnvAPIKey)
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required (--db-url or %s)", config.EnvDatabaseURL)
	}

	logger, err := logging.New(false, letterVerbose)
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

	posting, err := database.GetPosting(ctx, postingID)
	if err != nil {
		return err
	}
	if posting == nil {
		return fmt.Errorf("posting %s not found", postingID)
	}

	limiter := ratelimit.New(10, 2)
	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.APIKey, limiter)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	writer := letters.NewWriter(client, logger)
	letter, err := writer.Generate(ctx, profile, posting, &letters.Options{Tone: letterTone})
	if err != nil {
		return err
	}

	if letterOut != "" {
		if err := os.WriteFile(letterOut, []byte(letter.Body+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write letter: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Wrote cover letter for %s %s to %s\n", posting.Company, posting.Title, letterOut)
		return nil
	}

	fmt.Fprintln(os.Stdout, letter.Body)
	return nil
}
