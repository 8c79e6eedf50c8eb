// Package main provides the InternTrack CLI: internship match scoring,
// application status reconciliation, and cover letter generation.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "interntrack",
	Short: "Internship matching and application tracking",
	Long:  "InternTrack scores internship postings against a candidate profile and keeps tracked application statuses current from portal, API, and heuristic signals.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
