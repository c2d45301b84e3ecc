// Package main provides the entry point for the career coach CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "coach_agent",
	Short: "Career coach personalization engine",
	Long:  "Career coach builds personalized growth roadmaps from a user profile and runs turn-based coaching conversations, with a deterministic local fallback when the completion service is unavailable.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
