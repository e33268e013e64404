// Package main provides the entry point for the interview prep coach CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "prep_agent",
	Short: "Interview Prep Coach",
	Long:  "Interview Prep Coach analyzes your correspondence with a target company and researches its website, then synthesizes a personalized interview preparation report.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
