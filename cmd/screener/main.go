// Package main provides the entry point for the candidate screener server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "Candidate Screening Pipeline",
	Long:  "Candidate Screener runs a three-stage AI screening pipeline (resume, written answers, voice interview) over job applications via REST API, with operational subcommands for HR workflows.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
