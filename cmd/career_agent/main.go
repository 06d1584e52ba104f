// Package main provides the career_agent command line client.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "career_agent",
	Short: "Command line client for the Career AI Assistant",
	Long:  "career_agent talks to a Career AI Assistant service: upload a resume, chat about roles, score the resume against job postings, and practice interview questions.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
