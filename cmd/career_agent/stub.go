package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhrumil1128/career-ai-agent/internal/stub"
)

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Run a local stand-in career service",
	Long:  "Serve a deterministic in-memory implementation of the career service API. Useful for trying the CLI without the real backend.",
	RunE:  runStubServer,
}

var stubPort int

func init() {
	stubCmd.Flags().IntVar(&stubPort, "port", 8000, "Port to listen on")
	rootCmd.AddCommand(stubCmd)
}

func runStubServer(_ *cobra.Command, _ []string) error {
	return stub.New().Run(fmt.Sprintf(":%d", stubPort))
}
