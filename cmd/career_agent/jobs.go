package main

import (
	"github.com/spf13/cobra"

	"github.com/dhrumil1128/career-ai-agent/internal/observability"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Search job listings",
	RunE:  runJobs,
}

var jobsQuery string

func init() {
	jobsCmd.Flags().StringVarP(&jobsQuery, "query", "q", "", "Search query (empty lists the service defaults)")

	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	result, err := client.SearchJobs(cmd.Context(), jobsQuery)
	if err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintJobs(result)
	return nil
}
