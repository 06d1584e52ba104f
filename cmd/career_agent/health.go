package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the career service is reachable",
	RunE:  runHealthCheck,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealthCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	if err := client.Health(cmd.Context()); err != nil {
		return fmt.Errorf("service at %s is not healthy: %w", client.BaseURL(), err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Service at %s is healthy\n", client.BaseURL())
	return nil
}
