package main

import (
	"github.com/spf13/cobra"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Suggest adjacent roles based on the uploaded resume",
	RunE:  runRoles,
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}

func runRoles(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	result, err := client.AlternativeRoles(cmd.Context())
	if err != nil {
		return err
	}

	printSection(cmd.OutOrStdout(), "ALTERNATIVE ROLES", result)
	return nil
}
